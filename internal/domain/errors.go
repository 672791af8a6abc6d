package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyFulfilled   = errors.New("el pedido ya fue procesado")
	ErrCustomerBlocked    = errors.New("cliente bloqueado por deuda")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// InsufficientStockError detalla un faltante de stock: producto, cantidad
// requerida y disponible, para que el operador decida ajustar el pedido.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Required    int64
	Available   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: necesita %d u., disponible %d u.",
		e.ProductName, e.Required, e.Available)
}

// Is permite detectar el faltante con errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// AuthorizationError envuelve el mensaje devuelto por la pasarela fiscal.
// El mensaje del gateway se conserva textual para mostrarlo al operador.
type AuthorizationError struct {
	OrderID string
	Message string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("autorización rechazada para pedido %s: %s", e.OrderID, e.Message)
}

// PersistenceError señala una falla de escritura posterior a una autorización
// fiscal ya consumida. Conserva el CAE para permitir conciliación manual:
// reintentar a ciegas podría duplicar la factura.
type PersistenceError struct {
	OrderID string
	CAE     string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("falla de persistencia con CAE %s ya autorizado (pedido %s): %v",
		e.CAE, e.OrderID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
