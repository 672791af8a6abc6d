// Package session define la identidad explícita del operador que ejecuta
// cada operación. Reemplaza al usuario global implícito del sistema legado:
// todo caso de uso que muta stock o emite comprobantes la recibe como
// argumento, lo que deja la atribución de auditoría a la vista y testeable.
package session

// Session identifica al usuario actuante y su rol.
type Session struct {
	UserID string
	Name   string
	Role   string
}

// Actor devuelve el nombre a registrar en movimientos y facturas.
// Si la sesión no trae nombre (ej. procesos internos), se registra "Sistema".
func (s Session) Actor() string {
	if s.Name == "" {
		return "Sistema"
	}
	return s.Name
}
