// Package pdf genera la representación gráfica de la factura electrónica
// emitida con CAE.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + CUIT  │  N° Comprobante + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: Nombre + CUIT                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Neto / IVA 21% / TOTAL                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER AFIP: CAE + Vencimiento CAE + QR                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/vitalcan/haruwen-wms/internal/application/billing"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
)

// ── Datos del emisor ──────────────────────────────────────────────────────────

// IssuerInfo datos fijos del emisor que van en el encabezado.
type IssuerInfo struct {
	Name        string
	CUIT        string
	Address     string
	PointOfSale int
}

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer IssuerInfo
}

// NewMarotoPDFGenerator construye el generador con los datos del emisor.
func NewMarotoPDFGenerator(issuer IssuerInfo) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// Generate genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(invoice *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura Electrónica", true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receptorRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(invoice)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(caeFooterRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + CUIT (izq) y número de comprobante + fecha (der).
func (g *MarotoPDFGenerator) headerRow(invoice *entity.Invoice) core.Row {
	numFac := fmt.Sprintf("%04d-%08d", invoice.PointOfSale, invoice.Number)
	fecha := invoice.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.issuer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+g.issuer.CUIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA ELECTRÓNICA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numFac, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// receptorRow: datos del cliente.
func receptorRow(invoice *entity.Invoice) core.Row {
	cuit := invoice.CustomerCUIT
	if cuit == "" {
		cuit = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Cliente: %s   |   CUIT: %s", invoice.CustomerName, cuit),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// totalsRows: neto, IVA y total final.
func totalsRows(invoice *entity.Invoice) []core.Row {
	amountRow := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		return row.New(7).Add(
			col.New(8).Add(text.New(label, props.Text{Size: size, Style: style, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New("$ "+value, props.Text{Size: size, Style: style, Align: align.Right, Top: 1})),
		)
	}
	return []core.Row{
		amountRow("Subtotal neto:", invoice.NetTotal.StringFixed(2), false),
		amountRow("IVA 21%:", invoice.Tax.StringFixed(2), false),
		amountRow("TOTAL:", invoice.GrandTotal.StringFixed(2), true),
	}
}

// caeFooterRow: CAE, vencimiento y QR con los datos del comprobante.
func caeFooterRow(invoice *entity.Invoice) core.Row {
	qrPayload := fmt.Sprintf("CAE=%s;VTO=%s;CBTE=%04d-%08d",
		invoice.CAE, invoice.CAEDue, invoice.PointOfSale, invoice.Number)

	return row.New(24).Add(
		col.New(9).Add(
			text.New("CAE: "+invoice.CAE, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
			text.New("Vencimiento CAE: "+invoice.CAEDue, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New("Comprobante autorizado por AFIP", props.Text{Size: 7, Top: 14, Color: colorGray}),
		),
		col.New(3).Add(
			code.NewQr(qrPayload, props.Rect{Center: true, Percent: 90}),
		),
	)
}
