// Package pdf genera la representación gráfica de las facturas de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor               │  N° Factura + Fechas        │
//	│  CLIENTE: Nombre + contacto   │  Orden de venta             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Descripción | P.Unit | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / Total / Pagado / Saldo       │
//	│  FOOTER: QR de verificación + estado de pago                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

var _ sales.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Issuer datos de la empresa emisora impresos en el encabezado.
type Issuer struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
	Email   string
}

// MarotoPDFGenerator implementa sales.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer  Issuer
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se imprimen con formato es (1.234,50).
func NewMarotoPDFGenerator(issuer Issuer) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer, printer: message.NewPrinter(language.Spanish)}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *sales.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Order == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+doc.Invoice.InvoiceNumber, true).
		WithAuthor(g.issuer.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(doc.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(doc.Customer, doc.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(doc.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc.Invoice, doc.Order))
	m.AddRows(line.NewRow(3))
	m.AddRows(g.footerRow(doc.Invoice))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func (g *MarotoPDFGenerator) headerRow(inv *entity.Invoice) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(g.issuer.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("NIT: "+nonEmpty(g.issuer.TaxID, "-"), props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(fmt.Sprintf("%s | %s | %s",
				nonEmpty(g.issuer.Address, "-"), nonEmpty(g.issuer.Phone, "-"), nonEmpty(g.issuer.Email, "-"),
			), props.Text{Size: 7, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(inv.InvoiceNumber, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New("Fecha: "+inv.InvoiceDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
			text.New("Vence: "+inv.DueDate.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 17, Color: colorGray}),
		),
	)
}

func customerRow(c *entity.Customer, o *entity.SaleOrder) core.Row {
	name, contact := "-", "-"
	if c != nil {
		name = c.Name
		contact = fmt.Sprintf("Email: %s | Tel: %s | %s", nonEmpty(c.Email, "-"), nonEmpty(c.Phone, "-"), nonEmpty(c.Address, "-"))
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("ORDEN DE VENTA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(o.OrderNumber, props.Text{Size: 10, Align: align.Right, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) tableDetailRows(lines []sales.InvoiceLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(g.printer.Sprintf("%d", l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(l.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func (g *MarotoPDFGenerator) totalsRow(inv *entity.Invoice, o *entity.SaleOrder) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(30).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("Impuesto:", 5),
			label("TOTAL:", 10),
			label("Pagado:", 17),
			label("Saldo:", 22),
		),
		col.New(3).Add(
			value(g.money(o.Subtotal), 0),
			value(g.money(o.TaxAmount), 5),
			value(g.money(inv.Amount), 10),
			value(g.money(inv.PaidAmount), 17),
			value(g.money(inv.Balance()), 22),
		),
	)
}

// footerRow QR con número, monto y fecha para verificar la factura contra el sistema.
func (g *MarotoPDFGenerator) footerRow(inv *entity.Invoice) core.Row {
	qr := fmt.Sprintf("%s|%s|%s", inv.InvoiceNumber, inv.Amount.StringFixed(2), inv.InvoiceDate.Format("2006-01-02"))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Estado de pago: "+paymentLabel(inv.Status), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Left: 3, Color: colorPrimary}),
			text.New("Conserve este documento como soporte de la venta.", props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func paymentLabel(status string) string {
	switch status {
	case entity.PaymentStatusPaid:
		return "PAGADA"
	case entity.PaymentStatusPartial:
		return "PAGO PARCIAL"
	default:
		return "PENDIENTE"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
