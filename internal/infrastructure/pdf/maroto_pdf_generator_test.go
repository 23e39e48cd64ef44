package pdf

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-erp/internal/application/sales"
	"github.com/jhoicas/mini-erp/internal/domain/entity"
)

func sampleDocument() *sales.InvoiceDocument {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	line := entity.NewLineItem("p-1", 3, decimal.RequireFromString("1250.50"))
	order := &entity.SaleOrder{OrderNumber: "SO-000007", Items: []entity.LineItem{line}}
	order.ApplyTotals(decimal.RequireFromString("0.10"))
	inv := &entity.Invoice{InvoiceNumber: "INV-000003", InvoiceDate: now, DueDate: now.AddDate(0, 0, 30)}
	inv.Amount = order.TotalAmount
	inv.UpdateStatus()
	return &sales.InvoiceDocument{
		Invoice:  inv,
		Order:    order,
		Customer: &entity.Customer{Name: "Ferretería Sur", Email: "compras@sur.co"},
		Lines:    []sales.InvoiceLine{{LineItem: line, SKU: "MART-01", ProductName: "Martillo"}},
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{Name: "Mini ERP SAS", TaxID: "900123456"})

	out, err := g.GenerateInvoicePDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_DocumentoIncompleto(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{Name: "Mini ERP SAS"})
	_, err := g.GenerateInvoicePDF(context.Background(), &sales.InvoiceDocument{})
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	g := NewMarotoPDFGenerator(Issuer{})
	s := g.money(decimal.RequireFromString("1234567.5"))
	assert.True(t, strings.HasPrefix(s, "$"))
	assert.Contains(t, s, "1.234.567")
	assert.True(t, strings.HasSuffix(s, ",50"))
}

func TestPaymentLabel(t *testing.T) {
	assert.Equal(t, "PAGADA", paymentLabel(entity.PaymentStatusPaid))
	assert.Equal(t, "PAGO PARCIAL", paymentLabel(entity.PaymentStatusPartial))
	assert.Equal(t, "PENDIENTE", paymentLabel(entity.PaymentStatusPending))
}
