package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetindoGit/netindo_api/internal/models"
)

func sampleInvoice() *models.Invoice {
	return &models.Invoice{
		ID:            1,
		CustomerID:    7,
		InvoiceNumber: "INV-202608-0042-1",
		Amount:        1500000,
		Status:        models.InvoicePending,
		IssuedDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC),
	}
}

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "0", formatThousands(0))
	assert.Equal(t, "999", formatThousands(999))
	assert.Equal(t, "1.000", formatThousands(1000))
	assert.Equal(t, "1.500.000", formatThousands(1500000))
	assert.Equal(t, "-250.000", formatThousands(-250000))
}

func TestRenderInvoiceDocument(t *testing.T) {
	exporter := NewInvoiceExporter("Netindo")
	addr := "Jl. Merdeka 10, Bandung"
	customer := &models.Customer{ID: 7, Name: "PT Maju Jaya", Email: "it@majujaya.co.id", Address: &addr}
	plan := &models.Plan{ID: 2, Name: "Home 50 Mbps", Price: 1500000}

	doc, err := exporter.Render(sampleInvoice(), customer, plan)
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "INV-202608-0042-1")
	assert.Contains(t, html, `<body onload="window.print()">`)
	assert.Contains(t, html, "Rp 1.500.000")
	assert.Contains(t, html, "PENDING")
	assert.Contains(t, html, "PT Maju Jaya")
	assert.Contains(t, html, "Jl. Merdeka 10, Bandung")
	assert.Contains(t, html, "Home 50 Mbps", "plan name fills the description when the invoice has none")
	assert.Contains(t, html, "1 August 2026")
	assert.Contains(t, html, "22 August 2026")
}

func TestRenderInvoiceWithoutCustomerOrPlan(t *testing.T) {
	exporter := NewInvoiceExporter("")

	doc, err := exporter.Render(sampleInvoice(), nil, nil)
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, "Netindo", "company name falls back to the default")
	assert.Contains(t, html, "Service charges")
	assert.NotContains(t, html, "Billed to")
}

func TestRenderInvoicePrefersOwnDescription(t *testing.T) {
	exporter := NewInvoiceExporter("Netindo")
	inv := sampleInvoice()
	desc := "Monthly subscription 2026-08"
	inv.Description = &desc
	plan := &models.Plan{Name: "Home 50 Mbps"}

	doc, err := exporter.Render(inv, nil, plan)
	require.NoError(t, err)

	assert.Contains(t, string(doc), "Monthly subscription 2026-08")
}

func TestRenderNilInvoice(t *testing.T) {
	exporter := NewInvoiceExporter("Netindo")
	_, err := exporter.Render(nil, nil, nil)
	assert.Error(t, err)
}
