package service

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/NetindoGit/netindo_api/internal/models"
)

// InvoiceExporter renders an invoice as a standalone HTML document that
// opens the browser print dialog on load.
type InvoiceExporter struct {
	tmpl        *template.Template
	companyName string
}

// NewInvoiceExporter constructs an InvoiceExporter for the given company name.
func NewInvoiceExporter(companyName string) *InvoiceExporter {
	if companyName == "" {
		companyName = "Netindo"
	}
	return &InvoiceExporter{
		tmpl:        template.Must(template.New("invoice").Funcs(exportFuncs).Parse(invoiceTemplate)),
		companyName: companyName,
	}
}

var exportFuncs = template.FuncMap{
	"money": func(amount float64) string {
		return fmt.Sprintf("Rp %s", formatThousands(amount))
	},
	"date": func(t time.Time) string {
		return t.Format("2 January 2006")
	},
	"upper": strings.ToUpper,
}

// formatThousands renders 1500000 as "1.500.000".
func formatThousands(amount float64) string {
	s := fmt.Sprintf("%.0f", amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

type invoiceView struct {
	Company  string
	Invoice  *models.Invoice
	Customer *models.Customer
	Plan     *models.Plan
}

// Render produces the printable HTML for one invoice. Customer and plan are
// optional; missing ones leave their sections blank rather than failing the
// export.
func (e *InvoiceExporter) Render(inv *models.Invoice, customer *models.Customer, plan *models.Plan) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("render invoice: nil invoice")
	}

	var buf bytes.Buffer
	view := invoiceView{Company: e.companyName, Invoice: inv, Customer: customer, Plan: plan}
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.Invoice.InvoiceNumber}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; color: #1a1a1a; margin: 40px; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a1a1a; padding-bottom: 16px; }
  .header h1 { margin: 0; font-size: 22px; }
  .meta { margin-top: 24px; }
  .meta td { padding: 2px 16px 2px 0; }
  .status { display: inline-block; padding: 2px 10px; border: 1px solid #1a1a1a; font-size: 12px; letter-spacing: 1px; }
  table.lines { width: 100%; border-collapse: collapse; margin-top: 32px; }
  table.lines th, table.lines td { border: 1px solid #ccc; padding: 8px 12px; text-align: left; }
  table.lines th { background: #f4f4f4; }
  .total { text-align: right; margin-top: 16px; font-size: 18px; font-weight: bold; }
  .footer { margin-top: 48px; font-size: 12px; color: #666; }
  @media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
  <div class="header">
    <div>
      <h1>{{.Company}}</h1>
      <div>Internet Service Provider</div>
    </div>
    <div>
      <h1>INVOICE</h1>
      <div>{{.Invoice.InvoiceNumber}}</div>
      <div class="status">{{upper (printf "%s" .Invoice.Status)}}</div>
    </div>
  </div>

  <table class="meta">
    <tr><td>Issued</td><td>{{date .Invoice.IssuedDate}}</td></tr>
    <tr><td>Due</td><td>{{date .Invoice.DueDate}}</td></tr>
    {{if .Customer}}
    <tr><td>Billed to</td><td>{{.Customer.Name}}</td></tr>
    <tr><td></td><td>{{.Customer.Email}}</td></tr>
    {{if .Customer.Address}}<tr><td></td><td>{{.Customer.Address}}</td></tr>{{end}}
    {{end}}
  </table>

  <table class="lines">
    <tr><th>Description</th><th>Amount</th></tr>
    <tr>
      <td>{{if .Invoice.Description}}{{.Invoice.Description}}{{else if .Plan}}{{.Plan.Name}}{{else}}Service charges{{end}}</td>
      <td>{{money .Invoice.Amount}}</td>
    </tr>
  </table>

  <div class="total">Total: {{money .Invoice.Amount}}</div>

  <div class="footer">
    Generated by {{.Company}} back office. This document is valid without a signature.
  </div>
</body>
</html>
`
