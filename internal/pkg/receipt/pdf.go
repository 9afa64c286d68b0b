// internal/pkg/receipt/pdf.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// PDFRenderer converts receipts to PDF for export and printing
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces a PDF document for the receipt
func (p *PDFRenderer) Render(r *Receipt) (*bytes.Buffer, error) {
	htmlContent, err := p.generateHTML(r)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (p *PDFRenderer) generateHTML(r *Receipt) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"amount": formatAmount,
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: monospace; font-size: 12px; margin: 20px; }
  .center { text-align: center; }
  .line { border-bottom: 1px dashed #000; margin: 10px 0; }
  .total { font-weight: bold; font-size: 14px; }
</style>
</head>
<body>
  <div class="center">
    <h2>{{.StoreName}}</h2>
    {{if .StoreAddress}}<p>{{.StoreAddress}}</p>{{end}}
    <p>{{.IssuedAt.Format "2006-01-02 15:04:05"}}</p>
    {{if .OrderNumber}}<p>{{.OrderNumber}}</p>{{end}}
  </div>
  <div class="line"></div>
  {{range .Lines}}
  <div>
    {{.Name}} x{{.Quantity}}<br>
    @ {{amount .Price}}<br>
    Subtotal: {{amount .Subtotal}}
  </div>
  <br>
  {{end}}
  <div class="line"></div>
  <div class="total">
    Total: {{amount .TotalAmount}}<br>
    {{if eq .PaymentMethod "CASH"}}
    Cash: {{amount .CashReceived}}<br>
    Change: {{amount .ChangeAmount}}
    {{else}}
    Paid by: {{.PaymentMethod}}
    {{end}}
  </div>
  {{if .Footer}}
  <div class="center" style="margin-top: 20px;">
    <p>{{.Footer}}</p>
  </div>
  {{end}}
</body>
</html>`
