package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/grupolom/cartera/internal/core"
)

// section is one status band of the reminder body.
type section struct {
	Title    string
	Color    string
	Records  []core.InvoiceRecord
	Subtotal string
}

type bodyData struct {
	Customer        string
	Seller          string
	SellerEmail     string
	Sections        []section
	TotalInvoices   int
	TotalBalance    string
	CreditLimit     string
	AvailableCredit string
	OverLimit       bool
	HasCreditLimit  bool
}

var bodyTmpl = template.Must(template.New("reminder").Parse(reminderHTML))

// Renderer returns the body renderer the dispatch engine consumes. The
// result is a pure function of the aggregate.
func Renderer() core.RenderFunc {
	return renderBody
}

func renderBody(a core.NotificationAggregate) (string, string, error) {
	data := bodyData{
		Customer:        a.Customer,
		Seller:          a.Seller,
		SellerEmail:     a.SellerEmail,
		TotalInvoices:   a.TotalInvoices,
		TotalBalance:    core.FormatCurrency(a.TotalBalance),
		CreditLimit:     core.FormatCurrency(a.CreditLimit),
		AvailableCredit: core.FormatCurrency(a.AvailableCredit),
		OverLimit:       a.AvailableCredit < 0,
		HasCreditLimit:  a.CreditLimit > 0,
	}

	for _, s := range []struct {
		title   string
		color   string
		records []core.InvoiceRecord
	}{
		{"Facturas vencidas", "#c0392b", a.Overdue},
		{"Facturas próximas a vencer (0-5 días)", "#e67e22", a.DueSoon},
		{"Facturas por vencer", "#27ae60", a.NotDue},
	} {
		if len(s.records) == 0 {
			continue
		}
		var subtotal float64
		for _, r := range s.records {
			subtotal += r.Balance
		}
		data.Sections = append(data.Sections, section{
			Title:    s.title,
			Color:    s.color,
			Records:  s.records,
			Subtotal: core.FormatCurrency(subtotal),
		})
	}

	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render reminder body: %w", err)
	}
	return buf.String(), textBody(a), nil
}

// textBody is the plain-text alternative part for clients that cannot
// render HTML.
func textBody(a core.NotificationAggregate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimado cliente %s,\n\n", a.Customer)
	fmt.Fprintf(&b, "Tiene %d factura(s) con saldo total de %s.\n",
		a.TotalInvoices, core.FormatCurrency(a.TotalBalance))
	if len(a.Overdue) > 0 {
		fmt.Fprintf(&b, "Facturas vencidas: %d\n", len(a.Overdue))
	}
	if len(a.DueSoon) > 0 {
		fmt.Fprintf(&b, "Facturas próximas a vencer: %d\n", len(a.DueSoon))
	}
	if len(a.NotDue) > 0 {
		fmt.Fprintf(&b, "Facturas por vencer: %d\n", len(a.NotDue))
	}
	if a.SellerEmail != "" && a.SellerEmail != "N/A" {
		fmt.Fprintf(&b, "\nSu vendedor asignado es %s (%s).\n", a.Seller, a.SellerEmail)
	}
	b.WriteString("\nPor favor realice el pago a la mayor brevedad posible.\n")
	return b.String()
}

// Inline styles throughout; email clients ignore style sheets.
const reminderHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; margin: 0; padding: 0; background-color: #f4f4f4;">
  <div style="max-width: 700px; margin: 0 auto; background-color: #ffffff; padding: 24px;">
    <div style="background-color: #2c3e50; color: #ffffff; padding: 16px; text-align: center;">
      <h2 style="margin: 0;">Estado de Cuenta</h2>
    </div>

    <p style="margin-top: 20px;">Estimado cliente <strong>{{.Customer}}</strong>,</p>
    <p>Le compartimos el estado actual de sus facturas pendientes:</p>

    <table style="width: 100%; margin: 16px 0; border-collapse: collapse;">
      <tr>
        <td style="padding: 8px; background-color: #ecf0f1;"><strong>Facturas pendientes</strong></td>
        <td style="padding: 8px; background-color: #ecf0f1; text-align: right;">{{.TotalInvoices}}</td>
      </tr>
      <tr>
        <td style="padding: 8px;"><strong>Saldo total</strong></td>
        <td style="padding: 8px; text-align: right;">{{.TotalBalance}}</td>
      </tr>
{{- if .HasCreditLimit}}
      <tr>
        <td style="padding: 8px; background-color: #ecf0f1;"><strong>Cupo de crédito</strong></td>
        <td style="padding: 8px; background-color: #ecf0f1; text-align: right;">{{.CreditLimit}}</td>
      </tr>
      <tr>
        <td style="padding: 8px;"><strong>Cupo disponible</strong></td>
        <td style="padding: 8px; text-align: right;{{if .OverLimit}} color: #c0392b;{{end}}">{{.AvailableCredit}}{{if .OverLimit}} (cupo excedido){{end}}</td>
      </tr>
{{- end}}
    </table>

{{- range .Sections}}
    <h3 style="color: {{.Color}}; border-bottom: 2px solid {{.Color}}; padding-bottom: 4px;">{{.Title}}</h3>
    <table style="width: 100%; border-collapse: collapse; margin-bottom: 16px;">
      <tr style="background-color: #34495e; color: #ffffff;">
        <th style="padding: 6px; text-align: left;">Factura</th>
        <th style="padding: 6px; text-align: left;">Emisión</th>
        <th style="padding: 6px; text-align: left;">Vencimiento</th>
        <th style="padding: 6px; text-align: right;">Días</th>
        <th style="padding: 6px; text-align: right;">Saldo</th>
      </tr>
{{- range .Records}}
      <tr style="border-bottom: 1px solid #dddddd;">
        <td style="padding: 6px;">{{.InvoiceNumber}}</td>
        <td style="padding: 6px;">{{.IssueDate}}</td>
        <td style="padding: 6px;">{{.DueDate}}</td>
        <td style="padding: 6px; text-align: right;">{{.AgeDays}}</td>
        <td style="padding: 6px; text-align: right;">{{.BalanceFmt}}</td>
      </tr>
{{- end}}
      <tr>
        <td colspan="4" style="padding: 6px; text-align: right;"><strong>Subtotal</strong></td>
        <td style="padding: 6px; text-align: right;"><strong>{{.Subtotal}}</strong></td>
      </tr>
    </table>
{{- end}}

{{- if and .SellerEmail (ne .SellerEmail "N/A")}}
    <div style="background-color: #ecf0f1; padding: 12px; margin: 16px 0;">
      <p style="margin: 0;">Su vendedor asignado: <strong>{{.Seller}}</strong> — <a href="mailto:{{.SellerEmail}}">{{.SellerEmail}}</a></p>
    </div>
{{- end}}

    <p>Por favor realice el pago a la mayor brevedad posible. Si ya realizó el pago, haga caso omiso de este mensaje.</p>

    <div style="margin-top: 24px; padding-top: 12px; border-top: 1px solid #dddddd; font-size: 12px; color: #888888; text-align: center;">
      Este es un mensaje automático del área de cartera. No responda a este correo.
    </div>
  </div>
</body>
</html>`
