package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
)

// QuoteDocument bundles everything the proforma invoice print view needs.
type QuoteDocument struct {
	Quote    quotes.Quote
	Customer crm.Customer
	Company  settings.Settings
}

// InvoiceDocument bundles everything the invoice print view needs.
type InvoiceDocument struct {
	Invoice  billing.Invoice
	Customer crm.Customer
	Company  settings.Settings
}

var docFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("¥%.2f", v)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"mulf": func(a, b float64) float64 { return a * b },
}

var quoteTemplate = template.Must(template.New("quote").Funcs(docFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: "Helvetica Neue", "PingFang SC", sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 18px; } table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #bbb; padding: 6px 8px; text-align: left; }
.totals { margin-top: 12px; text-align: right; } .muted { color: #777; }
</style></head>
<body>
<h1>{{.Company.CompanyName}} / {{.Company.CompanyNameZh}}</h1>
<p class="muted">{{.Company.Address}} · {{.Company.Email}} · {{.Company.Phone}}</p>
<h2>Proforma Invoice 形式发票 {{.Quote.Number}}</h2>
<p>Customer 客户: {{.Customer.Name}}{{if .Customer.Company}} ({{.Customer.Company}}){{end}}<br>
Date 日期: {{date .Quote.CreatedAt}} · Status 状态: {{.Quote.Status}}</p>
<table>
<tr><th>SKU</th><th>Description 品名</th><th>Qty 数量</th><th>Unit Price 单价</th><th>Amount 金额</th></tr>
{{range .Quote.Items}}<tr><td>{{if .SKU}}{{.SKU}}{{end}}</td><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{money .UnitPrice}}</td><td>{{money (mulf .Quantity .UnitPrice)}}</td></tr>{{end}}
</table>
<div class="totals">
<p>Subtotal 小计: {{money .Quote.Subtotal}}<br>
Transport 运费: {{money .Quote.TransportCost}}<br>
Commission 佣金 ({{.Quote.CommissionRate}}%): included<br>
<strong>Total 总计: {{money .Quote.TotalAmount}}</strong></p>
</div>
</body>
</html>`))

var invoiceTemplate = template.Must(template.New("invoice").Funcs(docFuncs).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: "Helvetica Neue", "PingFang SC", sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 18px; } table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { border: 1px solid #bbb; padding: 6px 8px; text-align: left; }
.totals { margin-top: 12px; text-align: right; } .muted { color: #777; }
</style></head>
<body>
<h1>{{.Company.CompanyName}} / {{.Company.CompanyNameZh}}</h1>
<p class="muted">{{.Company.Address}} · {{.Company.Email}} · {{.Company.Phone}}</p>
<h2>Invoice 发票 {{.Invoice.Number}}</h2>
<p>Customer 客户: {{.Customer.Name}}{{if .Customer.Company}} ({{.Customer.Company}}){{end}}<br>
Issued 开具: {{date .Invoice.IssueDate}} · Due 到期: {{date .Invoice.DueDate}} · Status 状态: {{.Invoice.Status}}</p>
<table>
<tr><th>SKU</th><th>Description 品名</th><th>Qty 数量</th><th>Unit Price 单价</th><th>Amount 金额</th></tr>
{{range .Invoice.Items}}<tr><td>{{if .SKU}}{{.SKU}}{{end}}</td><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{money .UnitPrice}}</td><td>{{money (mulf .Quantity .UnitPrice)}}</td></tr>{{end}}
</table>
<div class="totals">
<p>Total 总计: {{money .Invoice.TotalAmount}}<br>
Paid 已付: {{money .Invoice.AmountPaid}}<br>
<strong>Outstanding 未付: {{money .Invoice.Outstanding}}</strong></p>
</div>
</body>
</html>`))

// BuildQuoteHTML renders the proforma invoice print view.
func BuildQuoteHTML(doc QuoteDocument) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildInvoiceHTML renders the invoice print view.
func BuildInvoiceHTML(doc InvoiceDocument) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
