// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/billing"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/money"
)

// Service renders customer receipts as 80mm thermal-format PDFs
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Generate renders a receipt PDF for a completed bill
func (s *Service) Generate(r *billing.Receipt) (*bytes.Buffer, error) {
	items := make([]itemData, len(r.Items))
	for i, item := range r.Items {
		items[i] = itemData{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money.Format(item.UnitPrice),
			LineTotal: money.Format(item.UnitPrice * int64(item.Quantity)),
		}
	}

	data := receiptData{
		BillNumber: r.BillNumber,
		Date:       r.CreatedAt.Format("02 Jan 2006 3:04 PM"),
		Method:     string(r.Method),
		Items:      items,
		Total:      money.Format(r.TotalAmount),
		IsCash:     r.Method == billing.MethodCash,
		CashGiven:  money.Format(r.CashGiven),
		Change:     money.Format(r.Change),
		Shop: shopInfo{
			Name:    s.config.Shop.Name,
			Address: s.config.Shop.Address,
			Phone:   s.config.Shop.Phone,
			GSTIN:   s.config.Shop.GSTIN,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// 80mm roll, height grows with content
	pdfg.Dpi.Set(203)
	pdfg.PageWidth.Set(80)
	pdfg.PageHeight.Set(297)
	pdfg.MarginLeft.Set(2)
	pdfg.MarginRight.Set(2)
	pdfg.MarginTop.Set(2)
	pdfg.MarginBottom.Set(2)
	pdfg.Grayscale.Set(true)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.DisableSmartShrinking.Set(true)

	pdfg.AddPage(page)

	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	BillNumber string
	Date       string
	Method     string
	Items      []itemData
	Total      string
	IsCash     bool
	CashGiven  string
	Change     string
	Shop       shopInfo
}

type itemData struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

// shopInfo represents the cafe's letterhead details
type shopInfo struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// Receipt HTML template, styled for an 80mm thermal roll
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.BillNumber}}</title>
    <style>
        body {
            font-family: 'Courier New', monospace;
            font-size: 12px;
            margin: 0;
            padding: 4px;
            color: #000;
        }
        .shop-name {
            text-align: center;
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 2px;
        }
        .shop-details {
            text-align: center;
            font-size: 10px;
            margin-bottom: 8px;
        }
        .meta {
            font-size: 11px;
            margin-bottom: 6px;
        }
        .rule {
            border-top: 1px dashed #000;
            margin: 6px 0;
        }
        .items {
            width: 100%;
            border-collapse: collapse;
        }
        .items th {
            text-align: left;
            font-size: 11px;
            border-bottom: 1px dashed #000;
            padding: 2px 0;
        }
        .items td {
            padding: 2px 0;
            vertical-align: top;
        }
        .items .num {
            text-align: right;
        }
        .totals {
            width: 100%;
            margin-top: 4px;
        }
        .totals td {
            padding: 1px 0;
        }
        .totals .amount {
            text-align: right;
        }
        .grand-total {
            font-size: 14px;
            font-weight: bold;
            border-top: 1px dashed #000;
        }
        .footer {
            text-align: center;
            font-size: 10px;
            margin-top: 10px;
        }
    </style>
</head>
<body>
    <div class="shop-name">{{.Shop.Name}}</div>
    <div class="shop-details">
        {{if .Shop.Address}}{{.Shop.Address}}<br>{{end}}
        {{if .Shop.Phone}}Ph: {{.Shop.Phone}}<br>{{end}}
        {{if .Shop.GSTIN}}GSTIN: {{.Shop.GSTIN}}{{end}}
    </div>

    <div class="meta">
        Bill #: {{.BillNumber}}<br>
        Date: {{.Date}}<br>
        Payment: {{.Method}}
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Rate</th>
                <th class="num">Amt</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>{{.Name}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="rule"></div>

    <table class="totals">
        <tr class="grand-total">
            <td>TOTAL</td>
            <td class="amount">{{.Total}}</td>
        </tr>
        {{if .IsCash}}
        <tr>
            <td>Cash</td>
            <td class="amount">{{.CashGiven}}</td>
        </tr>
        <tr>
            <td>Change</td>
            <td class="amount">{{.Change}}</td>
        </tr>
        {{end}}
    </table>

    <div class="footer">
        <p>Thank you, visit again!</p>
    </div>
</body>
</html>
`
