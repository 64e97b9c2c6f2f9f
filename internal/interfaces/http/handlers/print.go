// internal/interfaces/http/handlers/print.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/billing"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/history"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/money"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/receipt"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// PrintHandler renders receipts as PDFs for the thermal printer
type PrintHandler struct {
	terminal       *terminal.Terminal
	receipts       *receipt.Service
	historyService *history.Service
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(t *terminal.Terminal, receipts *receipt.Service, historySvc *history.Service) *PrintHandler {
	return &PrintHandler{terminal: t, receipts: receipts, historyService: historySvc}
}

// ReceiptPDF handles GET /receipt/pdf
func (h *PrintHandler) ReceiptPDF(c *gin.Context) {
	last := h.terminal.LastReceipt()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No receipt to print",
		})
		return
	}

	pdf, err := h.receipts.Generate(last)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", last.BillNumber)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// BillPDF handles GET /history/:id/pdf, reprinting a past bill
func (h *PrintHandler) BillPDF(c *gin.Context) {
	billID, err := parseID(c, "id")
	if err != nil {
		return
	}

	bill, err := h.historyService.Detail(c.Request.Context(), billID)
	if err != nil {
		fail(c, err)
		return
	}

	pdf, err := h.receipts.Generate(billReceipt(bill))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to render receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", bill.BillNumber)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

// billReceipt converts a historical bill to the receipt shape the renderer
// expects. Cash tendered is not recorded server-side, so reprints carry no
// cash/change lines.
func billReceipt(bill *gateway.Bill) *billing.Receipt {
	items := make([]billing.ReceiptItem, len(bill.Items))
	for i, item := range bill.Items {
		items[i] = billing.ReceiptItem{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: money.ToPaise(item.Price),
		}
	}

	return &billing.Receipt{
		BillID:      bill.ID,
		BillNumber:  bill.BillNumber,
		Method:      billing.Method(bill.PaymentMethod),
		TotalAmount: money.ToPaise(bill.TotalAmount),
		Items:       items,
		CreatedAt:   bill.CreatedAt,
	}
}
