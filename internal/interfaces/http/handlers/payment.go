// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/billing"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/money"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/terminal"
)

// PaymentHandler drives the payment workflow for the bill at the counter
type PaymentHandler struct {
	terminal *terminal.Terminal
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(t *terminal.Terminal) *PaymentHandler {
	return &PaymentHandler{terminal: t}
}

// State handles GET /payment
func (h *PaymentHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Payment(),
	})
}

// Open handles POST /payment/open
func (h *PaymentHandler) Open(c *gin.Context) {
	if err := h.terminal.OpenPayment(); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Payment(),
	})
}

// ChooseMethod handles POST /payment/method
func (h *PaymentHandler) ChooseMethod(c *gin.Context) {
	var req struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "method is required",
		})
		return
	}

	if err := h.terminal.ChoosePaymentMethod(billing.Method(req.Method)); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Payment(),
	})
}

// EnterCash handles POST /payment/cash. The shell sends the tendered amount
// as a rupee string; it is parsed to paise here.
func (h *PaymentHandler) EnterCash(c *gin.Context) {
	var req struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "amount is required",
		})
		return
	}

	tendered, err := money.ParsePaise(req.Amount)
	if err != nil {
		fail(c, apperrors.New(apperrors.CodeValidation, "Cash given must be a number"))
		return
	}

	if err := h.terminal.EnterCash(tendered); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": h.terminal.Payment(),
	})
}

// Cancel handles POST /payment/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	if err := h.terminal.CancelPayment(); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment cancelled",
		"data":    h.terminal.Payment(),
	})
}

// Confirm handles POST /payment/confirm. Success responds with the receipt;
// failure leaves cart and attempt intact for a manual retry.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	receipt, err := h.terminal.ConfirmPayment(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bill created",
		"data":    receipt,
	})
}

// Receipt handles GET /receipt, the receipt of the most recent checkout
func (h *PaymentHandler) Receipt(c *gin.Context) {
	receipt := h.terminal.LastReceipt()
	if receipt == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No receipt to show",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": receipt,
	})
}

// NewBill handles POST /receipt/new-bill, dismissing the receipt screen
func (h *PaymentHandler) NewBill(c *gin.Context) {
	h.terminal.NewBill()

	c.JSON(http.StatusOK, gin.H{
		"message": "Ready for next bill",
	})
}
