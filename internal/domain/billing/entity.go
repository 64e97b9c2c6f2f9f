// internal/domain/billing/entity.go
package billing

import (
	"time"
)

// Method represents a payment method
type Method string

const (
	MethodCash Method = "CASH"
	MethodUPI  Method = "UPI"
)

// State represents the payment workflow state
type State string

const (
	// StateIdle means no payment is in progress
	StateIdle State = "idle"
	// StateSelectingMethod means the payment dialog is open, no method chosen
	StateSelectingMethod State = "selecting_method"
	// StateAwaitingCashAmount means CASH was chosen, amount not yet entered
	StateAwaitingCashAmount State = "awaiting_cash_amount"
	// StateReadyToSubmit means the attempt is complete and may be submitted
	StateReadyToSubmit State = "ready_to_submit"
	// StateSubmitting means a create-bill call is in flight
	StateSubmitting State = "submitting"
)

// ReceiptItem is one line of a finalized receipt
type ReceiptItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Receipt is the immutable record of a successful checkout. It is a
// snapshot: amounts and items are copied at submission time and never alias
// the live cart, so the displayed change stays stable after the cart resets.
type Receipt struct {
	BillID      int64         `json:"bill_id"`
	BillNumber  string        `json:"bill_number"`
	Method      Method        `json:"payment_method"`
	TotalAmount int64         `json:"total_amount"`
	Items       []ReceiptItem `json:"items"`
	// CashGiven and Change are meaningful for CASH receipts only
	CashGiven int64     `json:"cash_given,omitempty"`
	Change    int64     `json:"change,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
