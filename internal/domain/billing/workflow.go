// internal/domain/billing/workflow.go
package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/cart"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/money"
)

// Workflow is the payment state machine layered on the cart:
//
//	Idle --Open--> SelectingMethod
//	SelectingMethod --ChooseMethod(CASH)--> AwaitingCashAmount
//	SelectingMethod --ChooseMethod(UPI)--> ReadyToSubmit
//	AwaitingCashAmount --EnterCash--> ReadyToSubmit
//	ReadyToSubmit --BeginSubmit--> Submitting --CompleteSubmit--> Idle | ReadyToSubmit
//	any non-Idle, non-Submitting --Cancel--> Idle
//
// The workflow holds no lock of its own; the terminal's event loop owns it
// exclusively. BeginSubmit/CompleteSubmit bracket the network call so the
// event loop is not held for the duration of the request.
type Workflow struct {
	cart *cart.Cart

	state    State
	method   Method
	tendered int64

	// key identifies one user-initiated checkout across manual retries
	key string
}

// SubmitAttempt is the frozen input of one in-flight submission
type SubmitAttempt struct {
	Method         Method
	Tendered       int64
	Total          int64
	Lines          []cart.Line
	Items          []gateway.BillItemRequest
	IdempotencyKey string
}

// NewWorkflow creates an idle payment workflow over the given cart
func NewWorkflow(c *cart.Cart) *Workflow {
	return &Workflow{
		cart:  c,
		state: StateIdle,
	}
}

// State returns the current workflow state
func (w *Workflow) State() State {
	return w.state
}

// Method returns the chosen payment method ("" before one is chosen)
func (w *Workflow) Method() Method {
	return w.method
}

// Tendered returns the entered cash amount in paise
func (w *Workflow) Tendered() int64 {
	return w.tendered
}

// Open starts a payment attempt for the current cart
func (w *Workflow) Open() error {
	if w.state != StateIdle {
		return apperrors.New(apperrors.CodeValidation, "A payment is already in progress")
	}
	if w.cart.IsEmpty() {
		return apperrors.New(apperrors.CodeValidation, "Cart is empty")
	}

	w.state = StateSelectingMethod
	w.method = ""
	w.tendered = 0
	w.key = uuid.New().String()
	return nil
}

// ChooseMethod selects (or switches) the payment method
func (w *Workflow) ChooseMethod(m Method) error {
	if w.state == StateIdle {
		return apperrors.New(apperrors.CodeValidation, "No payment in progress")
	}
	if w.state == StateSubmitting {
		return apperrors.New(apperrors.CodeValidation, "A submission is in progress")
	}
	if m != MethodCash && m != MethodUPI {
		return apperrors.Newf(apperrors.CodeValidation, "Unknown payment method %q", m)
	}

	w.method = m
	w.tendered = 0
	if m == MethodCash {
		w.state = StateAwaitingCashAmount
	} else {
		w.state = StateReadyToSubmit
	}
	return nil
}

// EnterCash records the tendered cash amount in paise. Whether it covers
// the total is checked at submission, like the till does.
func (w *Workflow) EnterCash(tendered int64) error {
	if w.method != MethodCash || (w.state != StateAwaitingCashAmount && w.state != StateReadyToSubmit) {
		return apperrors.New(apperrors.CodeValidation, "Cash amount is not applicable")
	}
	if tendered <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Cash given must be positive")
	}

	w.tendered = tendered
	w.state = StateReadyToSubmit
	return nil
}

// Cancel discards the in-progress attempt and returns to Idle. The cart is
// untouched. An in-flight submission cannot be cancelled.
func (w *Workflow) Cancel() error {
	if w.state == StateSubmitting {
		return apperrors.New(apperrors.CodeValidation, "Cannot cancel while submitting")
	}

	w.state = StateIdle
	w.method = ""
	w.tendered = 0
	w.key = ""
	return nil
}

// BeginSubmit validates the attempt and freezes it for submission. All
// validation failures happen here, before any network traffic. While the
// returned attempt is outstanding the workflow stays in Submitting and
// rejects every further submit.
func (w *Workflow) BeginSubmit() (*SubmitAttempt, error) {
	switch w.state {
	case StateSubmitting:
		return nil, apperrors.New(apperrors.CodeValidation, "A submission is already in progress")
	case StateReadyToSubmit:
		// fall through to validation
	default:
		return nil, apperrors.New(apperrors.CodeValidation, "Payment is not ready to submit")
	}
	if w.cart.IsEmpty() {
		return nil, apperrors.New(apperrors.CodeValidation, "Cart is empty")
	}

	total := w.cart.Total()
	if w.method == MethodCash && w.tendered < total {
		return nil, apperrors.Newf(apperrors.CodeValidation,
			"Cash given is less than total (%s < %s)", money.Format(w.tendered), money.Format(total))
	}

	attempt := &SubmitAttempt{
		Method:         w.method,
		Tendered:       w.tendered,
		Total:          total,
		Lines:          w.cart.Lines(),
		Items:          w.cart.Items(),
		IdempotencyKey: w.key,
	}

	w.state = StateSubmitting
	return attempt, nil
}

// CompleteSubmit applies the outcome of the create-bill call. On success the
// cart is cleared and the receipt is built from the frozen attempt; change
// uses the total at the moment of submission, never a later recomputation.
// On failure nothing changes locally: the attempt stays ready for a manual
// retry or cancellation.
func (w *Workflow) CompleteSubmit(attempt *SubmitAttempt, bill *gateway.Bill, submitErr error) (*Receipt, error) {
	if w.state != StateSubmitting {
		return nil, apperrors.New(apperrors.CodeValidation, "No submission in flight")
	}

	if submitErr != nil {
		w.state = StateReadyToSubmit
		return nil, submitErr
	}

	receipt := &Receipt{
		BillID:      bill.ID,
		BillNumber:  bill.BillNumber,
		Method:      attempt.Method,
		TotalAmount: money.ToPaise(bill.TotalAmount),
		CreatedAt:   bill.CreatedAt,
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	if receipt.TotalAmount == 0 {
		receipt.TotalAmount = attempt.Total
	}

	receipt.Items = make([]ReceiptItem, len(attempt.Lines))
	for i, line := range attempt.Lines {
		receipt.Items[i] = ReceiptItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	if attempt.Method == MethodCash {
		receipt.CashGiven = attempt.Tendered
		receipt.Change = attempt.Tendered - attempt.Total
	}

	w.cart.Clear()
	w.state = StateIdle
	w.method = ""
	w.tendered = 0
	w.key = ""

	return receipt, nil
}
