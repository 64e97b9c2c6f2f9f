// internal/terminal/terminal.go
package terminal

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/billing"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/cart"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/catalog"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/nav"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// BillSubmitter is the slice of the back-office client checkout needs
type BillSubmitter interface {
	CreateBill(ctx context.Context, req *gateway.CreateBillRequest, idempotencyKey string) (*gateway.Bill, error)
}

// Terminal is the application-state container: it owns the session, the
// loaded catalog, the cart and the payment workflow, and serializes every
// UI event behind one mutex. Network calls run outside the lock so a slow
// back office never wedges unrelated events; the payment workflow's own
// Submitting state keeps double submission out.
type Terminal struct {
	sessions   *session.Manager
	catalogSvc *catalog.Service
	submitter  BillSubmitter
	logger     *logrus.Logger

	mu          sync.Mutex
	sess        *session.Session
	catalog     *catalog.Catalog
	cart        *cart.Cart
	workflow    *billing.Workflow
	lastReceipt *billing.Receipt
}

// CartView is the cart as the shell renders it
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Total int64       `json:"total"`
}

// PaymentView is the payment workflow as the shell renders it
type PaymentView struct {
	State    billing.State  `json:"state"`
	Method   billing.Method `json:"method,omitempty"`
	Tendered int64          `json:"tendered,omitempty"`
	Total    int64          `json:"total"`
}

// New creates a terminal with an empty cart and an idle payment workflow
func New(sessions *session.Manager, catalogSvc *catalog.Service, submitter BillSubmitter, logger *logrus.Logger) *Terminal {
	t := &Terminal{
		sessions:   sessions,
		catalogSvc: catalogSvc,
		submitter:  submitter,
		logger:     logger,
	}
	t.cart = cart.New(t.productAvailable)
	t.workflow = billing.NewWorkflow(t.cart)
	return t
}

// productAvailable consults the loaded catalog snapshot. Called by the cart
// while the terminal lock is held.
func (t *Terminal) productAvailable(productID int64) bool {
	if t.catalog == nil {
		return false
	}
	return t.catalog.Available(productID)
}

// Start restores the persisted session, if any
func (t *Terminal) Start() error {
	sess, err := t.sessions.Restore()
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.sess = sess
	t.mu.Unlock()
	return nil
}

// Session returns the active session, or nil when logged out
func (t *Terminal) Session() *session.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess
}

// Login authenticates and returns the session plus its landing page
func (t *Terminal) Login(ctx context.Context, username, password string) (*session.Session, nav.Page, error) {
	sess, err := t.sessions.Login(ctx, username, password)
	if err != nil {
		return nil, nav.PageLogin, err
	}

	t.mu.Lock()
	t.sess = sess
	t.mu.Unlock()

	return sess, nav.Default(sess), nil
}

// Logout clears the session and every piece of per-operator state
func (t *Terminal) Logout() {
	t.sessions.Logout()

	t.mu.Lock()
	t.sess = nil
	t.catalog = nil
	t.cart.Clear()
	_ = t.workflow.Cancel()
	t.lastReceipt = nil
	t.mu.Unlock()
}

// Navigate resolves a requested page token against the active session. An
// unknown role clears the session entirely rather than guessing a screen.
func (t *Terminal) Navigate(requested nav.Page) (nav.Page, error) {
	t.mu.Lock()
	sess := t.sess
	t.mu.Unlock()

	page, err := nav.Resolve(sess, requested)
	if err != nil {
		t.logger.WithError(err).Error("Session role is not recognized, logging out")
		t.Logout()
		return nav.PageLogin, err
	}
	return page, nil
}

// LoadCatalog fetches products and availability for the POS screen. On
// failure the previous snapshot is kept (possibly none: degraded screen)
// and the LoadError is surfaced for the shell to show.
func (t *Terminal) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	loaded, err := t.catalogSvc.Load(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.catalog = loaded
	t.mu.Unlock()
	return loaded, nil
}

// Catalog returns the last loaded catalog snapshot, or nil
func (t *Terminal) Catalog() *catalog.Catalog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog
}

// AddToCart puts one unit of a catalog product on the bill
func (t *Terminal) AddToCart(productID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cartMutable(); err != nil {
		return err
	}
	if t.catalog == nil {
		return apperrors.New(apperrors.CodeLoad, "Catalog is not loaded")
	}
	product, ok := t.catalog.Product(productID)
	if !ok {
		return apperrors.New(apperrors.CodeValidation, "Unknown product")
	}
	return t.cart.Add(product)
}

// IncrementLine bumps a cart line's quantity
func (t *Terminal) IncrementLine(productID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cartMutable(); err != nil {
		return err
	}
	t.cart.Increment(productID)
	return nil
}

// DecrementLine lowers a cart line's quantity, removing it at zero
func (t *Terminal) DecrementLine(productID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cartMutable(); err != nil {
		return err
	}
	t.cart.Decrement(productID)
	return nil
}

// RemoveLine drops a cart line regardless of quantity
func (t *Terminal) RemoveLine(productID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cartMutable(); err != nil {
		return err
	}
	t.cart.Remove(productID)
	return nil
}

// ClearCart empties the cart
func (t *Terminal) ClearCart() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.cartMutable(); err != nil {
		return err
	}
	t.cart.Clear()
	return nil
}

// cartMutable rejects cart mutations while a submission is in flight; the
// frozen attempt must describe exactly what the server is billing.
func (t *Terminal) cartMutable() error {
	if t.workflow.State() == billing.StateSubmitting {
		return apperrors.New(apperrors.CodeValidation, "A submission is in progress")
	}
	return nil
}

// Cart returns the cart as the shell renders it
func (t *Terminal) Cart() CartView {
	t.mu.Lock()
	defer t.mu.Unlock()

	return CartView{
		Lines: t.cart.Lines(),
		Total: t.cart.Total(),
	}
}

// OpenPayment opens the payment dialog for the current cart
func (t *Terminal) OpenPayment() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workflow.Open()
}

// ChoosePaymentMethod selects CASH or UPI
func (t *Terminal) ChoosePaymentMethod(m billing.Method) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workflow.ChooseMethod(m)
}

// EnterCash records the tendered cash amount in paise
func (t *Terminal) EnterCash(tendered int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workflow.EnterCash(tendered)
}

// CancelPayment discards the in-progress attempt, keeping the cart
func (t *Terminal) CancelPayment() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workflow.Cancel()
}

// Payment returns the payment workflow as the shell renders it
func (t *Terminal) Payment() PaymentView {
	t.mu.Lock()
	defer t.mu.Unlock()

	return PaymentView{
		State:    t.workflow.State(),
		Method:   t.workflow.Method(),
		Tendered: t.workflow.Tendered(),
		Total:    t.cart.Total(),
	}
}

// ConfirmPayment submits the bill. Validation (empty cart, short cash)
// fails here without touching the network. The create-bill call runs with
// the lock released; until it resolves, repeated confirms are rejected by
// the workflow's Submitting state. Success clears the cart and stores the
// receipt; failure preserves everything for a manual retry.
func (t *Terminal) ConfirmPayment(ctx context.Context) (*billing.Receipt, error) {
	t.mu.Lock()
	attempt, err := t.workflow.BeginSubmit()
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	bill, submitErr := t.submitter.CreateBill(ctx, &gateway.CreateBillRequest{
		PaymentMethod: string(attempt.Method),
		Items:         attempt.Items,
	}, attempt.IdempotencyKey)

	t.mu.Lock()
	defer t.mu.Unlock()

	receipt, err := t.workflow.CompleteSubmit(attempt, bill, submitErr)
	if err != nil {
		t.logger.WithError(err).Warn("Bill submission failed, cart preserved")
		return nil, err
	}

	t.lastReceipt = receipt
	t.logger.WithFields(logrus.Fields{
		"bill_number": receipt.BillNumber,
		"method":      receipt.Method,
		"total":       receipt.TotalAmount,
	}).Info("Bill created")

	return receipt, nil
}

// LastReceipt returns the receipt of the most recent checkout, or nil
func (t *Terminal) LastReceipt() *billing.Receipt {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastReceipt
}

// NewBill discards the displayed receipt so the next bill can start
func (t *Terminal) NewBill() {
	t.mu.Lock()
	t.lastReceipt = nil
	t.mu.Unlock()
}
