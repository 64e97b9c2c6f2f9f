package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/cart"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/catalog"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

var espresso = catalog.Product{ID: 1, Name: "Espresso", Price: 5000, Category: 1}

func cartWith(t *testing.T, products ...catalog.Product) *cart.Cart {
	t.Helper()
	c := cart.New(nil)
	for _, p := range products {
		require.NoError(t, c.Add(p))
	}
	return c
}

func serverBill(total string) *gateway.Bill {
	return &gateway.Bill{
		ID:          7,
		BillNumber:  "B-0007",
		TotalAmount: decimal.RequireFromString(total),
		CreatedAt:   time.Date(2026, 8, 30, 11, 30, 0, 0, time.UTC),
	}
}

func TestOpenRequiresNonEmptyCart(t *testing.T) {
	w := NewWorkflow(cart.New(nil))

	err := w.Open()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Equal(t, StateIdle, w.State())
}

func TestOpenTwiceRejected(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))

	require.NoError(t, w.Open())
	assert.Error(t, w.Open())
	assert.Equal(t, StateSelectingMethod, w.State())
}

func TestChooseMethodRoutesStates(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())

	require.NoError(t, w.ChooseMethod(MethodCash))
	assert.Equal(t, StateAwaitingCashAmount, w.State())

	// Switching methods is allowed before submission
	require.NoError(t, w.ChooseMethod(MethodUPI))
	assert.Equal(t, StateReadyToSubmit, w.State())

	assert.Error(t, w.ChooseMethod("CARD"))
}

func TestSwitchingToCashDiscardsTenderedAmount(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))
	require.NoError(t, w.EnterCash(10000))

	require.NoError(t, w.ChooseMethod(MethodCash))
	assert.Equal(t, int64(0), w.Tendered())
	assert.Equal(t, StateAwaitingCashAmount, w.State())
}

func TestEnterCashRequiresCashMethod(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))

	assert.Error(t, w.EnterCash(10000))
}

func TestEnterCashRejectsNonPositive(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))

	assert.Error(t, w.EnterCash(0))
	assert.Error(t, w.EnterCash(-100))
}

func TestBeginSubmitBlocksShortCashBeforeNetwork(t *testing.T) {
	c := cartWith(t, espresso, espresso) // total 10000
	w := NewWorkflow(c)
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))
	require.NoError(t, w.EnterCash(5000))

	attempt, err := w.BeginSubmit()
	require.Nil(t, attempt)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Equal(t, "Cash given is less than total (₹50.00 < ₹100.00)", apperrors.MessageOf(err))
	// Nothing was frozen; the attempt stays editable
	assert.Equal(t, StateReadyToSubmit, w.State())
}

func TestBeginSubmitFreezesAttempt(t *testing.T) {
	c := cartWith(t, espresso, espresso)
	w := NewWorkflow(c)
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))
	require.NoError(t, w.EnterCash(20000))

	attempt, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, w.State())
	assert.Equal(t, MethodCash, attempt.Method)
	assert.Equal(t, int64(20000), attempt.Tendered)
	assert.Equal(t, int64(10000), attempt.Total)
	require.Len(t, attempt.Items, 1)
	assert.Equal(t, 2, attempt.Items[0].Quantity)
	assert.NotEmpty(t, attempt.IdempotencyKey)
}

func TestSecondBeginSubmitRejectedWhileInFlight(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))

	_, err := w.BeginSubmit()
	require.NoError(t, err)

	_, err = w.BeginSubmit()
	require.Error(t, err)
	assert.Equal(t, "A submission is already in progress", apperrors.MessageOf(err))
}

func TestCompleteSubmitSuccessBuildsReceiptAndClearsCart(t *testing.T) {
	c := cartWith(t, espresso, espresso)
	w := NewWorkflow(c)
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))
	require.NoError(t, w.EnterCash(20000))

	attempt, err := w.BeginSubmit()
	require.NoError(t, err)

	receipt, err := w.CompleteSubmit(attempt, serverBill("100.00"), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(7), receipt.BillID)
	assert.Equal(t, "B-0007", receipt.BillNumber)
	assert.Equal(t, MethodCash, receipt.Method)
	assert.Equal(t, int64(10000), receipt.TotalAmount)
	assert.Equal(t, int64(20000), receipt.CashGiven)
	assert.Equal(t, int64(10000), receipt.Change)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, 2, receipt.Items[0].Quantity)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, StateIdle, w.State())
}

func TestChangeUsesTotalAtSubmissionTime(t *testing.T) {
	c := cartWith(t, espresso) // total 5000
	w := NewWorkflow(c)
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))
	require.NoError(t, w.EnterCash(10000))

	attempt, err := w.BeginSubmit()
	require.NoError(t, err)

	receipt, err := w.CompleteSubmit(attempt, serverBill("50.00"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), receipt.Change)
}

func TestUPIReceiptCarriesNoCashFields(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))

	attempt, err := w.BeginSubmit()
	require.NoError(t, err)

	receipt, err := w.CompleteSubmit(attempt, serverBill("50.00"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), receipt.CashGiven)
	assert.Equal(t, int64(0), receipt.Change)
}

func TestCompleteSubmitFailurePreservesCartAndAttempt(t *testing.T) {
	c := cartWith(t, espresso)
	w := NewWorkflow(c)
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))

	attempt, err := w.BeginSubmit()
	require.NoError(t, err)

	submitErr := apperrors.New(apperrors.CodeSubmission, "Payment failed")
	_, err = w.CompleteSubmit(attempt, nil, submitErr)
	require.Error(t, err)
	assert.True(t, errors.Is(err, submitErr) || apperrors.Is(err, apperrors.CodeSubmission))

	// The cart and the attempt survive for a manual retry
	assert.False(t, c.IsEmpty())
	assert.Equal(t, StateReadyToSubmit, w.State())

	// The retry reuses the same idempotency key
	retry, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, attempt.IdempotencyKey, retry.IdempotencyKey)
}

func TestMissingServerTotalFallsBackToLocalTotal(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))

	attempt, err := w.BeginSubmit()
	require.NoError(t, err)

	bill := &gateway.Bill{ID: 9, BillNumber: "B-0009"}
	receipt, err := w.CompleteSubmit(attempt, bill, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), receipt.TotalAmount)
	assert.False(t, receipt.CreatedAt.IsZero())
}

func TestCancelKeepsCart(t *testing.T) {
	c := cartWith(t, espresso)
	w := NewWorkflow(c)
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodCash))
	require.NoError(t, w.EnterCash(10000))

	require.NoError(t, w.Cancel())
	assert.Equal(t, StateIdle, w.State())
	assert.Equal(t, Method(""), w.Method())
	assert.False(t, c.IsEmpty())
}

func TestCancelRejectedWhileSubmitting(t *testing.T) {
	w := NewWorkflow(cartWith(t, espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))

	_, err := w.BeginSubmit()
	require.NoError(t, err)

	assert.Error(t, w.Cancel())
}

func TestNewAttemptGetsNewIdempotencyKey(t *testing.T) {
	c := cartWith(t, espresso)
	w := NewWorkflow(c)

	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))
	first, err := w.BeginSubmit()
	require.NoError(t, err)
	_, err = w.CompleteSubmit(first, serverBill("50.00"), nil)
	require.NoError(t, err)

	require.NoError(t, c.Add(espresso))
	require.NoError(t, w.Open())
	require.NoError(t, w.ChooseMethod(MethodUPI))
	second, err := w.BeginSubmit()
	require.NoError(t, err)

	assert.NotEqual(t, first.IdempotencyKey, second.IdempotencyKey)
}
