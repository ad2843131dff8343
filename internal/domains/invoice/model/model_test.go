package model_test

import (
	"testing"
	"time"

	"hotel/internal/domains/invoice/model"
	"hotel/shared/daterange"
	"hotel/shared/failure"
	gModel "hotel/shared/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 1, 3, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Room 101 at 100 a night for Jan 1 to Jan 3 plus two 15.00 services.
func scenarioInvoice(t *testing.T) model.Invoice {
	t.Helper()

	stay, err := daterange.Parse("2030-01-01", "2030-01-03")
	require.NoError(t, err)

	roomCost := model.RoomCost(dec("100"), stay)
	require.True(t, dec("200").Equal(roomCost))

	serviceCost := dec("15").Mul(decimal.NewFromInt(2))

	return model.NewInvoice("inv-1", "b1", roomCost, serviceCost, now, now.AddDate(0, 0, 7), gModel.NewMetadata("staff-1", now))
}

func TestNewInvoice(t *testing.T) {
	inv := scenarioInvoice(t)

	assert.True(t, dec("230").Equal(inv.TotalAmount))
	assert.True(t, decimal.Zero.Equal(inv.PaidAmount))
	assert.True(t, dec("230").Equal(inv.BalanceDue()))
	assert.Equal(t, model.StatusPending, inv.Status)
}

func TestInvoice_ApplyPayment(t *testing.T) {
	t.Run("full payment settles", func(t *testing.T) {
		inv, err := scenarioInvoice(t).ApplyPayment(dec("230"), "staff-1", now)
		require.NoError(t, err)

		assert.Equal(t, model.StatusPaid, inv.Status)
		assert.True(t, inv.BalanceDue().IsZero())
	})

	t.Run("overpayment leaves paid untouched", func(t *testing.T) {
		inv := scenarioInvoice(t)

		after, err := inv.ApplyPayment(dec("231"), "staff-1", now)

		assert.ErrorIs(t, err, failure.ErrOverpayment)
		assert.True(t, decimal.Zero.Equal(after.PaidAmount))
		assert.Equal(t, model.StatusPending, after.Status)
	})

	t.Run("partial payments reach paid", func(t *testing.T) {
		inv := scenarioInvoice(t)
		parts := []string{"100", "50.50", "79.49", "0.01"}

		for i, p := range parts {
			var err error

			inv, err = inv.ApplyPayment(dec(p), "staff-1", now)
			require.NoError(t, err)

			if i < len(parts)-1 {
				assert.Equal(t, model.StatusPartiallyPaid, inv.Status)
			}
		}

		assert.Equal(t, model.StatusPaid, inv.Status)
		assert.True(t, inv.BalanceDue().IsZero())

		_, err := inv.ApplyPayment(dec("0.01"), "staff-1", now)
		assert.ErrorIs(t, err, failure.ErrOverpayment)
	})

	tests := []struct {
		name   string
		amount string
		status string
		kind   error
	}{
		{name: "zero", amount: "0", kind: failure.ErrInvalidAmount},
		{name: "negative", amount: "-5", kind: failure.ErrInvalidAmount},
		{name: "sub-cent", amount: "1.005", kind: failure.ErrInvalidAmount},
		{name: "cancelled invoice", amount: "10", status: model.StatusCancelled, kind: failure.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := scenarioInvoice(t)
			if tt.status != "" {
				inv.Status = tt.status
			}

			_, err := inv.ApplyPayment(dec(tt.amount), "staff-1", now)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestInvoice_DisplayStatus(t *testing.T) {
	inv := scenarioInvoice(t)
	due := inv.DueDate

	assert.Equal(t, model.StatusPending, inv.DisplayStatus(due))
	assert.Equal(t, model.StatusOverdue, inv.DisplayStatus(due.AddDate(0, 0, 1)))

	partial, err := inv.ApplyPayment(dec("30"), "staff-1", now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOverdue, partial.DisplayStatus(due.AddDate(0, 0, 1)))

	paid, err := inv.ApplyPayment(dec("230"), "staff-1", now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, paid.DisplayStatus(due.AddDate(0, 1, 0)))

	cancelled := inv
	cancelled.Status = model.StatusCancelled
	assert.Equal(t, model.StatusCancelled, cancelled.DisplayStatus(due.AddDate(0, 1, 0)))
}

func TestInvoice_Edits(t *testing.T) {
	inv := scenarioInvoice(t)

	repriced, err := inv.WithCosts(dec("300"), dec("0"), "staff-2", now)
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(repriced.TotalAmount))

	_, err = inv.WithStatus(model.StatusPaid, "staff-2", now)
	assert.ErrorIs(t, err, failure.ErrInvalidTransition)

	cancelled, err := inv.WithStatus(model.StatusCancelled, "staff-2", now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	_, err = inv.WithDueDate(inv.IssueDate.AddDate(0, 0, -1), "staff-2", now)
	assert.Error(t, err)

	partial, err := inv.ApplyPayment(dec("10"), "staff-1", now)
	require.NoError(t, err)

	_, err = partial.WithCosts(dec("300"), dec("0"), "staff-2", now)
	assert.ErrorIs(t, err, failure.ErrInvalidTransition)

	_, err = partial.WithStatus(model.StatusCancelled, "staff-2", now)
	assert.ErrorIs(t, err, failure.ErrInvalidTransition)

	moved, err := partial.WithDueDate(partial.DueDate.AddDate(0, 0, 14), "staff-2", now)
	require.NoError(t, err)
	assert.True(t, moved.DueDate.After(partial.DueDate))
}
