package model_test

import (
	"testing"
	"time"

	"hotel/internal/domains/amenity/model"
	"hotel/shared/daterange"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCost(t *testing.T) {
	items := []model.LineItem{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("15.00")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("4.50")},
	}

	assert.True(t, decimal.RequireFromString("34.50").Equal(model.ServiceCost(items)))
	assert.True(t, decimal.Zero.Equal(model.ServiceCost(nil)))
}

func TestWithinStay(t *testing.T) {
	stay, err := daterange.Parse("2030-01-01", "2030-01-03")
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2030, 1, d, 9, 0, 0, 0, time.UTC) }

	assert.False(t, model.WithinStay(stay, time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, model.WithinStay(stay, day(1)))
	assert.True(t, model.WithinStay(stay, day(2)))
	assert.True(t, model.WithinStay(stay, day(3)))
	assert.False(t, model.WithinStay(stay, day(4)))
}
