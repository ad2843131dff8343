package model

import (
	"github.com/shopspring/decimal"
)

const (
	CacheSummary = "dashboard:summary"

	// RevenueWindowDays counts today, so the window starts 29 days back.
	RevenueWindowDays = 30
)

// Summary is the front-desk snapshot. Every figure is read at the same request time.
type Summary struct {
	RoomsByStatus     map[string]int
	TotalRooms        int
	CheckedInGuests   int
	CheckInsToday     int
	CheckOutsToday    int
	NewBookingsToday  int
	RevenueToday      decimal.Decimal
	RevenueLast30Days decimal.Decimal
	OpenInvoices      int
	OverdueInvoices   int
}
