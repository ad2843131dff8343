package dto

import (
	"hotel/internal/domains/dashboard/model"

	"github.com/shopspring/decimal"
)

type RoomCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

type SummaryResponse struct {
	Rooms             RoomCounts      `json:"rooms"`
	CheckedInGuests   int             `json:"checked_in_guests"`
	CheckInsToday     int             `json:"check_ins_today"`
	CheckOutsToday    int             `json:"check_outs_today"`
	NewBookingsToday  int             `json:"new_bookings_today"`
	RevenueToday      decimal.Decimal `json:"revenue_today"`
	RevenueLast30Days decimal.Decimal `json:"revenue_last_30_days"`
	OpenInvoices      int             `json:"open_invoices"`
	OverdueInvoices   int             `json:"overdue_invoices"`
}

func (r *SummaryResponse) FromModel(summary model.Summary) {
	r.Rooms = RoomCounts{Total: summary.TotalRooms, ByStatus: summary.RoomsByStatus}
	r.CheckedInGuests = summary.CheckedInGuests
	r.CheckInsToday = summary.CheckInsToday
	r.CheckOutsToday = summary.CheckOutsToday
	r.NewBookingsToday = summary.NewBookingsToday
	r.RevenueToday = summary.RevenueToday
	r.RevenueLast30Days = summary.RevenueLast30Days
	r.OpenInvoices = summary.OpenInvoices
	r.OverdueInvoices = summary.OverdueInvoices
}
