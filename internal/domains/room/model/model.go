package model

import (
	"slices"
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "room_id"
	FieldRoomNumber  = "room_number"
	FieldType        = "type"
	FieldFloor       = "floor"
	FieldPrice       = "price"
	FieldStatus      = "status"
	FieldDescription = "description"
	FieldImage       = "image"
)

const (
	StatusAvailable    = "Available"
	StatusBooked       = "Booked"
	StatusCleaning     = "Cleaning"
	StatusMaintenance  = "Maintenance"
	StatusOutOfService = "Out-of-Service"
)

// Cache prefixes shared with the booking lifecycle, which also moves room statuses.
const (
	CacheGet    = "room:get"
	CacheGetAll = "room:gets"
	CacheCount  = "room:count"
)

var Statuses = []string{StatusAvailable, StatusBooked, StatusCleaning, StatusMaintenance, StatusOutOfService}

// ManualStatuses are the statuses staff may set directly. Booked belongs to the booking lifecycle.
var ManualStatuses = []string{StatusAvailable, StatusCleaning, StatusMaintenance, StatusOutOfService}

type Room struct {
	ID          string          `db:"room_id"`
	RoomNumber  string          `db:"room_number"`
	Type        string          `db:"type"`
	Floor       int             `db:"floor"`
	Price       decimal.Decimal `db:"price"`
	Status      string          `db:"status"`
	Description string          `db:"description"`
	Image       string          `db:"image"`
	model.Metadata
}

// IsBookable is false for rooms taken out of order by staff.
func (r Room) IsBookable() bool {
	return r.Status != StatusMaintenance && r.Status != StatusOutOfService
}

func (r Room) WithStatus(status, user string, at time.Time) Room {
	r.Status = status
	r.ModifiedBy = user
	r.ModifiedAt = at

	return r
}

// StatusChange is the column set written when a room's status moves.
func (r Room) StatusChange() map[string]any {
	return map[string]any{
		FieldStatus:              r.Status,
		constant.FieldModifiedAt: r.ModifiedAt,
		constant.FieldModifiedBy: r.ModifiedBy,
	}
}

func IsManualStatus(status string) bool {
	return slices.Contains(ManualStatuses, status)
}
