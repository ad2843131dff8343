// Package model describes guest feedback: a 1 to 5 rating, optionally tied to one of the guest's bookings.
package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "feedback"
	EntityName = "feedback"

	FieldID           = "feedback_id"
	FieldCustomerID   = "customer_id"
	FieldBookingID    = "booking_id"
	FieldRating       = "rating"
	FieldComments     = "comments"
	FieldFeedbackDate = "feedback_date"
)

const (
	MinRating = 1
	MaxRating = 5
)

const (
	CacheGet     = "feedback:get"
	CacheGetAll  = "feedback:gets"
	CacheCount   = "feedback:count"
	CacheSummary = "feedback:summary"
)

type Feedback struct {
	ID           string    `db:"feedback_id"`
	CustomerID   string    `db:"customer_id"`
	BookingID    *string   `db:"booking_id"`
	Rating       int       `db:"rating"`
	Comments     string    `db:"comments"`
	FeedbackDate time.Time `db:"feedback_date"`
	model.Metadata
}
