package dto

import (
	"time"

	"hotel/internal/domains/feedback/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateFeedbackRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	BookingID  string `json:"booking_id"  validate:"omitempty,uuid"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Comments   string `json:"comments"    validate:"omitempty,max=2000"`
}

func (c *CreateFeedbackRequest) ToModel(user string, now time.Time) model.Feedback {
	feedback := model.Feedback{
		ID:           uuid.NewString(),
		CustomerID:   c.CustomerID,
		Rating:       c.Rating,
		Comments:     c.Comments,
		FeedbackDate: now,
		Metadata:     gModel.NewMetadata(user, now),
	}

	if c.BookingID != constant.Empty {
		feedback.BookingID = &c.BookingID
	}

	return feedback
}

type FeedbackResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	BookingID    *string   `json:"booking_id,omitempty"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	FeedbackDate time.Time `json:"feedback_date"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(model model.Feedback) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.BookingID = model.BookingID
	r.Rating = model.Rating
	r.Comments = model.Comments
	r.FeedbackDate = model.FeedbackDate
	r.Metadata.FromModel(model.Metadata)
}

type GetFeedbackResponse struct {
	Feedback  []FeedbackResponse `json:"feedback"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbackResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedback = make([]FeedbackResponse, len(models))
	for i, mod := range models {
		r.Feedback[i].FromModel(mod)
	}
}

// RatingSummary is the mean rating over the matching feedback, rounded to two places. No feedback averages to zero.
type RatingSummary struct {
	AverageRating decimal.Decimal `json:"average_rating"`
	TotalRatings  int             `json:"total_ratings"`
}

func (r *RatingSummary) FromTotals(sum decimal.Decimal, count int) {
	r.TotalRatings = count
	r.AverageRating = decimal.Zero

	if count > 0 {
		r.AverageRating = sum.DivRound(decimal.NewFromInt(int64(count)), 2)
	}
}
