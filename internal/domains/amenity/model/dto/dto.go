package dto

import (
	"time"

	"hotel/internal/domains/amenity/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name        string          `json:"service_name" validate:"required,max=100"`
	Description string          `json:"description"  validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"        validate:"gte=0,money"`
}

// ToModel builds an active catalog entry.
func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price.Round(2),
		Active:      true,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateServiceRequest struct {
	Name        string           `db:"service_name" json:"service_name" validate:"omitempty,max=100"`
	Description string           `db:"description"  json:"description"  validate:"omitempty,max=500"`
	Price       *decimal.Decimal `db:"price"        json:"price"        validate:"omitempty,gte=0,money"`
	Active      *bool            `db:"active"       json:"active"`
}

type ServiceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"service_name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

// AddLineItemRequest charges a service to a booking. ServiceDate defaults to today.
type AddLineItemRequest struct {
	ServiceID   string `json:"service_id"   validate:"required,uuid"`
	Quantity    int    `json:"quantity"     validate:"gte=1"`
	ServiceDate string `json:"service_date" validate:"omitempty,date"`
}

func (a *AddLineItemRequest) Day() (time.Time, error) {
	if a.ServiceDate == constant.Empty {
		return daterange.Day(timezone.Now()), nil
	}

	day, err := timezone.ParseDate(a.ServiceDate)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return daterange.Day(day), nil
}

func (a *AddLineItemRequest) ToModel(user, bookingID string, day time.Time) model.LineItem {
	return model.LineItem{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		ServiceID:   a.ServiceID,
		Quantity:    a.Quantity,
		ServiceDate: day,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type LineItemResponse struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	ServiceDate string          `json:"service_date"`
	gDto.Metadata
}

func (r *LineItemResponse) FromModel(model model.LineItem) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ServiceID = model.ServiceID
	r.ServiceName = model.ServiceName
	r.Quantity = model.Quantity
	r.UnitPrice = model.UnitPrice
	r.LineTotal = model.LineTotal()
	r.ServiceDate = daterange.Day(model.ServiceDate).Format(constant.CalendarDate)
	r.Metadata.FromModel(model.Metadata)
}

type GetLineItemsResponse struct {
	Items       []LineItemResponse `json:"items"`
	ServiceCost decimal.Decimal    `json:"service_cost"`
}

func (r *GetLineItemsResponse) FromModels(models []model.LineItem) {
	r.ServiceCost = model.ServiceCost(models)

	r.Items = make([]LineItemResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}
}
