package dto

import (
	"hotel/internal/domains/customer/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FirstName   string `json:"first_name"   validate:"required,max=100"`
	LastName    string `json:"last_name"    validate:"omitempty,max=100"`
	Email       string `json:"email"        validate:"omitempty,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
	Address     string `json:"address"      validate:"omitempty,max=500"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:          uuid.NewString(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateCustomerRequest struct {
	FirstName   string `db:"first_name"   json:"first_name"   validate:"omitempty,max=100"`
	LastName    string `db:"last_name"    json:"last_name"    validate:"omitempty,max=100"`
	Email       string `db:"email"        json:"email"        validate:"omitempty,email,max=255"`
	PhoneNumber string `db:"phone_number" json:"phone_number" validate:"omitempty,max=30"`
	Address     string `db:"address"      json:"address"      validate:"omitempty,max=500"`
}

type CustomerResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.FullName = model.FullName()
	r.Email = model.Email
	r.PhoneNumber = model.PhoneNumber
	r.Address = model.Address
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
