package dto

import (
	"time"

	"hotel/internal/domains/staff/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateStaffRequest struct {
	UserID      string          `json:"user_id"      validate:"omitempty,max=100"`
	FirstName   string          `json:"first_name"   validate:"required,max=100"`
	LastName    string          `json:"last_name"    validate:"required,max=100"`
	Email       string          `json:"email"        validate:"omitempty,email,max=255"`
	PhoneNumber string          `json:"phone_number" validate:"omitempty,max=30"`
	Address     string          `json:"address"      validate:"omitempty,max=500"`
	Position    string          `json:"position"     validate:"required,oneof=Admin Manager Receptionist Housekeeper Maintenance Chef"`
	HireDate    string          `json:"hire_date"    validate:"omitempty,date"`
	Salary      decimal.Decimal `json:"salary"       validate:"gte=0,money"`
}

// ToModel builds the employee row. HireDate has already passed validation.
func (c *CreateStaffRequest) ToModel(user string) model.Staff {
	staff := model.Staff{
		ID:          uuid.NewString(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Position:    c.Position,
		Salary:      c.Salary.Round(2),
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}

	if c.UserID != constant.Empty {
		staff.UserID = &c.UserID
	}

	if hired, err := timezone.ParseDate(c.HireDate); err == nil {
		staff.HireDate = &hired
	}

	return staff
}

type UpdateStaffRequest struct {
	FirstName   string           `db:"first_name"   json:"first_name"   validate:"omitempty,max=100"`
	LastName    string           `db:"last_name"    json:"last_name"    validate:"omitempty,max=100"`
	Email       string           `db:"email"        json:"email"        validate:"omitempty,email,max=255"`
	PhoneNumber string           `db:"phone_number" json:"phone_number" validate:"omitempty,max=30"`
	Address     string           `db:"address"      json:"address"      validate:"omitempty,max=500"`
	Position    string           `db:"position"     json:"position"     validate:"omitempty,oneof=Admin Manager Receptionist Housekeeper Maintenance Chef"`
	HireDate    string           `db:"hire_date"    json:"hire_date"    validate:"omitempty,date"`
	Salary      *decimal.Decimal `db:"salary"       json:"salary"       validate:"omitempty,gte=0,money"`
}

type StaffResponse struct {
	ID          string          `json:"id"`
	UserID      *string         `json:"user_id,omitempty"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	Address     string          `json:"address"`
	Position    string          `json:"position"`
	HireDate    string          `json:"hire_date,omitempty"`
	Salary      decimal.Decimal `json:"salary"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.FullName = model.FullName()
	r.Email = model.Email
	r.PhoneNumber = model.PhoneNumber
	r.Address = model.Address
	r.Position = model.Position
	r.HireDate = formatDate(model.HireDate)
	r.Salary = model.Salary
	r.Metadata.FromModel(model.Metadata)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return daterange.Day(*t).Format(constant.CalendarDate)
}
