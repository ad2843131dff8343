package model

import (
	"time"

	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID          = "staff_id"
	FieldUserID      = "user_id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldAddress     = "address"
	FieldPosition    = "position"
	FieldHireDate    = "hire_date"
	FieldSalary      = "salary"
)

const (
	PositionAdmin        = "Admin"
	PositionManager      = "Manager"
	PositionReceptionist = "Receptionist"
	PositionHousekeeper  = "Housekeeper"
	PositionMaintenance  = "Maintenance"
	PositionChef         = "Chef"
)

const (
	CacheGet    = "staff:get"
	CacheGetAll = "staff:gets"
	CacheCount  = "staff:count"
)

// Staff is an employee record. UserID links it to the subject of the access tokens, when the employee signs in.
type Staff struct {
	ID          string          `db:"staff_id"`
	UserID      *string         `db:"user_id"`
	FirstName   string          `db:"first_name"`
	LastName    string          `db:"last_name"`
	Email       string          `db:"email"`
	PhoneNumber string          `db:"phone_number"`
	Address     string          `db:"address"`
	Position    string          `db:"position"`
	HireDate    *time.Time      `db:"hire_date"`
	Salary      decimal.Decimal `db:"salary"`
	model.Metadata
}

func (s Staff) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}

	return s.FirstName + " " + s.LastName
}
