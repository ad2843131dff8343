package model

import "hotel/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID          = "customer_id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldAddress     = "address"
)

const (
	CacheGet    = "customer:get"
	CacheGetAll = "customer:gets"
	CacheCount  = "customer:count"
)

type Customer struct {
	ID          string `db:"customer_id"`
	FirstName   string `db:"first_name"`
	LastName    string `db:"last_name"`
	Email       string `db:"email"`
	PhoneNumber string `db:"phone_number"`
	Address     string `db:"address"`
	model.Metadata
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}

	return c.FirstName + " " + c.LastName
}
