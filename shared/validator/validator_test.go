package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"hotel/shared/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type guestRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Adults    int    `json:"adults"     validate:"gte=1,lte=10"`
	Status    string `json:"status"     validate:"omitempty,oneof=Confirmed Cancelled"`
}

func TestValidateStruct(t *testing.T) {
	valid := guestRequest{FirstName: "Ana", Email: "ana@example.com", Adults: 2}

	tests := []struct {
		name    string
		mutate  func(r *guestRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*guestRequest) {}},
		{name: "missing name", mutate: func(r *guestRequest) { r.FirstName = "" }, wantErr: "first_name is required"},
		{name: "bad email", mutate: func(r *guestRequest) { r.Email = "ana-at-example" }, wantErr: "email must be a valid email address"},
		{name: "no adults", mutate: func(r *guestRequest) { r.Adults = 0 }, wantErr: "adults must be greater than or equal to 1"},
		{name: "unknown status", mutate: func(r *guestRequest) { r.Status = "Pending" }, wantErr: "status must be one of Confirmed Cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"first_name":"Ana","adults":2}`},
		{name: "rule violation", body: `{"first_name":"Ana","adults":11}`, wantErr: "adults must be less than or equal to 10"},
		{name: "malformed", body: `{"first_name":}`, wantErr: "failed to decode request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req guestRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("2030-01-12", "date"))
	assert.Error(t, validator.ValidateVar("12/01/2030", "date"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

type paymentRequest struct {
	PaymentDate string           `json:"payment_date" validate:"required,date"`
	Amount      decimal.Decimal  `json:"amount"       validate:"gt=0,money"`
	Discount    *decimal.Decimal `json:"discount"     validate:"omitempty,money"`
}

func TestValidateStruct_DateAndMoney(t *testing.T) {
	fraction := decimal.RequireFromString("0.125")
	cents := decimal.RequireFromString("5.25")

	tests := []struct {
		name    string
		data    paymentRequest
		wantErr string
	}{
		{name: "valid", data: paymentRequest{PaymentDate: "2030-01-12", Amount: decimal.RequireFromString("150.50"), Discount: &cents}},
		{name: "bad date", data: paymentRequest{PaymentDate: "01/12/2030", Amount: decimal.NewFromInt(10)}, wantErr: "payment_date must be a date in YYYY-MM-DD format"},
		{name: "zero amount", data: paymentRequest{PaymentDate: "2030-01-12", Amount: decimal.Zero}, wantErr: "amount must be greater than 0"},
		{name: "sub cent amount", data: paymentRequest{PaymentDate: "2030-01-12", Amount: decimal.RequireFromString("10.005")}, wantErr: "amount must not have more than 2 decimal places"},
		{name: "sub cent pointer", data: paymentRequest{PaymentDate: "2030-01-12", Amount: decimal.NewFromInt(10), Discount: &fraction}, wantErr: "discount must not have more than 2 decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

type imageRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func TestValidateStruct_Upload(t *testing.T) {
	header := func(contentType string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "room.png",
			Size:     size,
			Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
		}
	}

	assert.NoError(t, validator.ValidateStruct(&imageRequest{}))
	assert.NoError(t, validator.ValidateStruct(&imageRequest{Image: header("image/png", 512<<10)}))
	assert.EqualError(t, validator.ValidateStruct(&imageRequest{Image: header("application/pdf", 10)}), "image must be one of image/png image/jpeg")
	assert.EqualError(t, validator.ValidateStruct(&imageRequest{Image: header("image/png", 2<<20)}), "image must not exceed 1 MB")
}
