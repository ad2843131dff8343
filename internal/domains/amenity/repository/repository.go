package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/amenity/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Service interface {
	Insert(ctx context.Context, model model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

// LineItem reads booking_services joined with the catalog so each row carries its unit price.
type LineItem interface {
	Insert(ctx context.Context, model model.LineItem) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.LineItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.LineItem, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) ([]model.LineItem, error)
	Sum(ctx context.Context, expression string, filter gDto.FilterGroup) (decimal.Decimal, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type serviceRepositoryImpl struct {
	gRepo.Repository[model.Service]
}

func NewService(db *postgres.Connection, otel otel.Otel) Service {
	return &serviceRepositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type lineItemRepositoryImpl struct {
	gRepo.Repository[model.LineItem]
}

func NewLineItem(db *postgres.Connection, otel otel.Otel) LineItem {
	return &lineItemRepositoryImpl{
		Repository: gRepo.NewRepository[model.LineItem](model.LineItemEntityName, model.LineItemTableName, model.FieldLineItemID, db, otel),
	}
}

// ByBookingFilter selects the line items charged to one booking.
func ByBookingFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.LineItemTableName},
		},
	}
}
