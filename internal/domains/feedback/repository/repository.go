package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/feedback/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/shopspring/decimal"
)

// Feedback is append-only: rows are never edited or removed through the API.
type Feedback interface {
	Insert(ctx context.Context, model model.Feedback) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Feedback, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Feedback, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Sum(ctx context.Context, expression string, filter gDto.FilterGroup) (decimal.Decimal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Feedback]
}

func New(db *postgres.Connection, otel otel.Otel) Feedback {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Feedback](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
