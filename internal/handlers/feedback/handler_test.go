package feedback_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/feedback/model"
	"hotel/internal/domains/feedback/model/dto"
	serviceMocks "hotel/internal/domains/feedback/service/mocks"
	"hotel/internal/handlers/feedback"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const customerID = "0c9b8a7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockFeedback) {
	t.Helper()

	svc := serviceMocks.NewMockFeedback(gomock.NewController(t))
	handler := feedback.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)
	router.Route("/customers", handler.CustomerRouter)

	return router, svc
}

func TestCreateFeedback(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *serviceMocks.MockFeedback)
		wantCode int
	}{
		{
			name:     "rating out of range never reaches the service",
			body:     `{"customer_id":"` + customerID + `","rating":9}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown customer",
			body: `{"customer_id":"` + customerID + `","rating":4}`,
			setup: func(svc *serviceMocks.MockFeedback) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.FeedbackResponse{}, failure.NotFound("customer not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "recorded",
			body: `{"customer_id":"` + customerID + `","rating":4,"comments":"Friendly staff"}`,
			setup: func(svc *serviceMocks.MockFeedback) {
				svc.EXPECT().Create(gomock.Any(), dto.CreateFeedbackRequest{CustomerID: customerID, Rating: 4, Comments: "Friendly staff"}).
					Return(dto.FeedbackResponse{ID: "f1", CustomerID: customerID, Rating: 4}, nil)
			},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestGetRatingSummary(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Summary(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, filter gDto.FilterGroup) (dto.RatingSummary, error) {
		assert.Equal(t, []any{
			gDto.Filter{Field: model.FieldCustomerID, Operator: gDto.FilterOperatorEq, Value: customerID, Table: model.TableName},
		}, filter.Filters)

		return dto.RatingSummary{AverageRating: decimal.RequireFromString("4.5"), TotalRatings: 2}, nil
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedback/summary?customer_id="+customerID+"&rating=abc", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.RatingSummary `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Data.TotalRatings)
	assert.True(t, decimal.RequireFromString("4.5").Equal(body.Data.AverageRating))
}

func TestGetCustomerFeedback(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetByCustomer(gomock.Any(), gomock.Any(), customerID).
		Return(dto.GetFeedbackResponse{}, failure.NotFound("customer not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/"+customerID+"/feedback", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
