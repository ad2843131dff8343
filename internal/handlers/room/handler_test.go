package room_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/room/model/dto"
	serviceMocks "hotel/internal/domains/room/service/mocks"
	"hotel/internal/handlers/room"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "7b1e2d3c-4f5a-4b6c-9d8e-1a2b3c4d5e6f"

func newRouter(t *testing.T) (http.Handler, *serviceMocks.MockRoom) {
	t.Helper()

	svc := serviceMocks.NewMockRoom(gomock.NewController(t))
	handler := room.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestCreateRoom(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		setup    func(svc *serviceMocks.MockRoom)
		wantCode int
	}{
		{
			name:   "created",
			fields: map[string]string{"room_number": "101", "type": "Deluxe", "floor": "1", "price": "100.00"},
			setup: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req dto.CreateRoomRequest) error {
					assert.Equal(t, "101", req.RoomNumber)
					assert.Equal(t, 1, req.Floor)
					assert.True(t, decimal.NewFromInt(100).Equal(req.Price))
					assert.Nil(t, req.Image)

					return nil
				})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "price is not a number",
			fields:   map[string]string{"room_number": "101", "type": "Deluxe", "price": "cheap"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "sub cent price",
			fields:   map[string]string{"room_number": "101", "type": "Deluxe", "price": "99.999"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing room number",
			fields:   map[string]string{"type": "Deluxe", "price": "100"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "duplicate number",
			fields: map[string]string{"room_number": "101", "type": "Deluxe", "price": "100"},
			setup: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(failure.Conflict("room number 101 already exists"))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, multipartRequest(t, http.MethodPost, "/rooms", tt.fields))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestUpdateRoom_OnlySentFields(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), roomID).DoAndReturn(func(_ context.Context, req dto.UpdateRoomRequest, _ string) error {
		require.NotNil(t, req.Price)
		assert.True(t, decimal.RequireFromString("120.50").Equal(*req.Price))
		assert.Nil(t, req.Floor)
		assert.Empty(t, req.RoomNumber)

		return nil
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, http.MethodPatch, "/rooms/"+roomID, map[string]string{"price": "120.50"}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetRooms_Filters(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
			assert.Equal(t, 2, params.Page)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(LOWER(rooms.room_number) LIKE LOWER(:room_number)  AND rooms.status = :status)", where)
			assert.Equal(t, "%10%", args["room_number"])

			return dto.GetRoomsResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rooms?page=2&status=Cleaning&room_number=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateRoomStatus(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *serviceMocks.MockRoom)
		wantCode int
	}{
		{
			name: "maintenance",
			body: `{"status":"Maintenance"}`,
			setup: func(svc *serviceMocks.MockRoom) {
				svc.EXPECT().UpdateStatus(gomock.Any(), dto.UpdateRoomStatusRequest{Status: "Maintenance"}, roomID).Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "booked is owned by the booking lifecycle",
			body:     `{"status":"Booked"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/rooms/"+roomID+"/status", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
