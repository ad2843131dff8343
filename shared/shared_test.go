package shared_test

import (
	"testing"
	"time"

	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: &yes},
		{input: "1", want: &yes},
		{input: "T", want: &yes},
		{input: "false", want: &no},
		{input: "0", want: &no},
		{input: "maybe", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "single row", total: 1, limit: 10, want: 1},
		{name: "zero limit", total: 50, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoom struct {
		RoomType    string           `db:"type"`
		Floor       int              `db:"floor"`
		Price       *decimal.Decimal `db:"price"`
		Active      *bool            `db:"active"`
		Description string           `db:"description"`
		Image       string           `db:"-"`
		Untagged    string
	}

	price := decimal.RequireFromString("149.90")
	inactive := false

	tests := []struct {
		name string
		data any
		want map[string]any
	}{
		{
			name: "populated fields by db tag",
			data: updateRoom{RoomType: "Suite", Floor: 3, Image: "ignored", Untagged: "ignored"},
			want: map[string]any{"type": "Suite", "floor": 3},
		},
		{
			name: "pointers are dereferenced",
			data: updateRoom{Price: &price, Active: &inactive},
			want: map[string]any{"price": price, "active": false},
		},
		{
			name: "pointer to struct",
			data: &updateRoom{Description: "Sea view"},
			want: map[string]any{"description": "Sea view"},
		},
		{
			name: "nothing to update",
			data: updateRoom{},
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "staff-1")

			assert.Equal(t, "staff-1", result[constant.FieldModifiedBy])
			require.IsType(t, time.Time{}, result[constant.FieldModifiedAt])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			assert.Equal(t, tt.want, result)
		})
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("room-1", "room_id", "rooms")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(rooms.room_id = :room_id)", where)
	assert.Equal(t, map[string]any{"room_id": "room-1"}, args)
	assert.Equal(t, dto.FilterOperatorEq, filter.Filters[0].(dto.Filter).Operator)
}
