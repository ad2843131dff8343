package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2030, 1, 12, 14, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		CreatedBy:  "front-desk-1",
		ModifiedBy: "front-desk-1",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Equal(t, "front-desk-1", metadata.CreatedBy)
	assert.Equal(t, "front-desk-1", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:  "explicit values",
			query: "page=2&limit=20&sort_by=check_in_date&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in_date", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults fill the gaps",
			withDefaults: true,
			want: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:  "limit is capped",
			query: "limit=5000",
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:  "garbage is ignored",
			query: "page=-3&limit=ten&sort_dir=sideways",
			want:  dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil), tt.withDefaults)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Zero(t, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Zero(t, dto.QueryParams{Limit: 10}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "r1"},
		},
		{
			name:      "strictly less with arg name",
			filter:    dto.Filter{ArgName: "stay_end", Field: "check_in_date", Value: "2030-01-14", Operator: dto.FilterOperatorLess},
			wantWhere: "check_in_date < :stay_end",
			wantArgs:  map[string]any{"stay_end": "2030-01-14"},
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "payment_date", Value: "2030-01-01", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "payment_date >= :payment_date",
			wantArgs:  map[string]any{"payment_date": "2030-01-01"},
		},
		{
			name:      "like wraps the value",
			filter:    dto.Filter{Field: "last_name", Value: "Tan", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(last_name) LIKE LOWER(:last_name) ",
			wantArgs:  map[string]any{"last_name": "%Tan%"},
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "status", Value: []string{"Confirmed", "Checked-in"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1) ",
			wantArgs:  map[string]any{"status_0": "Confirmed", "status_1": "Checked-in"},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with scalar is bound",
			filter:    dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status) ",
			wantArgs:  map[string]any{"status": "Pending"},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "status", Value: "Pending", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  int
	}{
		{
			name: "explicit and",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorNotEq},
				},
			},
			wantWhere: "(a = :a AND b != :b)",
			wantArgs:  2,
		},
		{
			name: "empty operator means and",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorEq},
				},
			},
			wantWhere: "(a = :a AND b = :b)",
			wantArgs:  2,
		},
		{
			name: "nested or group",
			group: dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "first_name", Value: "ana", Operator: dto.FilterOperatorLike},
							dto.Filter{Field: "last_name", Value: "ana", Operator: dto.FilterOperatorLike},
						},
					},
				},
			},
			wantWhere: "(room_id = :room_id AND (LOWER(first_name) LIKE LOWER(:first_name)  OR LOWER(last_name) LIKE LOWER(:last_name) ))",
			wantArgs:  3,
		},
		{
			name: "empty nested group is skipped",
			group: dto.FilterGroup{
				Filters: []any{
					dto.FilterGroup{},
					dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
				},
			},
			wantWhere: "(a = :a)",
			wantArgs:  1,
		},
		{
			name:      "no filters",
			group:     dto.FilterGroup{},
			wantWhere: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}
