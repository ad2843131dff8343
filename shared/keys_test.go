package shared_test

import (
	"context"
	"errors"
	"testing"

	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:42", shared.BuildCacheKey("room:get", "42"))
	assert.Equal(t, "limiter:1.2.3.4:curl", shared.BuildCacheKey("limiter", "1.2.3.4", "curl"))
	assert.Equal(t, "prefix", shared.BuildCacheKey("prefix"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("a", "room_id", "bookings")

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, shared.FilterByID("b", "room_id", "bookings"))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "booking:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets"+constant.Asterix).Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count"+constant.Asterix).Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}

func TestConvertStringToInt(t *testing.T) {
	v, err := shared.ConvertStringToInt(" 12 ")
	assert.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = shared.ConvertStringToInt("twelve")
	assert.Error(t, err)
}

func TestIsPqError(t *testing.T) {
	err := &pq.Error{Code: constant.PqErrorCodeExclusionViolation}

	assert.True(t, shared.IsPqError(err, constant.PqErrorCodeExclusionViolation))
	assert.False(t, shared.IsPqError(err, constant.PqErrorCodeUniqueViolation))
	assert.False(t, shared.IsPqError(errors.New("plain"), constant.PqErrorCodeUniqueViolation))
}
