package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "named zone", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
		{name: "empty falls back to utc", zone: "", want: "UTC"},
		{name: "unknown falls back to utc", zone: "Mars/Olympus_Mons", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Load(tt.zone).String())
		})
	}
}

func TestParseDate(t *testing.T) {
	day, err := timezone.ParseDate("2030-01-12")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), day.Location())
	assert.Equal(t, "2030-01-12", timezone.Format(day, time.DateOnly))
	assert.Zero(t, day.Hour())

	_, err = timezone.ParseDate("12/01/2030")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	today := timezone.Today()
	now := timezone.Now()

	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Equal(t, now.Day(), today.Day())
	assert.False(t, today.After(now))
}

func TestToAppTime(t *testing.T) {
	instant := time.Date(2030, 1, 12, 23, 30, 0, 0, time.UTC)

	local := timezone.ToAppTime(instant)

	assert.True(t, local.Equal(instant))
	assert.Equal(t, timezone.GetLocation(), local.Location())
}
