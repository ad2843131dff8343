package timezone

import (
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var appLocation = time.UTC

func init() {
	appLocation = Load(config.Get().App.Timezone)
}

// Load resolves an IANA zone name such as "Asia/Jakarta". An empty or unknown
// name resolves to UTC.
func Load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("no timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, using " + defaultZone)

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("hotel timezone loaded")

	return loc
}

// Now is the current instant on the hotel's clock.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse reads value in the hotel's zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) //nolint:wrapcheck
}

// ParseDate reads a YYYY-MM-DD calendar date as hotel-local midnight.
func ParseDate(value string) (time.Time, error) {
	return Parse(constant.CalendarDate, value)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Today is midnight of the current hotel day. Check-ins, departures and
// overdue invoices are all judged against it.
func Today() time.Time {
	y, m, d := Now().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, appLocation)
}
