package dropzone

import (
	"fmt"
	"time"
)

// TimeZone is the civil time zone of the dropzone. Scheduled times are
// entered and displayed as local wall-clock HH:MM and combined with "today"
// in this zone when a plan is sent to the service.
const TimeZone = "Europe/Warsaw"

// Location returns the dropzone time zone, falling back to UTC if the zone
// database is unavailable.
func Location() *time.Location {
	loc, err := time.LoadLocation(TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NowClock returns the current wall-clock time at the dropzone as HH:MM.
func NowClock() string {
	return time.Now().In(Location()).Format("15:04")
}

// NormalizeClock validates an HH:MM value, zero-padding the hour. Anything
// that does not parse yields "".
func NormalizeClock(value string) string {
	t, err := time.Parse("15:04", value)
	if err != nil {
		// Accept a single-digit hour the way the entry form produces it.
		t, err = time.Parse("3:04", value)
		if err != nil {
			return ""
		}
	}
	return t.Format("15:04")
}

// ClockToUTC combines an HH:MM wall-clock value with today's date at the
// dropzone and returns the absolute instant. An empty or malformed value
// means "now".
func ClockToUTC(clock string, now time.Time) time.Time {
	loc := Location()
	local := now.In(loc)

	normalized := NormalizeClock(clock)
	if normalized == "" {
		return local.UTC().Truncate(time.Minute)
	}

	var hh, mm int
	fmt.Sscanf(normalized, "%d:%d", &hh, &mm)
	return time.Date(local.Year(), local.Month(), local.Day(), hh, mm, 0, 0, loc).UTC()
}

// ClockFromTimestamp extracts the dropzone wall-clock HH:MM from an absolute
// timestamp string. Timestamps without a zone offset are read as dropzone
// local time, matching what the service stores.
func ClockFromTimestamp(value string) string {
	if value == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(Location()).Format("15:04")
		}
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, Location()); err == nil {
		return t.Format("15:04")
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", value, Location()); err == nil {
		return t.Format("15:04")
	}
	return ""
}
