package common

import (
	"errors"
	"strconv"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ParseTime accepts the dataset's timestamp formats, RFC3339, plain
// YYYY-MM-DD dates (midnight UTC) and unix seconds.
func ParseTime(s string) (time.Time, error) {
	if ts, err := weather.ParseTimestamp(s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use YYYY-MM-DD, RFC3339 or unix seconds")
}
