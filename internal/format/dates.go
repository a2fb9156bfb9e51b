// Package format converts between studio date strings, Go time values, and
// spreadsheet-compatible serial dates.
package format

import (
	"fmt"
	"math"
	"time"
)

// Studio date strings are local timestamps with optional fractional seconds.
const (
	studioDateLayout      = "2006-01-02T15:04:05.000000"
	studioDateLayoutPlain = "2006-01-02T15:04:05"
)

// Spreadsheet serial dates count days from this epoch.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseStudioDate parses a studio date value.
func ParseStudioDate(value string) (time.Time, error) {
	if ts, err := time.Parse(studioDateLayout, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(studioDateLayoutPlain, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse studio date %q: %w", value, err)
	}
	return ts, nil
}

// FormatStudioDate renders a time as a studio date value.
func FormatStudioDate(ts time.Time) string {
	return ts.Format(studioDateLayout)
}

// TimeToSerial converts a time to a spreadsheet serial date. Sub-second
// precision is dropped, matching spreadsheet behavior.
func TimeToSerial(ts time.Time) float64 {
	total := ts.Sub(serialEpoch) / time.Second
	days := int64(math.Floor(float64(total) / 86400))
	remainder := int64(total) - days*86400
	return float64(days) + float64(remainder)/86400
}

// SerialToTime converts a spreadsheet serial date to a time.
func SerialToTime(serial float64) time.Time {
	return serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
}

// StudioDateToSerial converts a studio date string to a serial date.
func StudioDateToSerial(value string) (float64, error) {
	ts, err := ParseStudioDate(value)
	if err != nil {
		return 0, err
	}
	return TimeToSerial(ts), nil
}

// SerialToStudioDate converts a serial date to a studio date string.
func SerialToStudioDate(serial float64) string {
	return FormatStudioDate(SerialToTime(serial))
}
