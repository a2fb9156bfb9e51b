package format

import (
	"math"
	"testing"
	"time"
)

func TestParseStudioDateBothLayouts(t *testing.T) {
	withFraction, err := ParseStudioDate("2024-03-01T12:30:45.250000")
	if err != nil {
		t.Fatalf("parse fractional: %v", err)
	}
	if withFraction.Nanosecond() != 250_000_000 {
		t.Fatalf("nanoseconds = %d", withFraction.Nanosecond())
	}

	plain, err := ParseStudioDate("2024-03-01T12:30:45")
	if err != nil {
		t.Fatalf("parse plain: %v", err)
	}
	if plain.Second() != 45 {
		t.Fatalf("seconds = %d", plain.Second())
	}

	if _, err := ParseStudioDate("03/01/2024"); err == nil {
		t.Fatal("expected error for unsupported layout")
	}
}

func TestFormatStudioDateRoundTrip(t *testing.T) {
	original := time.Date(2024, time.March, 1, 12, 30, 45, 250_000_000, time.UTC)
	parsed, err := ParseStudioDate(FormatStudioDate(original))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if !parsed.Equal(original) {
		t.Fatalf("parsed = %v, want %v", parsed, original)
	}
}

func TestSerialEpoch(t *testing.T) {
	epoch := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	if got := TimeToSerial(epoch); got != 0 {
		t.Fatalf("serial of epoch = %v, want 0", got)
	}
	if got := TimeToSerial(epoch.AddDate(0, 0, 2)); got != 2 {
		t.Fatalf("serial of epoch+2d = %v, want 2", got)
	}
}

func TestSerialHalfDay(t *testing.T) {
	noon := time.Date(1899, time.December, 30, 12, 0, 0, 0, time.UTC)
	if got := TimeToSerial(noon); got != 0.5 {
		t.Fatalf("serial of noon = %v, want 0.5", got)
	}
}

func TestSerialRoundTrip(t *testing.T) {
	original := time.Date(2024, time.March, 1, 6, 0, 0, 0, time.UTC)
	serial := TimeToSerial(original)
	back := SerialToTime(serial)
	if diff := back.Sub(original); diff.Abs() > time.Second {
		t.Fatalf("round trip drift %v", diff)
	}
}

func TestStudioDateToSerial(t *testing.T) {
	serial, err := StudioDateToSerial("1899-12-31T00:00:00")
	if err != nil {
		t.Fatalf("StudioDateToSerial: %v", err)
	}
	if math.Abs(serial-1) > 1e-9 {
		t.Fatalf("serial = %v, want 1", serial)
	}
}
