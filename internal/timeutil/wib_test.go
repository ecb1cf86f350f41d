package timeutil

import (
	"testing"
	"time"
)

func TestYearRange(t *testing.T) {
	start := StartOfYear(2025)
	end := EndOfYear(2025)

	if start.Year() != 2025 || start.Month() != time.January || start.Day() != 1 {
		t.Errorf("StartOfYear = %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.December || end.Day() != 31 {
		t.Errorf("EndOfYear = %v", end)
	}
	if !start.Before(end) {
		t.Error("start of year is not before end of year")
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2025, time.February)

	if start.Day() != 1 || start.Month() != time.February {
		t.Errorf("month start = %v", start)
	}
	if end.Month() != time.February || end.Day() != 28 {
		t.Errorf("month end = %v, want Feb 28", end)
	}

	// A timestamp on the first day of the next month is outside the range.
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, WIB)
	if !end.Before(march) {
		t.Error("month end overlaps the next month")
	}
}

func TestToWIBOffset(t *testing.T) {
	utc := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	wib := ToWIB(utc)

	if wib.Hour() != 7 {
		t.Errorf("00:00 UTC converted to %02d:00 WIB, want 07:00", wib.Hour())
	}
	if !wib.Equal(utc) {
		t.Error("conversion changed the instant")
	}
}
