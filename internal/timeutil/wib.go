package timeutil

import (
	"time"
)

// WIB is Western Indonesian Time (UTC+7)
var WIB *time.Location

func init() {
	var err error
	WIB, err = time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// Fallback: create fixed zone if Asia/Jakarta not available
		WIB = time.FixedZone("WIB", 7*60*60) // UTC+7
	}
}

// Now returns the current time in WIB
func Now() time.Time {
	return time.Now().In(WIB)
}

// ToWIB converts any time to WIB
func ToWIB(t time.Time) time.Time {
	return t.In(WIB)
}

// FormatWIB formats a time in WIB using the given layout
func FormatWIB(t time.Time, layout string) string {
	return t.In(WIB).Format(layout)
}

// StartOfYear returns Jan 1 00:00:00 WIB of the given year
func StartOfYear(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, WIB)
}

// EndOfYear returns Dec 31 23:59:59 WIB of the given year
func EndOfYear(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, 999999999, WIB)
}

// MonthRange returns the inclusive start and end of a month in WIB
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, WIB)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// Common layouts for WIB formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04"
)
