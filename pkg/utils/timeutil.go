package utils

import (
	"time"
)

// ET is the US Eastern time zone, in which EDGAR dates its filings.
var ET *time.Location

func init() {
	var err error
	ET, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		ET = time.FixedZone("EST", -5*60*60)
	}
}

// NowET returns the current time in US Eastern time.
func NowET() time.Time {
	return time.Now().In(ET)
}

// ParseFilingDate parses the date formats EDGAR uses: "2006-01-02" in the
// JSON APIs, "20060102" in SGML headers and RFC 3339 in Atom feeds.
// Dates without a zone are taken as Eastern time.
func ParseFilingDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	var err error
	for _, layout := range []string{"2006-01-02", "20060102", "2006-01-02T15:04:05"} {
		t, perr := time.ParseInLocation(layout, s, ET)
		if perr == nil {
			return t, nil
		}
		err = perr
	}
	return time.Time{}, err
}

// FormatDate formats a time as "2006-01-02" in Eastern time.
func FormatDate(t time.Time) string {
	return t.In(ET).Format("2006-01-02")
}

// WindowStart returns the start of a lookback window of days ending at now.
func WindowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// InWindow reports whether t falls within the days-long window ending at now.
func InWindow(t, now time.Time, days int) bool {
	return !t.Before(WindowStart(now, days)) && !t.After(now)
}

// DaysBetween returns the whole days from start to end; negative when end
// precedes start.
func DaysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// IsBusinessDay reports whether t falls on a weekday in Eastern time.
// EDGAR accepts filings on federal business days; holidays are not tracked.
func IsBusinessDay(t time.Time) bool {
	wd := t.In(ET).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
