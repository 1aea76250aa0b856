package timezone

import (
	"time"
)

const (
	DefaultTimezone = "Asia/Kolkata"
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// DayUTC collapses t to midnight UTC of the calendar day t falls on in its own
// location. Slot dates are always stored in this form so lookups are exact matches.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses YYYY-MM-DD into its canonical midnight-UTC form.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DayUTC(t), nil
}

// ParseClock validates an HH:MM time of day and returns it normalised.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}

// TodayIn is the canonical date of "today" as seen from tz.
func TodayIn(tz string) time.Time {
	return DayUTC(NowIn(tz))
}
