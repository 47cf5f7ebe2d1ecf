// Package biztime keeps storage in UTC and uses the business timezone only
// to interpret calendar dates (entry dates, report day boundaries).
package biztime

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the timezone the stock is operated in.
	DefaultTimezone = "America/Sao_Paulo"

	// DateLayout is the calendar date wire format.
	DateLayout = "2006-01-02"
)

var (
	mu          sync.RWMutex
	bizLocation *time.Location
)

// Init sets the business timezone. An empty name selects DefaultTimezone.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(err)
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	mu.RLock()
	loc := bizLocation
	mu.RUnlock()
	if loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: %v", err))
	}
	return Location()
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns midnight of the current business day, expressed in UTC.
func Today() time.Time {
	return StartOfDayUTC(NowUTC())
}

// StartOfDayUTC returns 00:00 of t's business day, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC returns the last instant of t's business day, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDate parses a YYYY-MM-DD calendar date in the business timezone.
// Impossible dates such as 2024-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// FormatDate renders t as a business calendar date.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// CalendarDate returns t's business day as midnight UTC. Date-only columns
// store this form so the day survives drivers that drop the time part.
func CalendarDate(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseCalendarDate parses YYYY-MM-DD into the CalendarDate form.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatCalendarDate renders a CalendarDate value.
func FormatCalendarDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
