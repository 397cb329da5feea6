// Package schedule implements the time arithmetic behind course calendars:
// session durations, hour budgets, and expert double-booking detection.
// Times are zero-padded 24-hour "HH:MM" strings and dates are "YYYY-MM-DD",
// compared lexicographically.
package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"trainingscheduler/internal/domain"
)

// minutesOfDay parses a zero-padded "HH:MM" clock time into minutes since
// midnight.
func minutesOfDay(t string) (int, error) {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("malformed time %q: %w", t, domain.ErrInvalidInput)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("malformed time %q: %w", t, domain.ErrInvalidInput)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("malformed time %q: %w", t, domain.ErrInvalidInput)
	}
	return h*60 + m, nil
}

// ValidTime reports whether t is a well-formed zero-padded "HH:MM" clock time.
func ValidTime(t string) bool {
	_, err := minutesOfDay(t)
	return err == nil
}

// HoursBetween returns the duration from start to end in hours, rounded to
// the nearest half hour with ties rounding up. An end before the start is
// treated as crossing midnight, so ("23:00", "01:00") is 2 hours; equal
// times are 0. Malformed times yield domain.ErrInvalidInput.
func HoursBetween(start, end string) (float64, error) {
	s, err := minutesOfDay(start)
	if err != nil {
		return 0, err
	}
	e, err := minutesOfDay(end)
	if err != nil {
		return 0, err
	}
	mins := e - s
	if mins < 0 {
		mins += 24 * 60
	}
	h := float64(mins) / 60
	return math.Floor(h*2+0.5) / 2, nil
}
