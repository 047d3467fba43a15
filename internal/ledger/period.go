// campus-crm/internal/ledger/period.go
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Periods are identified by a normalized "YYYY-MM" key. Free-text labels
// coming from older data ("Tuition - January") are translated into a key
// exactly once, at the API boundary; the calculator itself matches keys by
// equality only.

// MonthKey builds the canonical period key for a calendar month.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// KeyFor returns the period key containing the given point in time.
func KeyFor(t time.Time) string {
	return MonthKey(t.Year(), t.Month())
}

// CalendarYearKeys returns the twelve period keys of a calendar year,
// January through December. Used by the payroll flow.
func CalendarYearKeys(year int) []string {
	keys := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		keys = append(keys, MonthKey(year, m))
	}
	return keys
}

// AcademicYearKeys returns the twelve period keys of a school year starting
// in September, e.g. startYear 2025 yields 2025-09 .. 2026-08. Used by the
// tuition flow.
func AcademicYearKeys(startYear int) []string {
	keys := make([]string, 0, 12)
	for m := time.September; m <= time.December; m++ {
		keys = append(keys, MonthKey(startYear, m))
	}
	for m := time.January; m <= time.August; m++ {
		keys = append(keys, MonthKey(startYear+1, m))
	}
	return keys
}

// ParseAcademicYear parses the "2025-2026" convention and returns the
// starting year.
func ParseAcademicYear(s string) (int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid academic year %q", s)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid academic year %q", s)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil || end != start+1 {
		return 0, fmt.Errorf("invalid academic year %q", s)
	}
	return start, nil
}

// AcademicMonthKey places an English month inside a school year:
// September-December belong to the starting year, January-August to the
// following one.
func AcademicMonthKey(startYear int, month time.Month) string {
	if month >= time.September {
		return MonthKey(startYear, month)
	}
	return MonthKey(startYear+1, month)
}

// MonthFromLabel extracts the month from a free-text label. Exact English
// month names ("January", case-insensitive) and labels containing one
// ("Tuition - January") are recognized.
func MonthFromLabel(label string) (time.Month, bool) {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.Contains(lower, strings.ToLower(m.String())) {
			return m, true
		}
	}
	return 0, false
}

// ParsePeriodLabel normalizes any accepted period spelling into a key.
// "YYYY-MM" keys pass through, anything else is treated as a free-text
// label resolved against the given school year. Returns false when the
// label names no recognizable month.
func ParsePeriodLabel(label string, academicStartYear int) (string, bool) {
	trimmed := strings.TrimSpace(label)
	if len(trimmed) == 7 && trimmed[4] == '-' {
		year, errY := strconv.Atoi(trimmed[:4])
		month, errM := strconv.Atoi(trimmed[5:])
		if errY == nil && errM == nil && year > 0 && month >= 1 && month <= 12 {
			return MonthKey(year, time.Month(month)), true
		}
	}
	if month, ok := MonthFromLabel(trimmed); ok {
		return AcademicMonthKey(academicStartYear, month), true
	}
	return "", false
}
