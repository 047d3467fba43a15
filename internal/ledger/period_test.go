package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-01", MonthKey(2026, time.January))
	assert.Equal(t, "2025-12", MonthKey(2025, time.December))
}

func TestKeyFor(t *testing.T) {
	ts := time.Date(2026, time.August, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2026-08", KeyFor(ts))
}

func TestCalendarYearKeys(t *testing.T) {
	keys := CalendarYearKeys(2026)
	require.Len(t, keys, 12)
	assert.Equal(t, "2026-01", keys[0])
	assert.Equal(t, "2026-12", keys[11])
}

func TestAcademicYearKeys(t *testing.T) {
	keys := AcademicYearKeys(2025)
	require.Len(t, keys, 12)
	assert.Equal(t, "2025-09", keys[0])
	assert.Equal(t, "2025-12", keys[3])
	assert.Equal(t, "2026-01", keys[4])
	assert.Equal(t, "2026-08", keys[11])
}

func TestParseAcademicYear(t *testing.T) {
	start, err := ParseAcademicYear("2025-2026")
	require.NoError(t, err)
	assert.Equal(t, 2025, start)

	for _, bad := range []string{"", "2025", "2025-2027", "abcd-efgh", "2026-2025"} {
		_, err := ParseAcademicYear(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestAcademicMonthKey(t *testing.T) {
	assert.Equal(t, "2025-09", AcademicMonthKey(2025, time.September))
	assert.Equal(t, "2025-12", AcademicMonthKey(2025, time.December))
	assert.Equal(t, "2026-01", AcademicMonthKey(2025, time.January))
	assert.Equal(t, "2026-08", AcademicMonthKey(2025, time.August))
}

func TestMonthFromLabel(t *testing.T) {
	cases := []struct {
		label string
		month time.Month
		ok    bool
	}{
		{"January", time.January, true},
		{"january", time.January, true},
		{"Tuition - January", time.January, true},
		{"MARCH fee", time.March, true},
		{"", 0, false},
		{"Tuition", 0, false},
	}
	for _, tc := range cases {
		month, ok := MonthFromLabel(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if tc.ok {
			assert.Equal(t, tc.month, month, "label %q", tc.label)
		}
	}
}

func TestParsePeriodLabel(t *testing.T) {
	key, ok := ParsePeriodLabel("2026-03", 2025)
	require.True(t, ok)
	assert.Equal(t, "2026-03", key)

	key, ok = ParsePeriodLabel("October", 2025)
	require.True(t, ok)
	assert.Equal(t, "2025-10", key)

	key, ok = ParsePeriodLabel("Tuition - February", 2025)
	require.True(t, ok)
	assert.Equal(t, "2026-02", key)

	_, ok = ParsePeriodLabel("not a month", 2025)
	assert.False(t, ok)

	_, ok = ParsePeriodLabel("2026-13", 2025)
	assert.False(t, ok)
}
