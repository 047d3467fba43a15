// campus-crm/internal/handlers/handlers_test.go
package handlers

import (
	"strings"
	"testing"
	"time"

	"campus-crm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendancePercentage(t *testing.T) {
	records := []models.AttendanceRecord{
		{Status: models.AttendancePresent},
		{Status: models.AttendancePresent},
		{Status: models.AttendanceLate},
		{Status: models.AttendanceAbsent},
	}
	// 3 attended out of 4 counted days.
	assert.Equal(t, 75.0, attendancePercentage(records))
}

func TestAttendancePercentageLateCountsAsAttended(t *testing.T) {
	records := []models.AttendanceRecord{
		{Status: models.AttendanceLate},
		{Status: models.AttendanceLate},
	}
	assert.Equal(t, 100.0, attendancePercentage(records))
}

func TestAttendancePercentageExcusedExcluded(t *testing.T) {
	records := []models.AttendanceRecord{
		{Status: models.AttendancePresent},
		{Status: models.AttendanceExcused},
		{Status: models.AttendanceExcused},
		{Status: models.AttendanceAbsent},
	}
	// Excused days do not dilute the denominator: 1 of 2.
	assert.Equal(t, 50.0, attendancePercentage(records))
}

func TestAttendancePercentageNoCountedDays(t *testing.T) {
	assert.Equal(t, 0.0, attendancePercentage(nil))
	assert.Equal(t, 0.0, attendancePercentage([]models.AttendanceRecord{
		{Status: models.AttendanceExcused},
	}))
}

func TestAttendancePercentageRounding(t *testing.T) {
	records := []models.AttendanceRecord{
		{Status: models.AttendancePresent},
		{Status: models.AttendancePresent},
		{Status: models.AttendanceAbsent},
	}
	assert.Equal(t, 66.67, attendancePercentage(records))
}

func TestCurrentAcademicYear(t *testing.T) {
	sep := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, currentAcademicYear(sep))

	dec := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, currentAcademicYear(dec))

	// Spring term still belongs to the year that started the previous fall.
	mar := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, currentAcademicYear(mar))

	aug := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, currentAcademicYear(aug))
}

func TestAcademicYearLabel(t *testing.T) {
	assert.Equal(t, "2025-2026", academicYearLabel(2025))
}

func TestAcademicYearOfKey(t *testing.T) {
	assert.Equal(t, 2024, academicYearOfKey("2024-12"))
	assert.Equal(t, 2025, academicYearOfKey("2025-09"))
	// Spring months belong to the year that started the previous fall.
	assert.Equal(t, 2025, academicYearOfKey("2026-02"))
	assert.Equal(t, 0, academicYearOfKey("not-a-key"))
}

// A payment posted in February 2026 against December 2024 must be filed
// under 2024-2025, not under the school year of the posting date.
func TestBackDatedPaymentYearLabel(t *testing.T) {
	assert.Equal(t, "2024-2025", academicYearLabel(academicYearOfKey("2024-12")))
}

func TestPayrollPeriodKey(t *testing.T) {
	january := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	// Seven-letter month names must not be mistaken for "YYYY-MM" keys:
	// a payout labeled "January" during January 2026 is the 2026-01 month.
	key, ok := payrollPeriodKey("January", january)
	require.True(t, ok)
	assert.Equal(t, "2026-01", key)

	october := time.Date(2026, time.October, 2, 0, 0, 0, 0, time.UTC)
	key, ok = payrollPeriodKey("October", october)
	require.True(t, ok)
	assert.Equal(t, "2026-10", key)

	key, ok = payrollPeriodKey("2026-03", january)
	require.True(t, ok)
	assert.Equal(t, "2026-03", key)

	key, ok = payrollPeriodKey("", january)
	require.True(t, ok)
	assert.Equal(t, "2026-01", key)

	key, ok = payrollPeriodKey("Salary for March", january)
	require.True(t, ok)
	assert.Equal(t, "2026-03", key)

	_, ok = payrollPeriodKey("2026-13", january)
	assert.False(t, ok)

	_, ok = payrollPeriodKey("quarter 2", january)
	assert.False(t, ok)
}

func TestNewReceiptNumberFormat(t *testing.T) {
	receipt := newReceiptNumber("FEE")
	parts := strings.Split(receipt, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "FEE", parts[0])
	assert.Len(t, parts[1], 8) // yyyymmdd
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])

	assert.NotEqual(t, receipt, newReceiptNumber("FEE"))
}

func TestGenerateInstallmentSchedule(t *testing.T) {
	installments := []models.Installment{
		{Month: "September", Day: 5, Formula: "Net / 4"},
		{Month: "November", Day: 5, Formula: "Net / 4"},
		{Month: "February", Day: 5, Formula: "Net / 4"},
		{Month: "April", Day: 5, Formula: "Net / 4"},
	}

	schedule, err := generateInstallmentSchedule(installments, 120000, 20000, 2025)
	require.NoError(t, err)
	require.Len(t, schedule, 4)

	for _, line := range schedule {
		assert.Equal(t, 25000.0, line.Amount)
		assert.Equal(t, "Expected", line.Status)
	}

	// Fall installments land in the start year, spring in the next.
	assert.Equal(t, "2025-09", schedule[0].Period)
	assert.Equal(t, "05.09.2025", schedule[0].PaymentDate)
	assert.Equal(t, "2025-11", schedule[1].Period)
	assert.Equal(t, "2026-02", schedule[2].Period)
	assert.Equal(t, "05.04.2026", schedule[3].PaymentDate)
}

func TestGenerateInstallmentScheduleFormulaVariables(t *testing.T) {
	installments := []models.Installment{
		{Month: "September", Day: 1, Formula: "Total * 0.5"},
		{Month: "January", Day: 1, Formula: "Total * 0.5 - Discount"},
	}

	schedule, err := generateInstallmentSchedule(installments, 100000, 10000, 2025)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, schedule[0].Amount)
	assert.Equal(t, 40000.0, schedule[1].Amount)
}

func TestGenerateInstallmentScheduleBadFormula(t *testing.T) {
	_, err := generateInstallmentSchedule([]models.Installment{
		{Month: "September", Day: 1, Formula: "Net /"},
	}, 100000, 0, 2025)
	assert.Error(t, err)
}

func TestGenerateInstallmentScheduleUnknownVariable(t *testing.T) {
	_, err := generateInstallmentSchedule([]models.Installment{
		{Month: "September", Day: 1, Formula: "Tuition / 2"},
	}, 100000, 0, 2025)
	assert.Error(t, err)
}

func TestGenerateInstallmentScheduleBadMonth(t *testing.T) {
	_, err := generateInstallmentSchedule([]models.Installment{
		{Month: "Septembrius", Day: 1, Formula: "Net / 2"},
	}, 100000, 0, 2025)
	assert.Error(t, err)
}

func TestGenerateInstallmentScheduleEmpty(t *testing.T) {
	schedule, err := generateInstallmentSchedule(nil, 100000, 0, 2025)
	require.NoError(t, err)
	assert.Empty(t, schedule)
}
