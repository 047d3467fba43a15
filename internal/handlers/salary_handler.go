// campus-crm/internal/handlers/salary_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"campus-crm/config"
	"campus-crm/internal/ledger"
	"campus-crm/models"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// salaryLedgerRecords maps a teacher's stored payouts into calculator
// records. The same ledger rules govern tuition and payroll; only the
// source table differs.
func salaryLedgerRecords(teacherID uint) ([]ledger.PaymentRecord, error) {
	var payouts []models.SalaryPayment
	if err := config.DB.Where("teacher_id = ?", teacherID).Find(&payouts).Error; err != nil {
		return nil, err
	}
	records := make([]ledger.PaymentRecord, 0, len(payouts))
	for _, p := range payouts {
		records = append(records, ledger.PaymentRecord{
			SubjectID: p.TeacherID,
			Period:    p.PeriodKey,
			Amount:    p.Amount,
			Kind:      ledger.PaymentKind(p.Kind),
		})
	}
	return records, nil
}

// GetTeacherSalarySummaryHandler returns per-month payroll summaries for a
// calendar year (?year=2026, defaults to the current one). Obligation is
// the teacher's current base salary; past months are still derived from
// what was actually paid.
func GetTeacherSalarySummaryHandler(c *gin.Context) {
	var teacher models.Teacher
	if err := config.DB.First(&teacher, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	year := time.Now().Year()
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	records, err := salaryLedgerRecords(teacher.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payouts"})
		return
	}

	summaries := ledger.ComputeAllPeriods(records, ledger.CalendarYearKeys(year), teacher.BaseSalary)
	c.JSON(http.StatusOK, gin.H{
		"teacherId":  teacher.ID,
		"year":       year,
		"baseSalary": teacher.BaseSalary,
		"summaries":  summaries,
	})
}

// SalaryPaymentInput binds a payout request. Kind "bonus" is exempt from
// the base-salary cap.
type SalaryPaymentInput struct {
	Period      string  `json:"period" binding:"required"` // "YYYY-MM"
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Kind        string  `json:"kind"`
	Method      string  `json:"method"`
	PaymentDate string  `json:"paymentDate"` // YYYY-MM-DD, defaults to today
	Comment     string  `json:"comment"`
}

// payrollPeriodKey resolves the free-text period on a payout. Payroll runs
// on calendar months: a bare month name ("January") resolves against the
// year of the payment date, a "YYYY-MM" key is taken as-is. An empty label
// defaults to the payment date's month.
func payrollPeriodKey(label string, paymentDate time.Time) (string, bool) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return ledger.KeyFor(paymentDate), true
	}
	// Month names go first: "January" and "October" are seven characters
	// and would otherwise be taken for a "YYYY-MM" key.
	if month, found := ledger.MonthFromLabel(trimmed); found {
		return ledger.MonthKey(paymentDate.Year(), month), true
	}
	if len(trimmed) == 7 && trimmed[4] == '-' {
		return ledger.ParsePeriodLabel(trimmed, paymentDate.Year())
	}
	return "", false
}

// RecordSalaryPaymentHandler appends a payout. Regular payouts may not push
// a month past the base salary; bonuses have no ceiling.
func RecordSalaryPaymentHandler(c *gin.Context) {
	var teacher models.Teacher
	if err := config.DB.First(&teacher, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	var input SalaryPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paymentDate := time.Now()
	if input.PaymentDate != "" {
		parsed, err := time.Parse(dateLayout, input.PaymentDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment date, expected YYYY-MM-DD"})
			return
		}
		paymentDate = parsed
	}

	kind := ledger.PaymentKind(input.Kind)
	if kind == "" {
		kind = ledger.KindRegular
	}

	periodKey, ok := payrollPeriodKey(input.Period, paymentDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unrecognized period, expected YYYY-MM or a month name"})
		return
	}

	records, err := salaryLedgerRecords(teacher.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payouts"})
		return
	}

	if v := ledger.ValidateNewPayment(records, periodKey, teacher.BaseSalary, input.Amount, kind); !v.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Payout exceeds the remaining base salary for this month",
			"maxAllowed": v.MaxAllowed,
		})
		return
	}

	payout := models.SalaryPayment{
		TeacherID:     teacher.ID,
		PeriodKey:     periodKey,
		Amount:        input.Amount,
		Kind:          string(kind),
		Method:        input.Method,
		ReceiptNumber: newReceiptNumber("SAL"),
		PaymentDate:   paymentDate,
		Comment:       input.Comment,
	}
	if err := config.DB.Create(&payout).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payout"})
		return
	}

	PublishEvent("salary_payment_recorded", gin.H{
		"teacherId": teacher.ID,
		"period":    periodKey,
		"amount":    payout.Amount,
		"kind":      payout.Kind,
		"receipt":   payout.ReceiptNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"payment":       payout,
		"amountInWords": num2words.Convert(int(payout.Amount)),
	})
}

// SalaryPaymentResponse is the payout journal row shape.
type SalaryPaymentResponse struct {
	ID              uint      `json:"ID"`
	TeacherID       uint      `json:"TeacherID"`
	TeacherFullName string    `json:"TeacherFullName"`
	PeriodKey       string    `json:"PeriodKey"`
	Amount          float64   `json:"Amount"`
	Kind            string    `json:"Kind"`
	Method          string    `json:"Method"`
	ReceiptNumber   string    `json:"ReceiptNumber"`
	PaymentDate     time.Time `json:"PaymentDate"`
	Comment         string    `json:"Comment"`
}

const salaryPaymentSelect = `
	sp.id AS "ID",
	sp.teacher_id AS "TeacherID",
	(t.last_name || ' ' || t.first_name) AS "TeacherFullName",
	sp.period_key AS "PeriodKey",
	sp.amount AS "Amount",
	sp.kind AS "Kind",
	sp.method AS "Method",
	sp.receipt_number AS "ReceiptNumber",
	sp.payment_date AS "PaymentDate",
	sp.comment AS "Comment"
`

func salaryJournalQuery(c *gin.Context) *gorm.DB {
	query := config.DB.Table("salary_payments sp").
		Joins("LEFT JOIN teachers t ON sp.teacher_id = t.id").
		Where("sp.deleted_at IS NULL")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(t.last_name) LIKE ? OR LOWER(t.first_name) LIKE ? OR LOWER(sp.receipt_number) LIKE ?",
			pattern, pattern, pattern)
	}
	if period := c.Query("period"); period != "" {
		query = query.Where("sp.period_key = ?", period)
	}
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("sp.kind = ?", kind)
	}
	return query
}

// ListSalaryPaymentsHandler returns the paginated payout journal.
func ListSalaryPaymentsHandler(c *gin.Context) {
	var results []SalaryPaymentResponse
	var totalRows int64

	baseQuery := salaryJournalQuery(c)
	baseQuery.Count(&totalRows)

	if err := baseQuery.Select(salaryPaymentSelect).
		Scopes(Paginate(c)).
		Order("sp.payment_date DESC").
		Scan(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payouts"})
		return
	}
	if results == nil {
		results = make([]SalaryPaymentResponse, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, results, totalRows))
}
