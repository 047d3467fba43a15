// campus-crm/internal/handlers/fee_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-crm/config"
	"campus-crm/internal/ledger"
	"campus-crm/models"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetFeeStructuresHandler retrieves the monthly fee for every grade.
func GetFeeStructuresHandler(c *gin.Context) {
	var fees []models.FeeStructure
	if err := config.DB.Order("grade asc").Find(&fees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch fee structures"})
		return
	}
	c.JSON(http.StatusOK, fees)
}

// UpdateFeeStructuresHandler updates several grade fees at once. Changing a
// fee only affects summaries computed from now on; history is derived from
// recorded payments, never rewritten.
func UpdateFeeStructuresHandler(c *gin.Context) {
	var fees []models.FeeStructure
	if err := c.ShouldBindJSON(&fees); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data provided"})
		return
	}

	tx := config.DB.Begin()
	for _, fee := range fees {
		if fee.MonthlyFee < 0 {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Monthly fee cannot be negative"})
			return
		}
		if err := tx.Model(&models.FeeStructure{}).Where("grade = ?", fee.Grade).
			Updates(models.FeeStructure{LastYearFee: fee.LastYearFee, MonthlyFee: fee.MonthlyFee}).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fees"})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Transaction commit error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fee structures updated"})
}

// studentMonthlyFee resolves the current recurring obligation for a student
// from their class's grade. Students without a class (or grades without a
// configured fee) owe nothing.
func studentMonthlyFee(student *models.Student) float64 {
	if student.ClassID == nil {
		return 0
	}
	var class models.Class
	if err := config.DB.First(&class, *student.ClassID).Error; err != nil {
		return 0
	}
	var fee models.FeeStructure
	if err := config.DB.Where("grade = ?", class.Grade).First(&fee).Error; err != nil {
		return 0
	}
	return fee.MonthlyFee
}

// feeLedgerRecords maps a student's stored payments into calculator records.
func feeLedgerRecords(studentID uint) ([]ledger.PaymentRecord, error) {
	var payments []models.FeePayment
	if err := config.DB.Where("student_id = ?", studentID).Find(&payments).Error; err != nil {
		return nil, err
	}
	records := make([]ledger.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, ledger.PaymentRecord{
			SubjectID: p.StudentID,
			Period:    p.PeriodKey,
			Amount:    p.Amount,
			Kind:      ledger.PaymentKind(p.Kind),
		})
	}
	return records, nil
}

// GetStudentFeeSummaryHandler returns the twelve per-month summaries for a
// student's school year (?year=2025-2026, defaults to the year in progress).
// Summaries are recomputed from payment history on every call.
func GetStudentFeeSummaryHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.First(&student, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	startYear := currentAcademicYear(time.Now())
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := ledger.ParseAcademicYear(yearParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid academic year, expected e.g. 2025-2026"})
			return
		}
		startYear = parsed
	}

	records, err := feeLedgerRecords(student.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payments"})
		return
	}

	obligation := studentMonthlyFee(&student)
	summaries := ledger.ComputeAllPeriods(records, ledger.AcademicYearKeys(startYear), obligation)

	c.JSON(http.StatusOK, gin.H{
		"studentId":    student.ID,
		"academicYear": academicYearLabel(startYear),
		"monthlyFee":   obligation,
		"summaries":    summaries,
	})
}

// FeePaymentInput binds a "record payment" request. Period accepts either a
// normalized "YYYY-MM" key or a month label like "January".
type FeePaymentInput struct {
	Period      string  `json:"period" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Kind        string  `json:"kind"`
	Method      string  `json:"method"`
	PaymentDate string  `json:"paymentDate"` // YYYY-MM-DD, defaults to today
	Comment     string  `json:"comment"`
}

// RecordFeePaymentHandler appends a tuition payment. The ledger guard
// rejects any cap-bearing payment that would push the month's total past
// the monthly fee; the same remaining-balance number is reported back so
// the client can offer it as the maximum.
func RecordFeePaymentHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var input FeePaymentInput
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

	startYear := currentAcademicYear(paymentDate)
	periodKey, ok := ledger.ParsePeriodLabel(input.Period, startYear)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unrecognized period %q", input.Period)})
		return
	}

	records, err := feeLedgerRecords(student.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch payments"})
		return
	}

	obligation := studentMonthlyFee(&student)
	if v := ledger.ValidateNewPayment(records, periodKey, obligation, input.Amount, kind); !v.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Payment exceeds the remaining balance for this month",
			"maxAllowed": v.MaxAllowed,
		})
		return
	}

	payment := models.FeePayment{
		StudentID:     student.ID,
		PeriodKey:     periodKey,
		AcademicYear:  academicYearLabel(academicYearOfKey(periodKey)),
		Amount:        input.Amount,
		Kind:          string(kind),
		Method:        input.Method,
		ReceiptNumber: newReceiptNumber("FEE"),
		PaymentDate:   paymentDate,
		Comment:       input.Comment,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	PublishEvent("fee_payment_recorded", gin.H{
		"studentId": student.ID,
		"period":    periodKey,
		"amount":    payment.Amount,
		"receipt":   payment.ReceiptNumber,
	})

	c.JSON(http.StatusCreated, gin.H{
		"payment":       payment,
		"amountInWords": num2words.Convert(int(payment.Amount)),
	})
}

func newReceiptNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

// FeePaymentResponse is the journal row shape, PascalCase for the tables in
// the admin UI.
type FeePaymentResponse struct {
	ID              uint      `json:"ID"`
	StudentID       uint      `json:"StudentID"`
	StudentFullName string    `json:"StudentFullName"`
	StudentClass    string    `json:"StudentClass"`
	PeriodKey       string    `json:"PeriodKey"`
	Amount          float64   `json:"Amount"`
	Kind            string    `json:"Kind"`
	Method          string    `json:"Method"`
	ReceiptNumber   string    `json:"ReceiptNumber"`
	PaymentDate     time.Time `json:"PaymentDate"`
	Comment         string    `json:"Comment"`
}

func feePaymentJournalQuery(c *gin.Context) *gorm.DB {
	query := config.DB.Table("fee_payments fp").
		Joins("LEFT JOIN students s ON fp.student_id = s.id").
		Joins("LEFT JOIN classes cl ON s.class_id = cl.id").
		Where("fp.deleted_at IS NULL")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(s.last_name) LIKE ? OR LOWER(s.first_name) LIKE ? OR LOWER(s.admission_number) LIKE ? OR LOWER(fp.receipt_number) LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if period := c.Query("period"); period != "" {
		query = query.Where("fp.period_key = ?", period)
	}
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("s.class_id = ?", classID)
	}
	if year := c.Query("year"); year != "" {
		query = query.Where("fp.academic_year = ?", year)
	}
	return query
}

const feePaymentSelect = `
	fp.id AS "ID",
	fp.student_id AS "StudentID",
	(s.last_name || ' ' || s.first_name) AS "StudentFullName",
	(COALESCE(cl.grade::text, '') || ' ' || COALESCE(cl.section, '')) AS "StudentClass",
	fp.period_key AS "PeriodKey",
	fp.amount AS "Amount",
	fp.kind AS "Kind",
	fp.method AS "Method",
	fp.receipt_number AS "ReceiptNumber",
	fp.payment_date AS "PaymentDate",
	fp.comment AS "Comment"
`

// ListFeePaymentsHandler returns the paginated payment journal with search
// and period/class/year filters.
func ListFeePaymentsHandler(c *gin.Context) {
	var results []FeePaymentResponse
	var totalRows int64

	baseQuery := feePaymentJournalQuery(c)
	baseQuery.Count(&totalRows)

	if err := baseQuery.Select(feePaymentSelect).
		Scopes(Paginate(c)).
		Order("fp.payment_date DESC").
		Scan(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}
	if results == nil {
		results = make([]FeePaymentResponse, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, results, totalRows))
}

// FeeDebtorResponse is one row of the debtors report.
type FeeDebtorResponse struct {
	StudentID       uint    `json:"studentId"`
	AdmissionNumber string  `json:"admissionNumber"`
	StudentFullName string  `json:"studentFullName"`
	StudentClass    string  `json:"studentClass"`
	GuardianPhone   string  `json:"guardianPhone"`
	DebtAmount      float64 `json:"debtAmount"`
}

// ListFeeDebtorsHandler lists students whose cap-bearing payments for a
// month (?period=YYYY-MM, defaults to the current one) fall short of their
// grade's monthly fee. The SQL mirrors the ledger rule: bonuses never count
// toward the cap.
func ListFeeDebtorsHandler(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		period = ledger.KeyFor(time.Now())
	}

	var debtors []FeeDebtorResponse
	var totalRows int64

	query := config.DB.Table("students s").
		Select(`
            s.id as student_id,
            s.admission_number,
            (s.last_name || ' ' || s.first_name) as student_full_name,
            (COALESCE(cl.grade::text, '') || ' ' || COALESCE(cl.section, '')) as student_class,
            s.guardian_phone,
            (fs.monthly_fee - COALESCE((
                SELECT SUM(fp.amount) FROM fee_payments fp
                WHERE fp.student_id = s.id AND fp.period_key = ? AND fp.kind != 'bonus' AND fp.deleted_at IS NULL
            ), 0)) as debt_amount
        `, period).
		Joins("JOIN classes cl ON s.class_id = cl.id").
		Joins("JOIN fee_structures fs ON fs.grade = cl.grade").
		Where("s.deleted_at IS NULL AND s.is_studying = true").
		Where(`(fs.monthly_fee - COALESCE((
            SELECT SUM(fp.amount) FROM fee_payments fp
            WHERE fp.student_id = s.id AND fp.period_key = ? AND fp.kind != 'bonus' AND fp.deleted_at IS NULL
        ), 0)) > 0`, period)

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count debtors"})
		return
	}

	if err := query.Scopes(Paginate(c)).Order("debt_amount DESC").Scan(&debtors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debtors"})
		return
	}
	if debtors == nil {
		debtors = make([]FeeDebtorResponse, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, debtors, totalRows))
}
