// campus-crm/internal/handlers/fee_plan_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"campus-crm/config"
	"campus-crm/internal/ledger"
	"campus-crm/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
)

// ScheduledInstallment is one line of a generated fee schedule.
type ScheduledInstallment struct {
	PaymentDate string  `json:"paymentDate"`
	Period      string  `json:"period"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
}

// generateInstallmentSchedule evaluates each installment formula against
// the annual totals and dates it inside the school year starting at
// startYear. Pure except for the formula engine; kept separate from the
// handler so it can be tested without a database.
func generateInstallmentSchedule(installments []models.Installment, total, discount float64, startYear int) ([]ScheduledInstallment, error) {
	parameters := map[string]interface{}{
		"Total":    total,
		"Discount": discount,
		"Net":      total - discount,
	}

	schedule := make([]ScheduledInstallment, 0, len(installments))
	for _, installment := range installments {
		expr, err := govaluate.NewEvaluableExpression(installment.Formula)
		if err != nil {
			return nil, fmt.Errorf("invalid formula %q: %w", installment.Formula, err)
		}
		result, err := expr.Evaluate(parameters)
		if err != nil {
			return nil, fmt.Errorf("cannot evaluate formula %q: %w", installment.Formula, err)
		}
		amount, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("formula %q does not produce a number", installment.Formula)
		}

		month, ok := ledger.MonthFromLabel(installment.Month)
		if !ok {
			return nil, fmt.Errorf("installment has unrecognized month %q", installment.Month)
		}
		periodKey := ledger.AcademicMonthKey(startYear, month)

		year := startYear
		if month < time.September {
			year = startYear + 1
		}
		paymentDate := time.Date(year, month, installment.Day, 0, 0, 0, 0, time.UTC)

		schedule = append(schedule, ScheduledInstallment{
			PaymentDate: paymentDate.Format("02.01.2006"),
			Period:      periodKey,
			Amount:      amount,
			Status:      "Expected",
		})
	}
	return schedule, nil
}

// ListInstallmentPlansHandler returns all plans with their lines.
func ListInstallmentPlansHandler(c *gin.Context) {
	var plans []models.InstallmentPlan
	if err := config.DB.Preload("Installments").Order("id asc").Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch installment plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

// InstallmentPlanInput binds the payload for creating or updating a plan.
type InstallmentPlanInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Installments []struct {
		Month   string `json:"month" binding:"required"`
		Day     int    `json:"day" binding:"required,min=1,max=28"`
		Formula string `json:"formula" binding:"required"`
	} `json:"installments" binding:"required,min=1"`
}

// CreateInstallmentPlanHandler stores a new plan after checking every
// formula parses.
func CreateInstallmentPlanHandler(c *gin.Context) {
	var input InstallmentPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan := models.InstallmentPlan{Name: input.Name, Description: input.Description}
	for _, line := range input.Installments {
		if _, err := govaluate.NewEvaluableExpression(line.Formula); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid formula %q", line.Formula)})
			return
		}
		if _, ok := ledger.MonthFromLabel(line.Month); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unrecognized month %q", line.Month)})
			return
		}
		plan.Installments = append(plan.Installments, models.Installment{
			Month:   line.Month,
			Day:     line.Day,
			Formula: line.Formula,
		})
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Plan name already taken"})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// DeleteInstallmentPlanHandler removes a plan and its lines.
func DeleteInstallmentPlanHandler(c *gin.Context) {
	if err := config.DB.Where("plan_id = ?", c.Param("id")).Delete(&models.Installment{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan lines"})
		return
	}
	if err := config.DB.Delete(&models.InstallmentPlan{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

// PreviewFeePlanInput selects the plan and optional discount to preview.
type PreviewFeePlanInput struct {
	PlanID   uint    `json:"planId" binding:"required"`
	Discount float64 `json:"discount" binding:"min=0"`
	Year     string  `json:"year"` // "2025-2026", defaults to current
}

// PreviewStudentFeePlanHandler generates the dated installment schedule for
// a student's annual tuition without persisting anything.
func PreviewStudentFeePlanHandler(c *gin.Context) {
	var student models.Student
	if err := config.DB.First(&student, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var input PreviewFeePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.InstallmentPlan
	if err := config.DB.Preload("Installments").First(&plan, input.PlanID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Installment plan not found"})
		return
	}

	startYear := currentAcademicYear(time.Now())
	if input.Year != "" {
		parsed, err := ledger.ParseAcademicYear(input.Year)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid academic year, expected e.g. 2025-2026"})
			return
		}
		startYear = parsed
	}

	annualFee := studentMonthlyFee(&student) * 12
	schedule, err := generateInstallmentSchedule(plan.Installments, annualFee, input.Discount, startYear)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studentId":    student.ID,
		"plan":         plan.Name,
		"academicYear": academicYearLabel(startYear),
		"annualFee":    annualFee,
		"discount":     input.Discount,
		"schedule":     schedule,
	})
}
