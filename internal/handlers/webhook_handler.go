// campus-crm/internal/handlers/webhook_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"campus-crm/config"
	"campus-crm/internal/ledger"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
)

// BankPaymentInput is the payload the payment provider posts for a
// completed tuition transfer.
type BankPaymentInput struct {
	ExternalID      string  `json:"externalId" binding:"required"`
	AdmissionNumber string  `json:"admissionNumber" binding:"required"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate     string  `json:"paymentDate" binding:"required"`
	Period          string  `json:"period"`
	Comment         string  `json:"comment"`
}

// BankPaymentWebhookHandler ingests a fee payment reported by the bank.
// Deliveries are retried by the provider, so the handler is idempotent:
// a transfer already recorded under its externalId returns 200 without
// creating a second payment.
func BankPaymentWebhookHandler(c *gin.Context) {
	var input BankPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.FeePayment
	if err := config.DB.Where("external_id = ?", input.ExternalID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already recorded", "paymentId": existing.ID})
		return
	}

	var student models.Student
	if err := config.DB.Where("admission_number = ?", input.AdmissionNumber).First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No student with this admission number"})
		return
	}

	paymentDate, err := time.Parse(dateLayout, input.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paymentDate, expected YYYY-MM-DD"})
		return
	}

	startYear := currentAcademicYear(paymentDate)
	periodKey := ledger.KeyFor(paymentDate)
	if input.Period != "" {
		key, ok := ledger.ParsePeriodLabel(input.Period, startYear)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unrecognized period"})
			return
		}
		periodKey = key
	}

	externalID := input.ExternalID
	payment := models.FeePayment{
		StudentID:     student.ID,
		PeriodKey:     periodKey,
		AcademicYear:  academicYearLabel(academicYearOfKey(periodKey)),
		Amount:        input.Amount,
		Kind:          string(ledger.KindRegular),
		Method:        "bank_transfer",
		ReceiptNumber: newReceiptNumber("FEE"),
		PaymentDate:   paymentDate,
		Comment:       input.Comment,
		ExternalID:    &externalID,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		// Concurrent retry can slip past the lookup; the unique index on
		// external_id catches it.
		if err := config.DB.Where("external_id = ?", input.ExternalID).First(&existing).Error; err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Payment already recorded", "paymentId": existing.ID})
			return
		}
		slog.Error("Failed to record bank payment", "externalId", input.ExternalID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	PublishEvent("fee_payment_recorded", gin.H{
		"paymentId": payment.ID,
		"studentId": payment.StudentID,
		"period":    payment.PeriodKey,
		"amount":    payment.Amount,
		"source":    "bank_webhook",
	})

	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded", "paymentId": payment.ID})
}
