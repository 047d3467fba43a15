// campus-crm/internal/handlers/export_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFeePaymentsHandler streams the filtered fee payment journal as an
// Excel workbook. Accepts the same filters as the journal listing.
func ExportFeePaymentsHandler(c *gin.Context) {
	var payments []FeePaymentResponse
	if err := feePaymentJournalQuery(c).
		Select(feePaymentSelect).
		Order("fp.payment_date DESC").
		Scan(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Fee payments"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Receipt", "Student", "Class", "Period", "Amount", "Kind", "Method", "Payment date", "Comment"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, p := range payments {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.ReceiptNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.StudentFullName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.StudentClass)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.PeriodKey)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.Method)
		if !p.PaymentDate.IsZero() {
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), p.PaymentDate.Format("02.01.2006"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), p.Comment)
	}

	fileName := fmt.Sprintf("fee_payments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// ExportSalaryPaymentsHandler streams the payout journal as an Excel
// workbook, filtered like the journal listing.
func ExportSalaryPaymentsHandler(c *gin.Context) {
	var payouts []SalaryPaymentResponse
	if err := salaryJournalQuery(c).
		Select(salaryPaymentSelect).
		Order("sp.payment_date DESC").
		Scan(&payouts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Salary payouts"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Receipt", "Teacher", "Period", "Amount", "Kind", "Method", "Payment date", "Comment"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, p := range payouts {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.ReceiptNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.TeacherFullName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.PeriodKey)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Method)
		if !p.PaymentDate.IsZero() {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.PaymentDate.Format("02.01.2006"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), p.Comment)
	}

	fileName := fmt.Sprintf("salary_payouts_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
