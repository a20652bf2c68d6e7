package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/config"
	"github.com/mandihub/mandi_backend/middlewares"
	"github.com/mandihub/mandi_backend/models"
	"github.com/mandihub/mandi_backend/workflow"
	"github.com/xuri/excelize/v2"
)

func GetDashboard(c *gin.Context) {
	stats, err := workflow.GetDashboardStats(config.GetDB())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// reportWindow resolves from/to query dates to a half-open [from, to) window.
// Missing bounds default to today; "to" is inclusive as a date, so the upper
// bound is the start of the following day.
func reportWindow(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	if f, ok := dateQuery(c, "from"); ok {
		from = f
	}
	if t, ok := dateQuery(c, "to"); ok {
		to = t.AddDate(0, 0, 1)
	}
	return from, to
}

func GetCashFlowReport(c *gin.Context) {
	from, to := reportWindow(c)
	report, err := workflow.GetCashFlow(config.GetDB(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportCashFlowXlsx streams the cash flow report as an Excel sheet for the
// accountant's month-end workbook.
func ExportCashFlowXlsx(c *gin.Context) {
	from, to := reportWindow(c)
	report, err := workflow.GetCashFlow(config.GetDB(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	headers := []string{"Date", "Type", "Narration", "Cash In", "Cash Out"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, entry := range report.Entries {
		row := i + 2
		f.SetCellValue(sheet, "A"+strconv.Itoa(row), entry.At.Format("2006-01-02 15:04"))
		f.SetCellValue(sheet, "B"+strconv.Itoa(row), string(entry.Type))
		f.SetCellValue(sheet, "C"+strconv.Itoa(row), entry.Narration)
		f.SetCellValue(sheet, "D"+strconv.Itoa(row), entry.CashIn.InexactFloat64())
		f.SetCellValue(sheet, "E"+strconv.Itoa(row), entry.CashOut.InexactFloat64())
	}
	totalRow := len(report.Entries) + 2
	f.SetCellValue(sheet, "C"+strconv.Itoa(totalRow), "Total")
	f.SetCellValue(sheet, "D"+strconv.Itoa(totalRow), report.TotalCashIn.InexactFloat64())
	f.SetCellValue(sheet, "E"+strconv.Itoa(totalRow), report.TotalCashOut.InexactFloat64())

	filename := "cashflow_" + from.Format("2006-01-02") + ".xlsx"
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

func GetProfitReport(c *gin.Context) {
	from, to := reportWindow(c)
	report, err := workflow.GetProfitReport(config.GetDB(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetMySummary serves the logged-in driver's home screen: today's totals
// plus current stock.
func GetMySummary(c *gin.Context) {
	claim := middlewares.CtxValue(c.Request.Context())
	if claim == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	report, err := workflow.GetDriverDayReport(config.GetDB(), claim.ID, from, from.AddDate(0, 0, 1))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetDriverReport serves a driver's day sheet. Drivers can only see their own.
func GetDriverReport(c *gin.Context) {
	driverId := c.Param("id")
	claim := middlewares.CtxValue(c.Request.Context())
	if claim != nil && claim.Role == string(models.UserRoleDriver) {
		driverId = claim.ID
	}

	from, to := reportWindow(c)
	report, err := workflow.GetDriverDayReport(config.GetDB(), driverId, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetDriverStock(c *gin.Context) {
	driverId := c.Param("id")
	claim := middlewares.CtxValue(c.Request.Context())
	if claim != nil && claim.Role == string(models.UserRoleDriver) {
		driverId = claim.ID
	}

	db := config.GetDB()
	if _, err := models.GetDriverById(db, driverId); err != nil {
		respondError(c, err)
		return
	}

	stock, err := workflow.DriverStock(db, driverId)
	if err != nil {
		respondError(c, err)
		return
	}
	today, err := workflow.DriverStockToday(db, driverId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"driver_id":   driverId,
		"stock":       stock,
		"today_stock": today,
	})
}
