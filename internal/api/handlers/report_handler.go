package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/andresuchdata/storeops/internal/service"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reports *service.ReportService
	exports *service.ExportService
}

func NewReportHandler(reports *service.ReportService, exports *service.ExportService) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// Scorecard returns the monthly KPI scorecard for one store.
func (h *ReportHandler) Scorecard(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid store id"})
		return
	}

	period, ok := parsePeriod(c)
	if !ok {
		return
	}

	card, err := h.reports.Scorecard(c.Request.Context(), storeID, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build scorecard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, card)
}

// Dashboard returns every requested store's scorecard for one period.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	filter := parseReportFilter(c)
	if filter.Year == 0 || filter.Month == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
		return
	}

	dashboard, err := h.reports.Dashboard(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// Export streams the monthly dashboard as an Excel workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	filter := parseReportFilter(c)
	if filter.Year == 0 || filter.Month == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
		return
	}

	filename, data, err := h.exports.MonthlyWorkbook(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func parsePeriod(c *gin.Context) (domain.Period, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return domain.Period{}, false
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return domain.Period{}, false
	}

	return domain.Period{Year: year, Month: month}, true
}
