package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/flightdeck-io/droneledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for tax and summary reports.
type reportHandler struct {
	taxReportService portssvc.TaxReportService
	scheduleCService portssvc.ScheduleCService
}

func newReportHandler(tr portssvc.TaxReportService, sc portssvc.ScheduleCService) *reportHandler {
	return &reportHandler{taxReportService: tr, scheduleCService: sc}
}

// registerReportRoutes registers the reporting routes.
func registerReportRoutes(rg *gin.RouterGroup, taxReportService portssvc.TaxReportService, scheduleCService portssvc.ScheduleCService) {
	h := newReportHandler(taxReportService, scheduleCService)

	reports := rg.Group("/reports")
	{
		reports.GET("/category-summary", h.categorySummary)
		reports.GET("/schedule-c/lines", h.scheduleCLines)
		reports.GET("/schedule-c", h.scheduleCWorksheet)
	}
}

func (h *reportHandler) reportYear(c *gin.Context) (int, bool) {
	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return 0, false
		}
		year = parsed
	}
	return year, true
}

// categorySummary godoc
// @Summary Category summary report
// @Description Groups a year's transactions by category and sub-category with face and tax-adjusted totals
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year, defaults to the current year"
// @Param taxOnly query bool false "Restrict to tax-reportable transactions"
// @Success 200 {object} dto.CategorySummaryResponse
// @Security BearerAuth
// @Router /reports/category-summary [get]
func (h *reportHandler) categorySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, ok := h.reportYear(c)
	if !ok {
		return
	}
	taxOnly := c.Query("taxOnly") == "true"

	report, err := h.taxReportService.CategorySummary(c.Request.Context(), userID, year, taxOnly)
	if err != nil {
		logger.Error("Failed to build category summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build category summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategorySummaryResponse(*report))
}

// scheduleCLines godoc
// @Summary Schedule C line totals
// @Description Groups the tax-reportable transactions by their resolved Schedule C form line
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year, defaults to the current year"
// @Success 200 {array} domain.ScheduleCLineTotal
// @Security BearerAuth
// @Router /reports/schedule-c/lines [get]
func (h *reportHandler) scheduleCLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, ok := h.reportYear(c)
	if !ok {
		return
	}

	totals, err := h.taxReportService.ScheduleCLineTotals(c.Request.Context(), userID, year)
	if err != nil {
		logger.Error("Failed to build Schedule C line totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Schedule C line totals"})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// scheduleCWorksheet godoc
// @Summary Schedule C worksheet
// @Description Builds the full Schedule C worksheet for a tax year, including the mileage deduction and Part V detail
// @Tags reports
// @Produce json
// @Param year query int false "Calendar year, defaults to the current year"
// @Success 200 {object} dto.ScheduleCWorksheetResponse
// @Security BearerAuth
// @Router /reports/schedule-c [get]
func (h *reportHandler) scheduleCWorksheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, ok := h.reportYear(c)
	if !ok {
		return
	}

	worksheet, err := h.scheduleCService.Worksheet(c.Request.Context(), userID, year)
	if err != nil {
		logger.Error("Failed to build Schedule C worksheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Schedule C worksheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ScheduleCWorksheetResponse{ScheduleCWorksheet: *worksheet})
}
