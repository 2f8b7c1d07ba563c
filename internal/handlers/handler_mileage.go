package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	portsrepo "github.com/flightdeck-io/droneledger/internal/core/ports/repositories"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/flightdeck-io/droneledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// mileageHandler handles HTTP requests related to mileage tracking.
type mileageHandler struct {
	mileageService portssvc.MileageService
}

func newMileageHandler(ms portssvc.MileageService) *mileageHandler {
	return &mileageHandler{mileageService: ms}
}

// registerMileageRoutes registers routes related to mileage entries and rates.
func registerMileageRoutes(rg *gin.RouterGroup, mileageService portssvc.MileageService) {
	h := newMileageHandler(mileageService)

	mileage := rg.Group("/mileage")
	{
		mileage.POST("", h.createEntry)
		mileage.GET("", h.listEntries)
		mileage.GET("/rate", h.getRate)
		mileage.PUT("/rate", h.saveRate)
	}
}

// createEntry godoc
// @Summary Record a trip
// @Description Records one mileage entry from odometer readings or a precomputed total
// @Tags mileage
// @Accept json
// @Produce json
// @Param entry body dto.CreateMileageEntryRequest true "Trip details"
// @Success 201 {object} dto.MileageEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /mileage [post]
func (h *mileageHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMileageEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.mileageService.CreateEntry(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create mileage entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mileage entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToMileageEntryResponse(*entry))
}

// listEntries godoc
// @Summary List mileage entries
// @Description Lists the user's trips, optionally filtered by year, invoice number or type
// @Tags mileage
// @Produce json
// @Param year query int false "Calendar year"
// @Param invoiceNumber query string false "Invoice number"
// @Param type query string false "Taxable or Reimbursed"
// @Success 200 {array} dto.MileageEntryResponse
// @Security BearerAuth
// @Router /mileage [get]
func (h *mileageHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := portsrepo.MileageFilter{
		InvoiceNumber: c.Query("invoiceNumber"),
		MileageType:   domain.MileageType(c.Query("type")),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		filter.Year = year
	}

	entries, err := h.mileageService.ListEntries(c.Request.Context(), userID, filter)
	if err != nil {
		logger.Error("Failed to list mileage entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list mileage entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMileageListResponse(entries))
}

// getRate godoc
// @Summary Resolve the per-mile rate
// @Description Resolves the user's per-mile dollar rate for a year through the fallback chain
// @Tags mileage
// @Produce json
// @Param year query int false "Calendar year, defaults to the current year"
// @Success 200 {object} dto.MileageRateResponse
// @Security BearerAuth
// @Router /mileage/rate [get]
func (h *mileageHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		year = parsed
	}

	rate, err := h.mileageService.RateFor(c.Request.Context(), userID, year)
	if err != nil {
		logger.Error("Failed to resolve mileage rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve mileage rate"})
		return
	}

	c.JSON(http.StatusOK, dto.MileageRateResponse{Year: year, Rate: rate})
}

// saveRate godoc
// @Summary Set the per-mile rate
// @Description Sets the per-mile dollar rate for a year, for the user or globally
// @Tags mileage
// @Accept json
// @Produce json
// @Param rate body dto.SaveMileageRateRequest true "Rate details"
// @Success 200 {object} dto.MileageRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /mileage/rate [put]
func (h *mileageHandler) saveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveMileageRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.mileageService.SaveRate(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to save mileage rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mileage rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MileageRateResponse{Year: rate.Year, Rate: rate.Rate})
}
