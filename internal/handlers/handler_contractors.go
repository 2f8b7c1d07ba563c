package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/flightdeck-io/droneledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contractorHandler handles HTTP requests for 1099 preparation.
type contractorHandler struct {
	contractorService portssvc.ContractorService
}

func newContractorHandler(cs portssvc.ContractorService) *contractorHandler {
	return &contractorHandler{contractorService: cs}
}

// registerContractorRoutes registers the contractor management and 1099
// routes.
func registerContractorRoutes(rg *gin.RouterGroup, contractorService portssvc.ContractorService) {
	h := newContractorHandler(contractorService)

	contractors := rg.Group("/contractors")
	{
		contractors.POST("", h.createContractor)
		contractors.GET("", h.listContractors)
		contractors.GET("/:contractorID/1099", h.summary1099)
	}
}

// createContractor godoc
// @Summary Register a contractor
// @Description Registers a 1099-eligible payee
// @Tags contractors
// @Accept json
// @Produce json
// @Param contractor body dto.CreateContractorRequest true "Contractor details"
// @Success 201 {object} dto.ContractorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /contractors [post]
func (h *contractorHandler) createContractor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContractor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contractor, err := h.contractorService.CreateContractor(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create contractor", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contractor"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToContractorResponse(*contractor))
}

// listContractors godoc
// @Summary List contractors
// @Description Lists the user's contractors, optionally only active ones
// @Tags contractors
// @Produce json
// @Param activeOnly query bool false "Only active contractors"
// @Success 200 {array} dto.ContractorResponse
// @Security BearerAuth
// @Router /contractors [get]
func (h *contractorHandler) listContractors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	activeOnly := c.Query("activeOnly") == "true"
	contractors, err := h.contractorService.ListContractors(c.Request.Context(), userID, activeOnly)
	if err != nil {
		logger.Error("Failed to list contractors", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contractors"})
		return
	}

	c.JSON(http.StatusOK, dto.ToContractorListResponse(contractors))
}

// summary1099 godoc
// @Summary Contractor 1099-NEC summary
// @Description Computes the 1099-NEC box amounts for one contractor and tax year
// @Tags contractors
// @Produce json
// @Param contractorID path string true "Contractor ID"
// @Param year query int false "Tax year, defaults to the previous calendar year"
// @Success 200 {object} dto.Form1099Response
// @Failure 404 {object} map[string]string "Contractor not found"
// @Security BearerAuth
// @Router /contractors/{contractorID}/1099 [get]
func (h *contractorHandler) summary1099(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// 1099s are filed for the prior year, so that is the natural default.
	year := time.Now().Year() - 1
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		year = parsed
	}

	summary, err := h.contractorService.Summary1099(c.Request.Context(), userID, c.Param("contractorID"), year)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
		} else {
			logger.Error("Failed to compute 1099 summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute 1099 summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToForm1099Response(*summary))
}
