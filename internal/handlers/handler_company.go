package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/flightdeck-io/droneledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests for the company profile.
type companyHandler struct {
	companyService portssvc.CompanyService
}

func newCompanyHandler(cs portssvc.CompanyService) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers the company profile routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanyService) {
	h := newCompanyHandler(companyService)

	rg.GET("/company-profile", h.getProfile)
	rg.PUT("/company-profile", h.saveProfile)
}

// getProfile godoc
// @Summary Get the company profile
// @Description Returns the active company profile
// @Tags company
// @Produce json
// @Success 200 {object} dto.CompanyProfileResponse
// @Failure 404 {object} map[string]string "No profile configured"
// @Security BearerAuth
// @Router /company-profile [get]
func (h *companyHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.companyService.ActiveProfile(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load company profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load company profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No company profile configured"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyProfileResponse(*profile))
}

// saveProfile godoc
// @Summary Save the company profile
// @Description Creates or replaces the active company profile
// @Tags company
// @Accept json
// @Produce json
// @Param profile body dto.SaveCompanyProfileRequest true "Profile details"
// @Success 200 {object} dto.CompanyProfileResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /company-profile [put]
func (h *companyHandler) saveProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.companyService.SaveProfile(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to save company profile", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save company profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyProfileResponse(*profile))
}
