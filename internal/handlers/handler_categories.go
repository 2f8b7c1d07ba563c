package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	portssvc "github.com/flightdeck-io/droneledger/internal/core/ports/services"
	"github.com/flightdeck-io/droneledger/internal/dto"
	"github.com/flightdeck-io/droneledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests for category management.
type categoryHandler struct {
	categoryService portssvc.CategoryService
}

func newCategoryHandler(cs portssvc.CategoryService) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers category and sub-category routes.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategoryService) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.DELETE("/:categoryID", h.deleteCategory)
		categories.POST("/:categoryID/sub-categories", h.createSubCategory)
		categories.GET("/:categoryID/sub-categories", h.listSubCategories)
	}
	rg.DELETE("/sub-categories/:subCategoryID", h.deleteSubCategory)
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a top-level income or expense category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(*category))
}

// listCategories godoc
// @Summary List categories
// @Description Lists the user's categories
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, dto.ToCategoryResponse(category))
	}
	c.JSON(http.StatusOK, out)
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Deletes a category that no transactions reference
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 409 {object} map[string]string "Category still referenced"
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.categoryService.DeleteCategory(c.Request.Context(), userID, c.Param("categoryID"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, apperrors.ErrProtected):
			c.JSON(http.StatusConflict, gin.H{"error": "Category is referenced by transactions"})
		default:
			logger.Error("Failed to delete category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// createSubCategory godoc
// @Summary Create a sub-category
// @Description Creates a sub-category under a category; the slug defaults to the normalized name
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param subCategory body dto.CreateSubCategoryRequest true "Sub-category details"
// @Success 201 {object} dto.SubCategoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Slug already in use"
// @Security BearerAuth
// @Router /categories/{categoryID}/sub-categories [post]
func (h *categoryHandler) createSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSubCategory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.CategoryID = c.Param("categoryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	subCategory, err := h.categoryService.CreateSubCategory(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create sub-category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sub-category"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubCategoryResponse(*subCategory))
}

// listSubCategories godoc
// @Summary List sub-categories
// @Description Lists the sub-categories of a category
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {array} dto.SubCategoryResponse
// @Security BearerAuth
// @Router /categories/{categoryID}/sub-categories [get]
func (h *categoryHandler) listSubCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	subCategories, err := h.categoryService.ListSubCategories(c.Request.Context(), userID, c.Param("categoryID"))
	if err != nil {
		logger.Error("Failed to list sub-categories", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sub-categories"})
		return
	}

	out := make([]dto.SubCategoryResponse, 0, len(subCategories))
	for _, subCategory := range subCategories {
		out = append(out, dto.ToSubCategoryResponse(subCategory))
	}
	c.JSON(http.StatusOK, out)
}

// deleteSubCategory godoc
// @Summary Delete a sub-category
// @Description Deletes a sub-category that no transactions reference
// @Tags categories
// @Produce json
// @Param subCategoryID path string true "Sub-category ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Sub-category not found"
// @Failure 409 {object} map[string]string "Sub-category still referenced"
// @Security BearerAuth
// @Router /sub-categories/{subCategoryID} [delete]
func (h *categoryHandler) deleteSubCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.categoryService.DeleteSubCategory(c.Request.Context(), userID, c.Param("subCategoryID"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sub-category not found"})
		case errors.Is(err, apperrors.ErrProtected):
			c.JSON(http.StatusConflict, gin.H{"error": "Sub-category is referenced by transactions"})
		default:
			logger.Error("Failed to delete sub-category", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sub-category"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
