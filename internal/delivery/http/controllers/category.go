package controllers

import (
	"context"
	"net/http"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CategoryService interface {
	Create(ctx context.Context, name string, description *string) (*models.CourseCategory, error)
	Categories(ctx context.Context) ([]models.CourseCategory, error)
	Category(ctx context.Context, id int) (*models.CourseCategory, error)
	Update(ctx context.Context, id int, upd models.CourseCategoryUpdate) (*models.CourseCategory, error)
	Delete(ctx context.Context, id int) error
}

type CategoryHandler struct {
	CategoryService CategoryService
	log             logger.Log
}

func NewCategoryHandler(l logger.Log, category CategoryService) *CategoryHandler {
	return &CategoryHandler{CategoryService: category, log: l}
}

type createCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input createCategoryRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), input.Name, input.Description)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CategoryByID(c *gin.Context) {
	id, ok := intParam(c, "category_id")
	if !ok {
		return
	}
	category, err := h.CategoryService.Category(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := intParam(c, "category_id")
	if !ok {
		return
	}
	var upd models.CourseCategoryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := intParam(c, "category_id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
