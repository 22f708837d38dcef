package controllers

import (
	"context"
	"net/http"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SectionService interface {
	Create(ctx context.Context, courseID uuid.UUID, title string, description string) (*models.Section, error)
	Section(ctx context.Context, id uuid.UUID) (*models.Section, error)
	SectionInCourse(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error)
	SectionsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
	Update(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error)
	Delete(ctx context.Context, sectionID uuid.UUID) error
	Reorder(ctx context.Context, courseID uuid.UUID, orderings []models.SectionOrdering) ([]models.Section, error)
}

type SectionHandler struct {
	SectionService SectionService
	log            logger.Log
}

func NewSectionHandler(l logger.Log, section SectionService) *SectionHandler {
	return &SectionHandler{SectionService: section, log: l}
}

func sectionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("section_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
		return uuid.Nil, false
	}
	return id, true
}

type createSectionRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *SectionHandler) CreateSection(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	var input createSectionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	section, err := h.SectionService.Create(c.Request.Context(), courseID, input.Title, input.Description)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *SectionHandler) SectionByID(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}
	section, err := h.SectionService.SectionInCourse(c.Request.Context(), courseID, sectionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *SectionHandler) SectionsByCourse(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	sections, err := h.SectionService.SectionsByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}
	var upd models.SectionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	section, err := h.SectionService.Update(c.Request.Context(), sectionID, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}
	if err := h.SectionService.Delete(c.Request.Context(), sectionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reorderSectionsRequest struct {
	Orderings []models.SectionOrdering `json:"orderings" binding:"required,min=1"`
}

func (h *SectionHandler) ReorderSections(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	var input reorderSectionsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sections, err := h.SectionService.Reorder(c.Request.Context(), courseID, input.Orderings)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}
