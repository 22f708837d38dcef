package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseService interface {
	Create(ctx context.Context, course models.Course) (*models.Course, error)
	Course(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	Courses(ctx context.Context, limit, offset int) ([]models.Course, error)
	Update(ctx context.Context, id uuid.UUID, upd models.CourseUpdate) (*models.Course, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]models.Course, error)
	UploadThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.Course, error)
	ThumbnailURL(ctx context.Context, courseID uuid.UUID) (string, error)
}

type CourseHandler struct {
	CourseService CourseService
	log           logger.Log
}

func NewCourseHandler(l logger.Log, course CourseService) *CourseHandler {
	return &CourseHandler{CourseService: course, log: l}
}

func courseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return uuid.Nil, false
	}
	return id, true
}

type createCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description *string `json:"description"`
	CategoryID  *int    `json:"category_id"`
	Price       int     `json:"price"`
	Tags        *string `json:"tags"`
	Level       *string `json:"level"`
	Language    *string `json:"language"`
	Duration    *string `json:"duration"`
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var input createCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authorIDVal, _ := c.Get(ClientIDCtx)
	authorID, ok := authorIDVal.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	course := models.Course{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		Tags:        input.Tags,
		Level:       input.Level,
		Language:    input.Language,
		Duration:    input.Duration,
		AuthorID:    authorID,
	}
	created, err := h.CourseService.Create(c.Request.Context(), course)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CourseHandler) CourseByID(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	course, err := h.CourseService.Course(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) CourseBySlug(c *gin.Context) {
	course, err := h.CourseService.CourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	courses, err := h.CourseService.Courses(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	var upd models.CourseUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.CourseService.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CourseHandler) PublishCourse(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *CourseHandler) HideCourse(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *CourseHandler) setPublished(c *gin.Context, published bool) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	course, err := h.CourseService.SetPublished(c.Request.Context(), id, published)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	if err := h.CourseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CourseHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	courses, err := h.CourseService.Search(c.Request.Context(), query, size)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) UploadThumbnail(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	course, err := h.CourseService.UploadThumbnail(
		c.Request.Context(),
		id,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ThumbnailURL(c *gin.Context) {
	id, ok := courseIDParam(c)
	if !ok {
		return
	}
	url, err := h.CourseService.ThumbnailURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "course has no thumbnail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
