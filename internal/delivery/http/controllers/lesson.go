package controllers

import (
	"context"
	"io"
	"net/http"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonService interface {
	Create(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error)
	Lesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	Detail(ctx context.Context, id uuid.UUID) (*models.LessonDetail, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	Update(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error)
	UpdateFileContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.FileContentUpdate) (*models.FileContent, error)
	UpdateArticleContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.ArticleContentUpdate) (*models.ArticleContent, error)
	UpdateQuizContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.QuizContentUpdate) (*models.QuizContent, error)
	UploadThumbnail(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.Lesson, error)
	ThumbnailURL(ctx context.Context, lessonID uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LessonHandler struct {
	LessonService LessonService
	log           logger.Log
}

func NewLessonHandler(l logger.Log, lesson LessonService) *LessonHandler {
	return &LessonHandler{LessonService: lesson, log: l}
}

func lessonIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return uuid.Nil, false
	}
	return id, true
}

func contentIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("content_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return uuid.Nil, false
	}
	return id, true
}

type quizQuestionRequest struct {
	Question string  `json:"question" binding:"required"`
	Option1  string  `json:"option_1" binding:"required"`
	Option2  string  `json:"option_2" binding:"required"`
	Option3  *string `json:"option_3"`
	Option4  *string `json:"option_4"`
	Answer   string  `json:"answer" binding:"required"`
}

type createLessonRequest struct {
	Title               string  `json:"title" binding:"required"`
	Description         *string `json:"description"`
	ContentType         string  `json:"content_type" binding:"required,oneof=article video pdf quiz"`
	AccessType          string  `json:"access_type" binding:"required,oneof=free paid"`
	QuizAttemptsAllowed int     `json:"quiz_attempts_allowed"`
	Duration            int     `json:"duration"`

	Article *struct {
		Content string `json:"content" binding:"required"`
	} `json:"article"`
	File *struct {
		URL string `json:"url" binding:"required"`
	} `json:"file"`
	Quiz []quizQuestionRequest `json:"quiz"`
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	sectionID, ok := sectionIDParam(c)
	if !ok {
		return
	}
	var input createLessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := models.Lesson{
		CourseID:            courseID,
		SectionID:           sectionID,
		Title:               input.Title,
		Description:         input.Description,
		ContentType:         input.ContentType,
		AccessType:          input.AccessType,
		QuizAttemptsAllowed: input.QuizAttemptsAllowed,
		Duration:            input.Duration,
	}

	var content models.LessonContent
	if input.Article != nil {
		content.Article = &models.ArticleContent{Content: input.Article.Content}
	}
	if input.File != nil {
		content.File = &models.FileContent{URL: input.File.URL}
	}
	for _, q := range input.Quiz {
		content.Quiz = append(content.Quiz, models.QuizContent{
			Question: q.Question,
			Option1:  q.Option1,
			Option2:  q.Option2,
			Option3:  q.Option3,
			Option4:  q.Option4,
			Answer:   q.Answer,
		})
	}

	created, err := h.LessonService.Create(c.Request.Context(), lesson, content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *LessonHandler) LessonByID(c *gin.Context) {
	id, ok := lessonIDParam(c)
	if !ok {
		return
	}
	lesson, err := h.LessonService.Lesson(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) LessonDetail(c *gin.Context) {
	id, ok := lessonIDParam(c)
	if !ok {
		return
	}
	detail, err := h.LessonService.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *LessonHandler) LessonsByCourse(c *gin.Context) {
	courseID, ok := courseIDParam(c)
	if !ok {
		return
	}
	lessons, err := h.LessonService.LessonsByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := lessonIDParam(c)
	if !ok {
		return
	}
	var upd models.LessonUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lesson, err := h.LessonService.Update(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) UpdateFileContent(c *gin.Context) {
	lessonID, ok := lessonIDParam(c)
	if !ok {
		return
	}
	contentID, ok := contentIDParam(c)
	if !ok {
		return
	}
	var upd models.FileContentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := h.LessonService.UpdateFileContent(c.Request.Context(), lessonID, contentID, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *LessonHandler) UpdateArticleContent(c *gin.Context) {
	lessonID, ok := lessonIDParam(c)
	if !ok {
		return
	}
	contentID, ok := contentIDParam(c)
	if !ok {
		return
	}
	var upd models.ArticleContentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := h.LessonService.UpdateArticleContent(c.Request.Context(), lessonID, contentID, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *LessonHandler) UpdateQuizContent(c *gin.Context) {
	lessonID, ok := lessonIDParam(c)
	if !ok {
		return
	}
	contentID, ok := contentIDParam(c)
	if !ok {
		return
	}
	var upd models.QuizContentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := h.LessonService.UpdateQuizContent(c.Request.Context(), lessonID, contentID, upd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *LessonHandler) UploadThumbnail(c *gin.Context) {
	id, ok := lessonIDParam(c)
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

	lesson, err := h.LessonService.UploadThumbnail(
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
	c.JSON(http.StatusOK, lesson)
}

func (h *LessonHandler) ThumbnailURL(c *gin.Context) {
	id, ok := lessonIDParam(c)
	if !ok {
		return
	}
	url, err := h.LessonService.ThumbnailURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson has no thumbnail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := lessonIDParam(c)
	if !ok {
		return
	}
	if err := h.LessonService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
