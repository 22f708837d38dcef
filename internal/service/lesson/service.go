package lesson

import (
	"context"
	"fmt"
	"io"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type sectionRepo interface {
	SectionByCourseAndID(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error)
}

type lessonRepo interface {
	CreateLesson(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	LessonDetail(ctx context.Context, id uuid.UUID) (*models.LessonDetail, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	TitleExists(ctx context.Context, courseID, sectionID uuid.UUID, title string) (bool, error)
	MaxOrdering(ctx context.Context, sectionID uuid.UUID) (int, error)
	UpdateLesson(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID) error
}

type contentRepo interface {
	UpdateFileContent(ctx context.Context, lessonID uuid.UUID, contentID uuid.UUID, upd models.FileContentUpdate) (*models.FileContent, error)
	UpdateArticleContent(ctx context.Context, lessonID uuid.UUID, contentID uuid.UUID, upd models.ArticleContentUpdate) (*models.ArticleContent, error)
	UpdateQuizContent(ctx context.Context, lessonID uuid.UUID, contentID uuid.UUID, upd models.QuizContentUpdate) (*models.QuizContent, error)
}

type thumbnailRepo interface {
	UploadLessonThumbnail(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	ThumbnailURL(ctx context.Context, objectKey string) (string, error)
}

type Service struct {
	log         logger.Log
	courseRepo  courseRepo
	sectionRepo sectionRepo
	lessonRepo  lessonRepo
	contentRepo contentRepo
	thumbnails  thumbnailRepo
}

func NewService(l logger.Log, cRepo courseRepo, sRepo sectionRepo, lRepo lessonRepo, ctRepo contentRepo, tRepo thumbnailRepo) *Service {
	return &Service{
		log:         l,
		courseRepo:  cRepo,
		sectionRepo: sRepo,
		lessonRepo:  lRepo,
		contentRepo: ctRepo,
		thumbnails:  tRepo,
	}
}

func validateContent(contentType string, content models.LessonContent) error {
	switch contentType {
	case models.ContentTypeArticle:
		if content.Article == nil {
			return fmt.Errorf("%w: article content is required", app_errors.ErrNotNullViolation)
		}
	case models.ContentTypeVideo, models.ContentTypePDF:
		if content.File == nil {
			return fmt.Errorf("%w: file content is required", app_errors.ErrNotNullViolation)
		}
	case models.ContentTypeQuiz:
		if len(content.Quiz) == 0 {
			return fmt.Errorf("%w: quiz content is required", app_errors.ErrNotNullViolation)
		}
	default:
		return fmt.Errorf("%w: unknown content type %q", app_errors.ErrNotNullViolation, contentType)
	}
	return nil
}

// Create places the lesson at the end of its section. The lesson row and its
// content rows are written in one transaction by the repository.
func (s *Service) Create(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error) {
	if _, err := s.sectionRepo.SectionByCourseAndID(ctx, lesson.CourseID, lesson.SectionID); err != nil {
		return nil, err
	}
	if err := validateContent(lesson.ContentType, content); err != nil {
		return nil, err
	}

	exists, err := s.lessonRepo.TitleExists(ctx, lesson.CourseID, lesson.SectionID, lesson.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: lesson title %q", app_errors.ErrAlreadyExists, lesson.Title)
	}

	maxOrdering, err := s.lessonRepo.MaxOrdering(ctx, lesson.SectionID)
	if err != nil {
		return nil, err
	}
	lesson.Ordering = maxOrdering + 1

	// Attempt limits only apply to quizzes.
	if lesson.ContentType != models.ContentTypeQuiz {
		lesson.QuizAttemptsAllowed = 0
	}

	created, err := s.lessonRepo.CreateLesson(ctx, lesson, content)
	if err != nil {
		return nil, err
	}
	s.log.Info("lesson created", "lesson_id", created.ID, "section_id", created.SectionID)
	return created, nil
}

func (s *Service) Lesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	return s.lessonRepo.LessonByID(ctx, id)
}

func (s *Service) Detail(ctx context.Context, id uuid.UUID) (*models.LessonDetail, error) {
	return s.lessonRepo.LessonDetail(ctx, id)
}

func (s *Service) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.lessonRepo.LessonsByCourse(ctx, courseID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title != lesson.Title {
		exists, err := s.lessonRepo.TitleExists(ctx, lesson.CourseID, lesson.SectionID, *upd.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: lesson title %q", app_errors.ErrAlreadyExists, *upd.Title)
		}
	}
	if lesson.ContentType != models.ContentTypeQuiz {
		upd.QuizAttemptsAllowed = nil
	}
	return s.lessonRepo.UpdateLesson(ctx, id, upd)
}

func (s *Service) UpdateFileContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.FileContentUpdate) (*models.FileContent, error) {
	return s.contentRepo.UpdateFileContent(ctx, lessonID, contentID, upd)
}

func (s *Service) UpdateArticleContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.ArticleContentUpdate) (*models.ArticleContent, error) {
	return s.contentRepo.UpdateArticleContent(ctx, lessonID, contentID, upd)
}

func (s *Service) UpdateQuizContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.QuizContentUpdate) (*models.QuizContent, error) {
	return s.contentRepo.UpdateQuizContent(ctx, lessonID, contentID, upd)
}

func (s *Service) UploadThumbnail(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.Lesson, error) {
	if _, err := s.lessonRepo.LessonByID(ctx, lessonID); err != nil {
		return nil, err
	}
	objectKey, err := s.thumbnails.UploadLessonThumbnail(ctx, lessonID, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	return s.lessonRepo.UpdateLesson(ctx, lessonID, models.LessonUpdate{Thumbnail: &objectKey})
}

func (s *Service) ThumbnailURL(ctx context.Context, lessonID uuid.UUID) (string, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return "", err
	}
	if lesson.Thumbnail == nil {
		return "", nil
	}
	return s.thumbnails.ThumbnailURL(ctx, *lesson.Thumbnail)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.lessonRepo.DeleteLesson(ctx, id); err != nil {
		return err
	}
	s.log.Info("lesson deleted", "lesson_id", id)
	return nil
}
