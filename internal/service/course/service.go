package course

import (
	"context"
	"io"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	Courses(ctx context.Context, limit, offset int) ([]models.Course, error)
	CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, upd models.CourseUpdate) (*models.Course, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type searchRepo interface {
	Index(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type thumbnailRepo interface {
	UploadCourseThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	ThumbnailURL(ctx context.Context, objectKey string) (string, error)
	DeleteThumbnail(ctx context.Context, objectKey string) error
}

type Service struct {
	log        logger.Log
	courseRepo courseRepo
	searchRepo searchRepo
	thumbnails thumbnailRepo
}

func NewService(l logger.Log, cRepo courseRepo, sRepo searchRepo, tRepo thumbnailRepo) *Service {
	return &Service{log: l, courseRepo: cRepo, searchRepo: sRepo, thumbnails: tRepo}
}

// Create persists the course; search indexing is best effort and never
// fails the request.
func (s *Service) Create(ctx context.Context, course models.Course) (*models.Course, error) {
	created, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	if err := s.searchRepo.Index(ctx, created); err != nil {
		s.log.ErrorErr("course search indexing failed", err, "course_id", created.ID)
	}
	s.log.Info("course created", "course_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *Service) Course(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courseRepo.CourseByID(ctx, id)
}

func (s *Service) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return s.courseRepo.CourseBySlug(ctx, slug)
}

func (s *Service) Courses(ctx context.Context, limit, offset int) ([]models.Course, error) {
	return s.courseRepo.Courses(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd models.CourseUpdate) (*models.Course, error) {
	updated, err := s.courseRepo.UpdateCourse(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if err := s.searchRepo.Update(ctx, updated); err != nil {
		s.log.ErrorErr("course search update failed", err, "course_id", id)
	}
	return updated, nil
}

func (s *Service) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Course, error) {
	return s.courseRepo.SetPublished(ctx, id, published)
}

// Delete removes the course row and cleans up the search document and the
// stored thumbnail object. Cleanup is best effort.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}
	if err := s.searchRepo.Delete(ctx, id); err != nil {
		s.log.ErrorErr("course search delete failed", err, "course_id", id)
	}
	if course.Thumbnail != nil {
		if err := s.thumbnails.DeleteThumbnail(ctx, *course.Thumbnail); err != nil {
			s.log.ErrorErr("course thumbnail delete failed", err, "course_id", id)
		}
	}
	s.log.Info("course deleted", "course_id", id)
	return nil
}

// Search resolves matching ids in the search index, then loads the rows
// preserving the index ranking.
func (s *Service) Search(ctx context.Context, query string, size int) ([]models.Course, error) {
	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.courseRepo.CoursesByIDs(ctx, ids)
}

func (s *Service) UploadThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.Course, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	objectKey, err := s.thumbnails.UploadCourseThumbnail(ctx, courseID, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.UpdateCourse(ctx, courseID, models.CourseUpdate{Thumbnail: &objectKey})
}

func (s *Service) ThumbnailURL(ctx context.Context, courseID uuid.UUID) (string, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course.Thumbnail == nil {
		return "", nil
	}
	return s.thumbnails.ThumbnailURL(ctx, *course.Thumbnail)
}
