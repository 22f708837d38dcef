package section

import (
	"context"
	"fmt"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type sectionRepo interface {
	CreateSection(ctx context.Context, section models.Section) (*models.Section, error)
	SectionByID(ctx context.Context, id uuid.UUID) (*models.Section, error)
	SectionByCourseAndID(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error)
	SectionsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
	TitleExists(ctx context.Context, courseID uuid.UUID, title string) (bool, error)
	MaxOrdering(ctx context.Context, courseID uuid.UUID) (int, error)
	UpdateSection(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error)
	DeleteSection(ctx context.Context, sectionID, courseID uuid.UUID) error
	ReorderSections(ctx context.Context, courseID uuid.UUID, orderings []models.SectionOrdering) error
}

type Service struct {
	log         logger.Log
	courseRepo  courseRepo
	sectionRepo sectionRepo
}

func NewService(l logger.Log, cRepo courseRepo, sRepo sectionRepo) *Service {
	return &Service{log: l, courseRepo: cRepo, sectionRepo: sRepo}
}

// Create appends the section at the end of the course, ordering is
// max(existing) + 1.
func (s *Service) Create(ctx context.Context, courseID uuid.UUID, title string, description string) (*models.Section, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	exists, err := s.sectionRepo.TitleExists(ctx, courseID, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: section title %q", app_errors.ErrAlreadyExists, title)
	}

	maxOrdering, err := s.sectionRepo.MaxOrdering(ctx, courseID)
	if err != nil {
		return nil, err
	}

	section := models.Section{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		Ordering:    maxOrdering + 1,
	}
	created, err := s.sectionRepo.CreateSection(ctx, section)
	if err != nil {
		return nil, err
	}
	s.log.Info("section created", "section_id", created.ID, "course_id", courseID)
	return created, nil
}

func (s *Service) Section(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	return s.sectionRepo.SectionByID(ctx, id)
}

func (s *Service) SectionInCourse(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
	return s.sectionRepo.SectionByCourseAndID(ctx, courseID, sectionID)
}

func (s *Service) SectionsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.sectionRepo.SectionsByCourse(ctx, courseID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error) {
	section, err := s.sectionRepo.SectionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil && *upd.Title != section.Title {
		exists, err := s.sectionRepo.TitleExists(ctx, section.CourseID, *upd.Title)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: section title %q", app_errors.ErrAlreadyExists, *upd.Title)
		}
	}
	return s.sectionRepo.UpdateSection(ctx, id, upd)
}

// Delete removes the section with its lessons and closes the ordering gap
// among the remaining siblings.
func (s *Service) Delete(ctx context.Context, sectionID uuid.UUID) error {
	section, err := s.sectionRepo.SectionByID(ctx, sectionID)
	if err != nil {
		return err
	}
	if err := s.sectionRepo.DeleteSection(ctx, sectionID, section.CourseID); err != nil {
		return err
	}
	s.log.Info("section deleted", "section_id", sectionID, "course_id", section.CourseID)
	return nil
}

func (s *Service) Reorder(ctx context.Context, courseID uuid.UUID, orderings []models.SectionOrdering) ([]models.Section, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.sectionRepo.ReorderSections(ctx, courseID, orderings); err != nil {
		return nil, err
	}
	return s.sectionRepo.SectionsByCourse(ctx, courseID)
}
