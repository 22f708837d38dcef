package category

import (
	"context"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"
)

type categoryRepo interface {
	CreateCategory(ctx context.Context, name string, description *string) (*models.CourseCategory, error)
	Categories(ctx context.Context) ([]models.CourseCategory, error)
	CategoryByID(ctx context.Context, id int) (*models.CourseCategory, error)
	UpdateCategory(ctx context.Context, id int, upd models.CourseCategoryUpdate) (*models.CourseCategory, error)
	DeleteCategory(ctx context.Context, id int) error
}

// Service covers the course category registry.
type Service struct {
	log          logger.Log
	categoryRepo categoryRepo
}

func NewService(l logger.Log, repo categoryRepo) *Service {
	return &Service{log: l, categoryRepo: repo}
}

func (s *Service) Create(ctx context.Context, name string, description *string) (*models.CourseCategory, error) {
	category, err := s.categoryRepo.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, err
	}
	s.log.Info("course category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.CourseCategory, error) {
	return s.categoryRepo.Categories(ctx)
}

func (s *Service) Category(ctx context.Context, id int) (*models.CourseCategory, error) {
	return s.categoryRepo.CategoryByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int, upd models.CourseCategoryUpdate) (*models.CourseCategory, error) {
	return s.categoryRepo.UpdateCategory(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.log.Info("course category deleted", "category_id", id)
	return nil
}
