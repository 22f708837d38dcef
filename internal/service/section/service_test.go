package section

import (
	"context"
	"errors"
	"testing"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/google/uuid"
)

type stubCourseRepo struct {
	courseByIDFn func(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

func (s *stubCourseRepo) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courseByIDFn(ctx, id)
}

type stubSectionRepo struct {
	createSectionFn   func(ctx context.Context, section models.Section) (*models.Section, error)
	sectionByIDFn     func(ctx context.Context, id uuid.UUID) (*models.Section, error)
	titleExistsFn     func(ctx context.Context, courseID uuid.UUID, title string) (bool, error)
	maxOrderingFn     func(ctx context.Context, courseID uuid.UUID) (int, error)
	updateSectionFn   func(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error)
	deleteSectionFn   func(ctx context.Context, sectionID, courseID uuid.UUID) error
	reorderSectionsFn func(ctx context.Context, courseID uuid.UUID, orderings []models.SectionOrdering) error
	sectionsByCourse  func(ctx context.Context, courseID uuid.UUID) ([]models.Section, error)
}

func (s *stubSectionRepo) CreateSection(ctx context.Context, section models.Section) (*models.Section, error) {
	return s.createSectionFn(ctx, section)
}

func (s *stubSectionRepo) SectionByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	return s.sectionByIDFn(ctx, id)
}

func (s *stubSectionRepo) SectionByCourseAndID(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
	return nil, app_errors.ErrNotFound
}

func (s *stubSectionRepo) SectionsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	return s.sectionsByCourse(ctx, courseID)
}

func (s *stubSectionRepo) TitleExists(ctx context.Context, courseID uuid.UUID, title string) (bool, error) {
	return s.titleExistsFn(ctx, courseID, title)
}

func (s *stubSectionRepo) MaxOrdering(ctx context.Context, courseID uuid.UUID) (int, error) {
	return s.maxOrderingFn(ctx, courseID)
}

func (s *stubSectionRepo) UpdateSection(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error) {
	return s.updateSectionFn(ctx, id, upd)
}

func (s *stubSectionRepo) DeleteSection(ctx context.Context, sectionID, courseID uuid.UUID) error {
	return s.deleteSectionFn(ctx, sectionID, courseID)
}

func (s *stubSectionRepo) ReorderSections(ctx context.Context, courseID uuid.UUID, orderings []models.SectionOrdering) error {
	return s.reorderSectionsFn(ctx, courseID, orderings)
}

func existingCourse() *stubCourseRepo {
	return &stubCourseRepo{
		courseByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Course, error) {
			return &models.Course{ID: id}, nil
		},
	}
}

func TestCreateAppendsAtEnd(t *testing.T) {
	courseID := uuid.New()
	var captured models.Section
	sections := &stubSectionRepo{
		titleExistsFn: func(ctx context.Context, cid uuid.UUID, title string) (bool, error) {
			return false, nil
		},
		maxOrderingFn: func(ctx context.Context, cid uuid.UUID) (int, error) {
			return 4, nil
		},
		createSectionFn: func(ctx context.Context, section models.Section) (*models.Section, error) {
			captured = section
			copy := section
			copy.ID = uuid.New()
			return &copy, nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	created, err := service.Create(context.Background(), courseID, "Basics", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured.Ordering != 5 {
		t.Fatalf("expected ordering 5, got %d", captured.Ordering)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated section id")
	}
}

func TestCreateFirstSectionGetsOrderingOne(t *testing.T) {
	var captured models.Section
	sections := &stubSectionRepo{
		titleExistsFn: func(ctx context.Context, cid uuid.UUID, title string) (bool, error) {
			return false, nil
		},
		maxOrderingFn: func(ctx context.Context, cid uuid.UUID) (int, error) {
			return 0, nil
		},
		createSectionFn: func(ctx context.Context, section models.Section) (*models.Section, error) {
			captured = section
			return &section, nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	if _, err := service.Create(context.Background(), uuid.New(), "Basics", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured.Ordering != 1 {
		t.Fatalf("expected ordering 1, got %d", captured.Ordering)
	}
}

func TestCreateDuplicateTitle(t *testing.T) {
	sections := &stubSectionRepo{
		titleExistsFn: func(ctx context.Context, cid uuid.UUID, title string) (bool, error) {
			return true, nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	_, err := service.Create(context.Background(), uuid.New(), "Basics", "")
	if !errors.Is(err, app_errors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateUnknownCourse(t *testing.T) {
	courses := &stubCourseRepo{
		courseByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Course, error) {
			return nil, app_errors.ErrNotFound
		},
	}
	service := NewService(logger.New("prod"), courses, &stubSectionRepo{})

	_, err := service.Create(context.Background(), uuid.New(), "Basics", "")
	if !errors.Is(err, app_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateRejectsDuplicateTitle(t *testing.T) {
	sectionID := uuid.New()
	courseID := uuid.New()
	sections := &stubSectionRepo{
		sectionByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Section, error) {
			return &models.Section{ID: sectionID, CourseID: courseID, Title: "Old"}, nil
		},
		titleExistsFn: func(ctx context.Context, cid uuid.UUID, title string) (bool, error) {
			return title == "Taken", nil
		},
		updateSectionFn: func(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error) {
			return &models.Section{ID: id, CourseID: courseID, Title: *upd.Title}, nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	taken := "Taken"
	if _, err := service.Update(context.Background(), sectionID, models.SectionUpdate{Title: &taken}); !errors.Is(err, app_errors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	free := "Free"
	if _, err := service.Update(context.Background(), sectionID, models.SectionUpdate{Title: &free}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestUpdateSameTitleSkipsUniquenessCheck(t *testing.T) {
	sectionID := uuid.New()
	sections := &stubSectionRepo{
		sectionByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Section, error) {
			return &models.Section{ID: sectionID, Title: "Same"}, nil
		},
		titleExistsFn: func(ctx context.Context, cid uuid.UUID, title string) (bool, error) {
			t.Fatal("TitleExists should not be called for an unchanged title")
			return false, nil
		},
		updateSectionFn: func(ctx context.Context, id uuid.UUID, upd models.SectionUpdate) (*models.Section, error) {
			return &models.Section{ID: id, Title: *upd.Title}, nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	same := "Same"
	if _, err := service.Update(context.Background(), sectionID, models.SectionUpdate{Title: &same}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestDeleteResolvesCourseScope(t *testing.T) {
	sectionID := uuid.New()
	courseID := uuid.New()
	var gotSection, gotCourse uuid.UUID
	sections := &stubSectionRepo{
		sectionByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Section, error) {
			return &models.Section{ID: id, CourseID: courseID}, nil
		},
		deleteSectionFn: func(ctx context.Context, sid, cid uuid.UUID) error {
			gotSection, gotCourse = sid, cid
			return nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	if err := service.Delete(context.Background(), sectionID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotSection != sectionID || gotCourse != courseID {
		t.Fatalf("expected delete of %s in %s, got %s in %s", sectionID, courseID, gotSection, gotCourse)
	}
}

func TestReorderReturnsFreshListing(t *testing.T) {
	courseID := uuid.New()
	a, b := uuid.New(), uuid.New()
	orderings := []models.SectionOrdering{
		{SectionID: a, Ordering: 2},
		{SectionID: b, Ordering: 1},
	}
	var applied []models.SectionOrdering
	sections := &stubSectionRepo{
		reorderSectionsFn: func(ctx context.Context, cid uuid.UUID, o []models.SectionOrdering) error {
			applied = o
			return nil
		},
		sectionsByCourse: func(ctx context.Context, cid uuid.UUID) ([]models.Section, error) {
			return []models.Section{
				{ID: b, CourseID: cid, Ordering: 1},
				{ID: a, CourseID: cid, Ordering: 2},
			}, nil
		},
	}
	service := NewService(logger.New("prod"), existingCourse(), sections)

	listed, err := service.Reorder(context.Background(), courseID, orderings)
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("expected 2 applied orderings, got %d", len(applied))
	}
	if len(listed) != 2 || listed[0].ID != b || listed[1].ID != a {
		t.Fatalf("unexpected listing order: %v", listed)
	}
}
