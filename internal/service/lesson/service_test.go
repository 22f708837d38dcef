package lesson

import (
	"context"
	"errors"
	"io"
	"testing"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/google/uuid"
)

type stubCourseRepo struct{}

func (stubCourseRepo) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

type stubSectionRepo struct {
	sectionByCourseAndIDFn func(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error)
}

func (s *stubSectionRepo) SectionByCourseAndID(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
	return s.sectionByCourseAndIDFn(ctx, courseID, sectionID)
}

type stubLessonRepo struct {
	createLessonFn func(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error)
	lessonByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	titleExistsFn  func(ctx context.Context, courseID, sectionID uuid.UUID, title string) (bool, error)
	maxOrderingFn  func(ctx context.Context, sectionID uuid.UUID) (int, error)
	updateLessonFn func(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error)
	deleteLessonFn func(ctx context.Context, id uuid.UUID) error
}

func (s *stubLessonRepo) CreateLesson(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error) {
	return s.createLessonFn(ctx, lesson, content)
}

func (s *stubLessonRepo) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	return s.lessonByIDFn(ctx, id)
}

func (s *stubLessonRepo) LessonDetail(ctx context.Context, id uuid.UUID) (*models.LessonDetail, error) {
	return nil, app_errors.ErrNotFound
}

func (s *stubLessonRepo) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	return nil, nil
}

func (s *stubLessonRepo) TitleExists(ctx context.Context, courseID, sectionID uuid.UUID, title string) (bool, error) {
	return s.titleExistsFn(ctx, courseID, sectionID, title)
}

func (s *stubLessonRepo) MaxOrdering(ctx context.Context, sectionID uuid.UUID) (int, error) {
	return s.maxOrderingFn(ctx, sectionID)
}

func (s *stubLessonRepo) UpdateLesson(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error) {
	return s.updateLessonFn(ctx, id, upd)
}

func (s *stubLessonRepo) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	return s.deleteLessonFn(ctx, id)
}

type stubContentRepo struct{}

func (stubContentRepo) UpdateFileContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.FileContentUpdate) (*models.FileContent, error) {
	return nil, app_errors.ErrNotFound
}

func (stubContentRepo) UpdateArticleContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.ArticleContentUpdate) (*models.ArticleContent, error) {
	return nil, app_errors.ErrNotFound
}

func (stubContentRepo) UpdateQuizContent(ctx context.Context, lessonID, contentID uuid.UUID, upd models.QuizContentUpdate) (*models.QuizContent, error) {
	return nil, app_errors.ErrNotFound
}

type stubThumbnailRepo struct {
	uploadFn func(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	urlFn    func(ctx context.Context, objectKey string) (string, error)
}

func (s *stubThumbnailRepo) UploadLessonThumbnail(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.uploadFn(ctx, lessonID, filename, reader, size, contentType)
}

func (s *stubThumbnailRepo) ThumbnailURL(ctx context.Context, objectKey string) (string, error) {
	return s.urlFn(ctx, objectKey)
}

func sectionInCourse() *stubSectionRepo {
	return &stubSectionRepo{
		sectionByCourseAndIDFn: func(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
			return &models.Section{ID: sectionID, CourseID: courseID}, nil
		},
	}
}

func newTestService(sections *stubSectionRepo, lessons *stubLessonRepo) *Service {
	return NewService(logger.New("prod"), stubCourseRepo{}, sections, lessons, stubContentRepo{}, &stubThumbnailRepo{})
}

func articleLesson() (models.Lesson, models.LessonContent) {
	lesson := models.Lesson{
		CourseID:    uuid.New(),
		SectionID:   uuid.New(),
		Title:       "Intro",
		ContentType: models.ContentTypeArticle,
		AccessType:  models.AccessTypeFree,
	}
	content := models.LessonContent{Article: &models.ArticleContent{Content: "text"}}
	return lesson, content
}

func TestCreateAppendsAtEnd(t *testing.T) {
	var captured models.Lesson
	lessons := &stubLessonRepo{
		titleExistsFn: func(ctx context.Context, cid, sid uuid.UUID, title string) (bool, error) {
			return false, nil
		},
		maxOrderingFn: func(ctx context.Context, sid uuid.UUID) (int, error) {
			return 2, nil
		},
		createLessonFn: func(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error) {
			captured = lesson
			copy := lesson
			copy.ID = uuid.New()
			return &copy, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	lesson, content := articleLesson()
	if _, err := service.Create(context.Background(), lesson, content); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured.Ordering != 3 {
		t.Fatalf("expected ordering 3, got %d", captured.Ordering)
	}
}

func TestCreateForcesZeroAttemptsForNonQuiz(t *testing.T) {
	var captured models.Lesson
	lessons := &stubLessonRepo{
		titleExistsFn: func(ctx context.Context, cid, sid uuid.UUID, title string) (bool, error) {
			return false, nil
		},
		maxOrderingFn: func(ctx context.Context, sid uuid.UUID) (int, error) {
			return 0, nil
		},
		createLessonFn: func(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error) {
			captured = lesson
			return &lesson, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	lesson, content := articleLesson()
	lesson.QuizAttemptsAllowed = 7
	if _, err := service.Create(context.Background(), lesson, content); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured.QuizAttemptsAllowed != 0 {
		t.Fatalf("expected attempts forced to 0, got %d", captured.QuizAttemptsAllowed)
	}
}

func TestCreateKeepsAttemptsForQuiz(t *testing.T) {
	var captured models.Lesson
	lessons := &stubLessonRepo{
		titleExistsFn: func(ctx context.Context, cid, sid uuid.UUID, title string) (bool, error) {
			return false, nil
		},
		maxOrderingFn: func(ctx context.Context, sid uuid.UUID) (int, error) {
			return 0, nil
		},
		createLessonFn: func(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error) {
			captured = lesson
			return &lesson, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	lesson := models.Lesson{
		CourseID:            uuid.New(),
		SectionID:           uuid.New(),
		Title:               "Quiz",
		ContentType:         models.ContentTypeQuiz,
		AccessType:          models.AccessTypeFree,
		QuizAttemptsAllowed: 3,
	}
	content := models.LessonContent{Quiz: []models.QuizContent{
		{Question: "q1", Option1: "a", Option2: "b", Answer: "a"},
		{Question: "q2", Option1: "a", Option2: "b", Answer: "b"},
	}}
	if _, err := service.Create(context.Background(), lesson, content); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured.QuizAttemptsAllowed != 3 {
		t.Fatalf("expected attempts 3, got %d", captured.QuizAttemptsAllowed)
	}
}

func TestCreateRequiresMatchingContent(t *testing.T) {
	service := newTestService(sectionInCourse(), &stubLessonRepo{})

	cases := []struct {
		contentType string
		content     models.LessonContent
	}{
		{models.ContentTypeArticle, models.LessonContent{}},
		{models.ContentTypeVideo, models.LessonContent{Article: &models.ArticleContent{Content: "x"}}},
		{models.ContentTypePDF, models.LessonContent{}},
		{models.ContentTypeQuiz, models.LessonContent{File: &models.FileContent{URL: "u"}}},
		{"bogus", models.LessonContent{}},
	}
	for _, tc := range cases {
		lesson := models.Lesson{
			CourseID:    uuid.New(),
			SectionID:   uuid.New(),
			Title:       "Broken",
			ContentType: tc.contentType,
			AccessType:  models.AccessTypeFree,
		}
		_, err := service.Create(context.Background(), lesson, tc.content)
		if !errors.Is(err, app_errors.ErrNotNullViolation) {
			t.Fatalf("content type %s: expected ErrNotNullViolation, got %v", tc.contentType, err)
		}
	}
}

func TestCreateDuplicateTitle(t *testing.T) {
	lessons := &stubLessonRepo{
		titleExistsFn: func(ctx context.Context, cid, sid uuid.UUID, title string) (bool, error) {
			return true, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	lesson, content := articleLesson()
	_, err := service.Create(context.Background(), lesson, content)
	if !errors.Is(err, app_errors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateSectionNotInCourse(t *testing.T) {
	sections := &stubSectionRepo{
		sectionByCourseAndIDFn: func(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
			return nil, app_errors.ErrNotFound
		},
	}
	service := newTestService(sections, &stubLessonRepo{})

	lesson, content := articleLesson()
	_, err := service.Create(context.Background(), lesson, content)
	if !errors.Is(err, app_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDropsAttemptsForNonQuiz(t *testing.T) {
	lessonID := uuid.New()
	var captured models.LessonUpdate
	lessons := &stubLessonRepo{
		lessonByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
			return &models.Lesson{ID: id, Title: "Intro", ContentType: models.ContentTypeArticle}, nil
		},
		updateLessonFn: func(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error) {
			captured = upd
			return &models.Lesson{ID: id}, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	attempts := 5
	if _, err := service.Update(context.Background(), lessonID, models.LessonUpdate{QuizAttemptsAllowed: &attempts}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if captured.QuizAttemptsAllowed != nil {
		t.Fatal("expected attempts update dropped for non-quiz lesson")
	}
}

func TestUpdateKeepsAttemptsForQuiz(t *testing.T) {
	lessonID := uuid.New()
	var captured models.LessonUpdate
	lessons := &stubLessonRepo{
		lessonByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
			return &models.Lesson{ID: id, Title: "Quiz", ContentType: models.ContentTypeQuiz}, nil
		},
		updateLessonFn: func(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error) {
			captured = upd
			return &models.Lesson{ID: id}, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	attempts := 5
	if _, err := service.Update(context.Background(), lessonID, models.LessonUpdate{QuizAttemptsAllowed: &attempts}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if captured.QuizAttemptsAllowed == nil || *captured.QuizAttemptsAllowed != 5 {
		t.Fatalf("expected attempts update kept, got %v", captured.QuizAttemptsAllowed)
	}
}

func TestUploadThumbnailStoresObjectKey(t *testing.T) {
	lessonID := uuid.New()
	var captured models.LessonUpdate
	lessons := &stubLessonRepo{
		lessonByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
			return &models.Lesson{ID: id, Title: "Intro", ContentType: models.ContentTypeArticle}, nil
		},
		updateLessonFn: func(ctx context.Context, id uuid.UUID, upd models.LessonUpdate) (*models.Lesson, error) {
			captured = upd
			return &models.Lesson{ID: id, Thumbnail: upd.Thumbnail}, nil
		},
	}
	thumbnails := &stubThumbnailRepo{
		uploadFn: func(ctx context.Context, lid uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
			return "lessons/" + lid.String() + "/thumbnail.png", nil
		},
	}
	service := NewService(logger.New("prod"), stubCourseRepo{}, sectionInCourse(), lessons, stubContentRepo{}, thumbnails)

	lesson, err := service.UploadThumbnail(context.Background(), lessonID, "cover.png", nil, 0, "image/png")
	if err != nil {
		t.Fatalf("UploadThumbnail() error = %v", err)
	}
	wantKey := "lessons/" + lessonID.String() + "/thumbnail.png"
	if captured.Thumbnail == nil || *captured.Thumbnail != wantKey {
		t.Fatalf("expected thumbnail update %s, got %v", wantKey, captured.Thumbnail)
	}
	if lesson.Thumbnail == nil || *lesson.Thumbnail != wantKey {
		t.Fatalf("unexpected thumbnail key: %v", lesson.Thumbnail)
	}
}

func TestThumbnailURLWithoutThumbnail(t *testing.T) {
	lessons := &stubLessonRepo{
		lessonByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
			return &models.Lesson{ID: id, Title: "Intro", ContentType: models.ContentTypeArticle}, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	url, err := service.ThumbnailURL(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ThumbnailURL() error = %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url, got %q", url)
	}
}

func TestUpdateRejectsDuplicateTitle(t *testing.T) {
	lessonID := uuid.New()
	lessons := &stubLessonRepo{
		lessonByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
			return &models.Lesson{ID: id, Title: "Old", ContentType: models.ContentTypeArticle}, nil
		},
		titleExistsFn: func(ctx context.Context, cid, sid uuid.UUID, title string) (bool, error) {
			return true, nil
		},
	}
	service := newTestService(sectionInCourse(), lessons)

	taken := "Taken"
	_, err := service.Update(context.Background(), lessonID, models.LessonUpdate{Title: &taken})
	if !errors.Is(err, app_errors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
