package postgres

import (
	"errors"
	"fmt"
	"testing"

	"CourseForge/internal/app_errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyErrorNil(t *testing.T) {
	if err := classifyError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestClassifyErrorUniqueConstraints(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{lessonTitleConstraint, app_errors.ErrAlreadyExists},
		{sectionTitleConstraint, app_errors.ErrAlreadyExists},
		{fileURLConstraint, app_errors.ErrAlreadyExists},
		{quizQuestionConstraint, app_errors.ErrAlreadyExists},
		{articleLessonConstraint, app_errors.ErrAlreadyExists},
		{categoryNameConstraint, app_errors.ErrAlreadyExists},
		{lessonOrderingConstraint, app_errors.ErrUniqueConstraintViolation},
		{sectionOrderingConstraint, app_errors.ErrUniqueConstraintViolation},
		{"user_auth_email_key", app_errors.ErrAlreadyExists},
	}
	for _, tc := range cases {
		pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tc.constraint}
		got := classifyError(fmt.Errorf("exec: %w", pgErr))
		if !errors.Is(got, tc.want) {
			t.Fatalf("constraint %s: expected %v, got %v", tc.constraint, tc.want, got)
		}
	}
}

func TestClassifyErrorNotNull(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgNotNullViolation, ColumnName: "title"}
	got := classifyError(pgErr)
	if !errors.Is(got, app_errors.ErrNotNullViolation) {
		t.Fatalf("expected ErrNotNullViolation, got %v", got)
	}
}

func TestClassifyErrorForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "lessons_section_id_fkey"}
	got := classifyError(pgErr)
	if !errors.Is(got, app_errors.ErrDatabaseOperation) {
		t.Fatalf("expected ErrDatabaseOperation, got %v", got)
	}
}

func TestClassifyErrorUnknownCategory(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: courseCategoryFK}
	got := classifyError(pgErr)
	if !errors.Is(got, app_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", got)
	}
}

func TestClassifyErrorUnknown(t *testing.T) {
	got := classifyError(errors.New("connection reset"))
	if !errors.Is(got, app_errors.ErrDatabaseOperation) {
		t.Fatalf("expected ErrDatabaseOperation, got %v", got)
	}
}
