package postgres

import (
	"errors"
	"fmt"

	"CourseForge/internal/app_errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Constraint names from schema.sql. The classifier dispatches on them to
// tell ordering collisions apart from plain duplicates.
const (
	lessonTitleConstraint     = "unique_section_lesson"
	lessonOrderingConstraint  = "course_section_ordering_uc"
	sectionTitleConstraint    = "section_course_title_uc"
	sectionOrderingConstraint = "section_course_ordering_uc"
	fileURLConstraint         = "file_content_url_key"
	quizQuestionConstraint    = "quiz_lesson_question_uc"
	articleLessonConstraint   = "article_content_lesson_id_key"
	categoryNameConstraint    = "course_category_name_key"
	courseCategoryFK          = "courses_category_id_fkey"
)

func UnwrapPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

// classifyError maps a low-level postgres failure onto the domain error
// taxonomy. Anything unrecognized becomes ErrDatabaseOperation so storage
// internals never leak past the service layer.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	pgErr := UnwrapPgError(err)
	if pgErr == nil {
		return fmt.Errorf("%w", app_errors.ErrDatabaseOperation)
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == courseCategoryFK {
			return fmt.Errorf("%w: course category", app_errors.ErrNotFound)
		}
		return fmt.Errorf("%w: invalid reference", app_errors.ErrDatabaseOperation)
	case pgNotNullViolation:
		return fmt.Errorf("%w: %s", app_errors.ErrNotNullViolation, pgErr.ColumnName)
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case lessonOrderingConstraint, sectionOrderingConstraint:
			return fmt.Errorf("%w: duplicate ordering", app_errors.ErrUniqueConstraintViolation)
		case fileURLConstraint:
			return fmt.Errorf("%w: the file already exists", app_errors.ErrAlreadyExists)
		case lessonTitleConstraint:
			return fmt.Errorf("%w: a lesson with the title already exists", app_errors.ErrAlreadyExists)
		case sectionTitleConstraint:
			return fmt.Errorf("%w: a section with the title already exists", app_errors.ErrAlreadyExists)
		case quizQuestionConstraint:
			return fmt.Errorf("%w: the question already exists for the lesson", app_errors.ErrAlreadyExists)
		case articleLessonConstraint:
			return fmt.Errorf("%w: the lesson already has an article", app_errors.ErrAlreadyExists)
		case categoryNameConstraint:
			return fmt.Errorf("%w: a category with the name already exists", app_errors.ErrAlreadyExists)
		default:
			return fmt.Errorf("%w: %s", app_errors.ErrAlreadyExists, pgErr.ConstraintName)
		}
	}

	return fmt.Errorf("%w", app_errors.ErrDatabaseOperation)
}
