package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SectionPostgres struct {
	db *pgxpool.Pool
}

func NewSectionPostgres(db *pgxpool.Pool) *SectionPostgres {
	return &SectionPostgres{db: db}
}

const sectionColumns = `id, course_id, title, description, ordering, created_at, updated_at`

const (
	sectionResequenceSelect = `SELECT id, ordering FROM sections WHERE course_id = $1 ORDER BY ordering`
	sectionResequenceUpdate = `UPDATE sections SET ordering = $1 WHERE id = $2`
)

func scanSection(row pgx.Row) (*models.Section, error) {
	section := &models.Section{}
	err := row.Scan(
		&section.ID, &section.CourseID, &section.Title, &section.Description,
		&section.Ordering, &section.CreatedAt, &section.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: section", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return section, nil
}

func (r *SectionPostgres) CreateSection(ctx context.Context, section models.Section) (*models.Section, error) {
	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}
	now := time.Now().UTC()
	section.CreatedAt = now
	section.UpdatedAt = now

	query := `
		INSERT INTO sections (id, course_id, title, description, ordering, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		section.ID, section.CourseID, section.Title, section.Description,
		section.Ordering, section.CreatedAt, section.UpdatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}
	return &section, nil
}

func (r *SectionPostgres) SectionByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1`
	return scanSection(r.db.QueryRow(ctx, query, id))
}

func (r *SectionPostgres) SectionByCourseAndID(ctx context.Context, courseID, sectionID uuid.UUID) (*models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE course_id = $1 AND id = $2`
	return scanSection(r.db.QueryRow(ctx, query, courseID, sectionID))
}

func (r *SectionPostgres) SectionsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE course_id = $1 ORDER BY ordering`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var s models.Section
		if err := rows.Scan(
			&s.ID, &s.CourseID, &s.Title, &s.Description,
			&s.Ordering, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, classifyError(err)
		}
		sections = append(sections, s)
	}
	return sections, classifyError(rows.Err())
}

func (r *SectionPostgres) TitleExists(ctx context.Context, courseID uuid.UUID, title string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM sections WHERE course_id = $1 AND title = $2)`
	if err := r.db.QueryRow(ctx, query, courseID, title).Scan(&exists); err != nil {
		return false, classifyError(err)
	}
	return exists, nil
}

func (r *SectionPostgres) MaxOrdering(ctx context.Context, courseID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(ordering), 0) FROM sections WHERE course_id = $1`
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&max); err != nil {
		return 0, classifyError(err)
	}
	return max, nil
}

// UpdateSection applies only the supplied fields. Ordering is not reachable
// through this path.
func (r *SectionPostgres) UpdateSection(ctx context.Context, id uuid.UUID, update models.SectionUpdate) (*models.Section, error) {
	query := `
		UPDATE sections SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			updated_at = $4
		WHERE id = $1
		RETURNING ` + sectionColumns
	return scanSection(r.db.QueryRow(ctx, query, id, update.Title, update.Description, time.Now().UTC()))
}

// DeleteSection removes the section with its lessons and their content rows,
// then closes the ordering gap among the surviving sections of the course.
// One transaction end to end.
func (r *SectionPostgres) DeleteSection(ctx context.Context, sectionID, courseID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	lessonScope := `SELECT id FROM lessons WHERE section_id = $1`
	for _, table := range []string{"article_content", "file_content", "quiz_content"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE lesson_id IN (%s)`, table, lessonScope)
		if _, err := tx.Exec(ctx, query, sectionID); err != nil {
			return classifyError(err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM lessons WHERE section_id = $1`, sectionID); err != nil {
		return classifyError(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM sections WHERE id = $1`, sectionID)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: section", app_errors.ErrNotFound)
	}

	if err := resequence(ctx, tx, sectionResequenceSelect, sectionResequenceUpdate, courseID); err != nil {
		return classifyError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}

// ReorderSections bulk-applies the supplied ordering values. The dense/unique
// invariant is the caller's responsibility; the deferred unique constraint
// still rejects conflicting end states at commit.
func (r *SectionPostgres) ReorderSections(ctx context.Context, courseID uuid.UUID, updates []models.SectionOrdering) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM sections WHERE course_id = $1`, courseID).Scan(&count); err != nil {
		return classifyError(err)
	}
	if count == 0 {
		return fmt.Errorf("%w: course has no sections", app_errors.ErrNotFound)
	}

	query := `UPDATE sections SET ordering = $1, updated_at = $2 WHERE id = $3 AND course_id = $4`
	now := time.Now().UTC()
	for _, update := range updates {
		if _, err := tx.Exec(ctx, query, update.Ordering, now, update.SectionID, courseID); err != nil {
			return classifyError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}
