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

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `
	id, title, slug, description, category_id, price, tags, course_level,
	course_language, course_duration, thumbnail, author_id, published,
	published_at, created_at, updated_at
`

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Title, &course.Slug, &course.Description,
		&course.CategoryID, &course.Price, &course.Tags, &course.Level,
		&course.Language, &course.Duration, &course.Thumbnail, &course.AuthorID,
		&course.Published, &course.PublishedAt,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: course", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return course, nil
}

func (r *CoursePostgres) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	query := `
		INSERT INTO courses (
			id, title, slug, description, category_id, price, tags,
			course_level, course_language, course_duration, thumbnail,
			author_id, published, published_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`
	_, err := r.db.Exec(ctx, query,
		course.ID, course.Title, course.Slug, course.Description,
		course.CategoryID, course.Price, course.Tags, course.Level,
		course.Language, course.Duration, course.Thumbnail, course.AuthorID,
		course.Published, course.PublishedAt, course.CreatedAt, course.UpdatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}
	return &course, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE slug = $1`
	return scanCourse(r.db.QueryRow(ctx, query, slug))
}

func (r *CoursePostgres) Courses(ctx context.Context, limit, offset int) ([]models.Course, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.CategoryID,
			&c.Price, &c.Tags, &c.Level, &c.Language, &c.Duration,
			&c.Thumbnail, &c.AuthorID, &c.Published, &c.PublishedAt,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, classifyError(err)
		}
		courses = append(courses, c)
	}
	return courses, classifyError(rows.Err())
}

func (r *CoursePostgres) CoursesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]models.Course, len(ids))
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.Description, &c.CategoryID,
			&c.Price, &c.Tags, &c.Level, &c.Language, &c.Duration,
			&c.Thumbnail, &c.AuthorID, &c.Published, &c.PublishedAt,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, classifyError(err)
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	// Preserve the caller's ranking.
	courses := make([]models.Course, 0, len(byID))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	query := `
		UPDATE courses SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			category_id = COALESCE($4, category_id),
			price = COALESCE($5, price),
			tags = COALESCE($6, tags),
			course_level = COALESCE($7, course_level),
			course_language = COALESCE($8, course_language),
			course_duration = COALESCE($9, course_duration),
			thumbnail = COALESCE($10, thumbnail),
			updated_at = $11
		WHERE id = $1
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(ctx, query,
		id, update.Title, update.Description, update.CategoryID,
		update.Price, update.Tags, update.Level, update.Language,
		update.Duration, update.Thumbnail, time.Now().UTC(),
	))
}

func (r *CoursePostgres) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Course, error) {
	var publishedAt *time.Time
	now := time.Now().UTC()
	if published {
		publishedAt = &now
	}
	query := `
		UPDATE courses SET published = $2, published_at = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(ctx, query, id, published, publishedAt, now))
}

// DeleteCourse removes the course and everything hanging off it. Content
// rows have no cascade from lessons, so they go first.
func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	lessonScope := `SELECT id FROM lessons WHERE course_id = $1`
	for _, table := range []string{"article_content", "file_content", "quiz_content"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE lesson_id IN (%s)`, table, lessonScope)
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return classifyError(err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, id); err != nil {
		return classifyError(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sections WHERE course_id = $1`, id); err != nil {
		return classifyError(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: course", app_errors.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}
