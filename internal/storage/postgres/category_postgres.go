package postgres

import (
	"context"
	"errors"
	"fmt"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryPostgres is the registry of course categories referenced by
// courses.category_id.
type CategoryPostgres struct {
	db *pgxpool.Pool
}

func NewCategoryPostgres(db *pgxpool.Pool) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

func (r *CategoryPostgres) CreateCategory(ctx context.Context, name string, description *string) (*models.CourseCategory, error) {
	category := &models.CourseCategory{Name: name, Description: description}
	query := `INSERT INTO course_category (name, description) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, query, name, description).Scan(&category.ID); err != nil {
		return nil, classifyError(err)
	}
	return category, nil
}

func (r *CategoryPostgres) Categories(ctx context.Context) ([]models.CourseCategory, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM course_category ORDER BY id`)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var categories []models.CourseCategory
	for rows.Next() {
		var c models.CourseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, classifyError(err)
		}
		categories = append(categories, c)
	}
	return categories, classifyError(rows.Err())
}

func (r *CategoryPostgres) CategoryByID(ctx context.Context, id int) (*models.CourseCategory, error) {
	category := &models.CourseCategory{}
	err := r.db.QueryRow(ctx, `SELECT id, name, description FROM course_category WHERE id = $1`, id).
		Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: course category", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return category, nil
}

func (r *CategoryPostgres) UpdateCategory(ctx context.Context, id int, upd models.CourseCategoryUpdate) (*models.CourseCategory, error) {
	category := &models.CourseCategory{}
	query := `
		UPDATE course_category SET
			name = COALESCE($2, name),
			description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description
	`
	if err := r.db.QueryRow(ctx, query, id, upd.Name, upd.Description).
		Scan(&category.ID, &category.Name, &category.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: course category", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return category, nil
}

func (r *CategoryPostgres) DeleteCategory(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	// Courses keep existing when their category goes away.
	if _, err := tx.Exec(ctx, `UPDATE courses SET category_id = NULL WHERE category_id = $1`, id); err != nil {
		return classifyError(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM course_category WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: course category", app_errors.ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}
