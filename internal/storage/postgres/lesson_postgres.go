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

type LessonPostgres struct {
	db *pgxpool.Pool
}

func NewLessonPostgres(db *pgxpool.Pool) *LessonPostgres {
	return &LessonPostgres{db: db}
}

const lessonColumns = `
	id, course_id, section_id, title, description, thumbnail, content_type,
	access_type, quiz_attempts_allowed, ordering, duration, published,
	created_at, updated_at
`

const (
	lessonResequenceSelect = `SELECT id, ordering FROM lessons WHERE section_id = $1 ORDER BY ordering`
	lessonResequenceUpdate = `UPDATE lessons SET ordering = $1 WHERE id = $2`
)

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	lesson := &models.Lesson{}
	err := row.Scan(
		&lesson.ID, &lesson.CourseID, &lesson.SectionID, &lesson.Title,
		&lesson.Description, &lesson.Thumbnail, &lesson.ContentType,
		&lesson.AccessType, &lesson.QuizAttemptsAllowed, &lesson.Ordering,
		&lesson.Duration, &lesson.Published, &lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: lesson", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return lesson, nil
}

func (r *LessonPostgres) TitleExists(ctx context.Context, courseID, sectionID uuid.UUID, title string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE course_id = $1 AND section_id = $2 AND title = $3)`
	if err := r.db.QueryRow(ctx, query, courseID, sectionID, title).Scan(&exists); err != nil {
		return false, classifyError(err)
	}
	return exists, nil
}

func (r *LessonPostgres) MaxOrdering(ctx context.Context, sectionID uuid.UUID) (int, error) {
	var max int
	query := `SELECT COALESCE(MAX(ordering), 0) FROM lessons WHERE section_id = $1`
	if err := r.db.QueryRow(ctx, query, sectionID).Scan(&max); err != nil {
		return 0, classifyError(err)
	}
	return max, nil
}

// CreateLesson inserts the lesson and its content rows in one transaction.
// The lesson id is generated up front because the content rows reference it.
// A failure anywhere rolls back the whole thing.
func (r *LessonPostgres) CreateLesson(ctx context.Context, lesson models.Lesson, content models.LessonContent) (*models.Lesson, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, classifyError(err)
	}
	defer tx.Rollback(ctx)

	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	insertLesson := `
		INSERT INTO lessons (
			id, course_id, section_id, title, description, thumbnail,
			content_type, access_type, quiz_attempts_allowed, ordering,
			duration, published, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`
	_, err = tx.Exec(ctx, insertLesson,
		lesson.ID, lesson.CourseID, lesson.SectionID, lesson.Title,
		lesson.Description, lesson.Thumbnail, lesson.ContentType,
		lesson.AccessType, lesson.QuizAttemptsAllowed, lesson.Ordering,
		lesson.Duration, lesson.Published, lesson.CreatedAt, lesson.UpdatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}

	switch lesson.ContentType {
	case models.ContentTypeVideo, models.ContentTypePDF:
		insertFile := `
			INSERT INTO file_content (id, lesson_id, url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, insertFile, uuid.New(), lesson.ID, content.File.URL, now, now); err != nil {
			return nil, classifyError(err)
		}
	case models.ContentTypeArticle:
		insertArticle := `
			INSERT INTO article_content (id, lesson_id, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, insertArticle, uuid.New(), lesson.ID, content.Article.Content, now, now); err != nil {
			return nil, classifyError(err)
		}
	case models.ContentTypeQuiz:
		insertQuestion := `
			INSERT INTO quiz_content (id, lesson_id, question, option_1, option_2, option_3, option_4, answer, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		for _, q := range content.Quiz {
			_, err := tx.Exec(ctx, insertQuestion,
				uuid.New(), lesson.ID, q.Question, q.Option1, q.Option2,
				q.Option3, q.Option4, q.Answer, now, now,
			)
			if err != nil {
				return nil, classifyError(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classifyError(err)
	}
	return &lesson, nil
}

func (r *LessonPostgres) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	return scanLesson(r.db.QueryRow(ctx, query, id))
}

func (r *LessonPostgres) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = $1 ORDER BY section_id, ordering`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(
			&l.ID, &l.CourseID, &l.SectionID, &l.Title, &l.Description,
			&l.Thumbnail, &l.ContentType, &l.AccessType, &l.QuizAttemptsAllowed,
			&l.Ordering, &l.Duration, &l.Published, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, classifyError(err)
		}
		lessons = append(lessons, l)
	}
	return lessons, classifyError(rows.Err())
}

func (r *LessonPostgres) UpdateLesson(ctx context.Context, id uuid.UUID, update models.LessonUpdate) (*models.Lesson, error) {
	query := `
		UPDATE lessons SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			thumbnail = COALESCE($4, thumbnail),
			access_type = COALESCE($5, access_type),
			quiz_attempts_allowed = COALESCE($6, quiz_attempts_allowed),
			duration = COALESCE($7, duration),
			published = COALESCE($8, published),
			updated_at = $9
		WHERE id = $1
		RETURNING ` + lessonColumns
	return scanLesson(r.db.QueryRow(ctx, query,
		id, update.Title, update.Description, update.Thumbnail,
		update.AccessType, update.QuizAttemptsAllowed, update.Duration,
		update.Published, time.Now().UTC(),
	))
}

// LessonDetail loads a lesson together with its content variant.
func (r *LessonPostgres) LessonDetail(ctx context.Context, id uuid.UUID) (*models.LessonDetail, error) {
	lesson, err := r.LessonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.LessonDetail{Lesson: *lesson}

	switch lesson.ContentType {
	case models.ContentTypeVideo, models.ContentTypePDF:
		file := &models.FileContent{}
		query := `SELECT id, lesson_id, url, created_at, updated_at FROM file_content WHERE lesson_id = $1`
		err := r.db.QueryRow(ctx, query, id).Scan(
			&file.ID, &file.LessonID, &file.URL, &file.CreatedAt, &file.UpdatedAt,
		)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, classifyError(err)
		}
		if err == nil {
			detail.Content.File = file
		}
	case models.ContentTypeArticle:
		article := &models.ArticleContent{}
		query := `SELECT id, lesson_id, content, created_at, updated_at FROM article_content WHERE lesson_id = $1`
		err := r.db.QueryRow(ctx, query, id).Scan(
			&article.ID, &article.LessonID, &article.Content, &article.CreatedAt, &article.UpdatedAt,
		)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, classifyError(err)
		}
		if err == nil {
			detail.Content.Article = article
		}
	case models.ContentTypeQuiz:
		query := `
			SELECT id, lesson_id, question, option_1, option_2, option_3, option_4, answer, created_at, updated_at
			FROM quiz_content WHERE lesson_id = $1 ORDER BY created_at
		`
		rows, err := r.db.Query(ctx, query, id)
		if err != nil {
			return nil, classifyError(err)
		}
		defer rows.Close()
		for rows.Next() {
			var q models.QuizContent
			if err := rows.Scan(
				&q.ID, &q.LessonID, &q.Question, &q.Option1, &q.Option2,
				&q.Option3, &q.Option4, &q.Answer, &q.CreatedAt, &q.UpdatedAt,
			); err != nil {
				return nil, classifyError(err)
			}
			detail.Content.Quiz = append(detail.Content.Quiz, q)
		}
		if err := rows.Err(); err != nil {
			return nil, classifyError(err)
		}
	}
	return detail, nil
}

// DeleteLesson removes the content rows matching the lesson's content_type,
// then the lesson itself, then closes the ordering gap among its section
// siblings. A content row that is already gone is treated as a no-op.
func (r *LessonPostgres) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	var sectionID uuid.UUID
	var contentType string
	query := `SELECT section_id, content_type FROM lessons WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRow(ctx, query, id).Scan(&sectionID, &contentType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: lesson", app_errors.ErrNotFound)
		}
		return classifyError(err)
	}

	var contentTable string
	switch contentType {
	case models.ContentTypeVideo, models.ContentTypePDF:
		contentTable = "file_content"
	case models.ContentTypeArticle:
		contentTable = "article_content"
	case models.ContentTypeQuiz:
		contentTable = "quiz_content"
	}
	if contentTable != "" {
		query := fmt.Sprintf(`DELETE FROM %s WHERE lesson_id = $1`, contentTable)
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return classifyError(err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id); err != nil {
		return classifyError(err)
	}

	if err := resequence(ctx, tx, lessonResequenceSelect, lessonResequenceUpdate, sectionID); err != nil {
		return classifyError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}
