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

// ContentPostgres covers the partial-update paths of the three content
// variants. Rows are always addressed by (lesson_id, id) so a content id
// can never be mutated through a foreign lesson.
type ContentPostgres struct {
	db *pgxpool.Pool
}

func NewContentPostgres(db *pgxpool.Pool) *ContentPostgres {
	return &ContentPostgres{db: db}
}

func (r *ContentPostgres) UpdateFileContent(ctx context.Context, lessonID, contentID uuid.UUID, update models.FileContentUpdate) (*models.FileContent, error) {
	file := &models.FileContent{}
	query := `
		UPDATE file_content SET url = COALESCE($3, url), updated_at = $4
		WHERE lesson_id = $1 AND id = $2
		RETURNING id, lesson_id, url, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, lessonID, contentID, update.URL, time.Now().UTC()).Scan(
		&file.ID, &file.LessonID, &file.URL, &file.CreatedAt, &file.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: file content", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return file, nil
}

func (r *ContentPostgres) UpdateArticleContent(ctx context.Context, lessonID, contentID uuid.UUID, update models.ArticleContentUpdate) (*models.ArticleContent, error) {
	article := &models.ArticleContent{}
	query := `
		UPDATE article_content SET content = COALESCE($3, content), updated_at = $4
		WHERE lesson_id = $1 AND id = $2
		RETURNING id, lesson_id, content, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, lessonID, contentID, update.Content, time.Now().UTC()).Scan(
		&article.ID, &article.LessonID, &article.Content, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: article content", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return article, nil
}

func (r *ContentPostgres) UpdateQuizContent(ctx context.Context, lessonID, contentID uuid.UUID, update models.QuizContentUpdate) (*models.QuizContent, error) {
	question := &models.QuizContent{}
	query := `
		UPDATE quiz_content SET
			question = COALESCE($3, question),
			option_1 = COALESCE($4, option_1),
			option_2 = COALESCE($5, option_2),
			option_3 = COALESCE($6, option_3),
			option_4 = COALESCE($7, option_4),
			answer = COALESCE($8, answer),
			updated_at = $9
		WHERE lesson_id = $1 AND id = $2
		RETURNING id, lesson_id, question, option_1, option_2, option_3, option_4, answer, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		lessonID, contentID, update.Question, update.Option1, update.Option2,
		update.Option3, update.Option4, update.Answer, time.Now().UTC(),
	).Scan(
		&question.ID, &question.LessonID, &question.Question,
		&question.Option1, &question.Option2, &question.Option3,
		&question.Option4, &question.Answer, &question.CreatedAt, &question.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: quiz question", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return question, nil
}
