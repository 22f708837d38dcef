package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokensPostgres persists refresh tokens as sha256 hashes; the raw token
// never touches the database.
type TokensPostgres struct {
	db *pgxpool.Pool
}

func NewTokensPostgres(db *pgxpool.Pool) *TokensPostgres {
	return &TokensPostgres{db: db}
}

func hashToken(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Matches reports whether the presented token is the one the record was
// created from.
func (r *TokensPostgres) Matches(record *models.RefreshToken, token *jwt.Token) bool {
	return record != nil && record.HashedToken == hashToken(token.Raw)
}

func (r *TokensPostgres) Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token has no expiry", app_errors.ErrInvalidToken)
	}

	refreshToken := &models.RefreshToken{
		ID:          uuid.New(),
		UserID:      userID,
		HashedToken: hashToken(token.Raw),
	}
	query := `
		INSERT INTO refresh_tokens (id, user_id, hashed_token, is_used, expires_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING is_used, created_at, expires_at
	`
	err = r.db.QueryRow(ctx, query, refreshToken.ID, userID, refreshToken.HashedToken, expiresAt.Time).
		Scan(&refreshToken.IsUsed, &refreshToken.CreatedAt, &refreshToken.ExpiresAt)
	if err != nil {
		return nil, classifyError(err)
	}
	return refreshToken, nil
}

// LatestByUser returns the most recently issued refresh token for a user.
func (r *TokensPostgres) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.RefreshToken, error) {
	refreshToken := &models.RefreshToken{}
	query := `
		SELECT id, user_id, hashed_token, is_used, created_at, expires_at
		FROM refresh_tokens
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&refreshToken.ID, &refreshToken.UserID, &refreshToken.HashedToken,
		&refreshToken.IsUsed, &refreshToken.CreatedAt, &refreshToken.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: refresh token", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return refreshToken, nil
}

func (r *TokensPostgres) MarkUsed(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET is_used = TRUE WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: refresh token", app_errors.ErrNotFound)
	}
	return nil
}

// MarkUsedByUser invalidates every outstanding token of a user. Called on
// login so at most one unused token exists afterwards.
func (r *TokensPostgres) MarkUsedByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE refresh_tokens SET is_used = TRUE WHERE user_id = $1 AND is_used = FALSE`, userID)
	if err != nil {
		return classifyError(err)
	}
	return nil
}
