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

type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

const userQuery = `
	SELECT u.id, u.email, u.password_hash, u.hash_algorithm_id, u.is_active,
	       u.is_verified, u.role_id, r.role_name, u.created_at, u.updated_at
	FROM user_auth u
	JOIN user_roles r ON u.role_id = r.id
`

func scanUser(row pgx.Row) (*models.UserAuth, error) {
	user := &models.UserAuth{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.HashAlgorithmID,
		&user.IsActive, &user.IsVerified, &user.RoleID, &user.RoleName,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return user, nil
}

func (r *UserPostgres) CreateUser(ctx context.Context, user models.UserAuth) (*models.UserAuth, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO user_auth (id, email, password_hash, hash_algorithm_id, is_active, is_verified, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.HashAlgorithmID,
		user.IsActive, user.IsVerified, user.RoleID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}
	return &user, nil
}

func (r *UserPostgres) UserByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
	return scanUser(r.db.QueryRow(ctx, userQuery+` WHERE u.id = $1`, id))
}

func (r *UserPostgres) UserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	return scanUser(r.db.QueryRow(ctx, userQuery+` WHERE u.email = $1`, email))
}
