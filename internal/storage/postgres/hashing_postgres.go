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

// HashingPostgres is the registry of password hashing algorithms referenced
// by user_auth rows.
type HashingPostgres struct {
	db *pgxpool.Pool
}

func NewHashingPostgres(db *pgxpool.Pool) *HashingPostgres {
	return &HashingPostgres{db: db}
}

func (r *HashingPostgres) CreateAlgorithm(ctx context.Context, name string) (*models.HashingAlgorithm, error) {
	algorithm := &models.HashingAlgorithm{AlgorithmName: name}
	query := `INSERT INTO hashing_algorithms (algorithm_name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRow(ctx, query, name).Scan(&algorithm.ID); err != nil {
		return nil, classifyError(err)
	}
	return algorithm, nil
}

func (r *HashingPostgres) Algorithms(ctx context.Context) ([]models.HashingAlgorithm, error) {
	rows, err := r.db.Query(ctx, `SELECT id, algorithm_name FROM hashing_algorithms ORDER BY id`)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var algorithms []models.HashingAlgorithm
	for rows.Next() {
		var a models.HashingAlgorithm
		if err := rows.Scan(&a.ID, &a.AlgorithmName); err != nil {
			return nil, classifyError(err)
		}
		algorithms = append(algorithms, a)
	}
	return algorithms, classifyError(rows.Err())
}

func (r *HashingPostgres) AlgorithmByID(ctx context.Context, id int) (*models.HashingAlgorithm, error) {
	algorithm := &models.HashingAlgorithm{}
	err := r.db.QueryRow(ctx, `SELECT id, algorithm_name FROM hashing_algorithms WHERE id = $1`, id).
		Scan(&algorithm.ID, &algorithm.AlgorithmName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: hashing algorithm", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return algorithm, nil
}

func (r *HashingPostgres) AlgorithmByName(ctx context.Context, name string) (*models.HashingAlgorithm, error) {
	algorithm := &models.HashingAlgorithm{}
	err := r.db.QueryRow(ctx, `SELECT id, algorithm_name FROM hashing_algorithms WHERE algorithm_name = $1`, name).
		Scan(&algorithm.ID, &algorithm.AlgorithmName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: hashing algorithm", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return algorithm, nil
}

func (r *HashingPostgres) UpdateAlgorithm(ctx context.Context, id int, newName string) (*models.HashingAlgorithm, error) {
	algorithm := &models.HashingAlgorithm{}
	query := `UPDATE hashing_algorithms SET algorithm_name = $2 WHERE id = $1 RETURNING id, algorithm_name`
	if err := r.db.QueryRow(ctx, query, id, newName).Scan(&algorithm.ID, &algorithm.AlgorithmName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: hashing algorithm", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return algorithm, nil
}

func (r *HashingPostgres) DeleteAlgorithm(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM hashing_algorithms WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: hashing algorithm", app_errors.ErrNotFound)
	}
	return nil
}
