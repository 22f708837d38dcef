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

type RolePostgres struct {
	db *pgxpool.Pool
}

func NewRolePostgres(db *pgxpool.Pool) *RolePostgres {
	return &RolePostgres{db: db}
}

func (r *RolePostgres) CreateRole(ctx context.Context, roleName string) (*models.UserRole, error) {
	role := &models.UserRole{RoleName: roleName}
	query := `INSERT INTO user_roles (role_name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRow(ctx, query, roleName).Scan(&role.ID); err != nil {
		return nil, classifyError(err)
	}
	return role, nil
}

func (r *RolePostgres) Roles(ctx context.Context) ([]models.UserRole, error) {
	rows, err := r.db.Query(ctx, `SELECT id, role_name FROM user_roles ORDER BY id`)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var roles []models.UserRole
	for rows.Next() {
		var role models.UserRole
		if err := rows.Scan(&role.ID, &role.RoleName); err != nil {
			return nil, classifyError(err)
		}
		roles = append(roles, role)
	}
	return roles, classifyError(rows.Err())
}

func (r *RolePostgres) RoleByID(ctx context.Context, id int) (*models.UserRole, error) {
	role := &models.UserRole{}
	err := r.db.QueryRow(ctx, `SELECT id, role_name FROM user_roles WHERE id = $1`, id).
		Scan(&role.ID, &role.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: role", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return role, nil
}

func (r *RolePostgres) RoleByName(ctx context.Context, name string) (*models.UserRole, error) {
	role := &models.UserRole{}
	err := r.db.QueryRow(ctx, `SELECT id, role_name FROM user_roles WHERE role_name = $1`, name).
		Scan(&role.ID, &role.RoleName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: role", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return role, nil
}

func (r *RolePostgres) UpdateRole(ctx context.Context, id int, newName string) (*models.UserRole, error) {
	role := &models.UserRole{}
	query := `UPDATE user_roles SET role_name = $2 WHERE id = $1 RETURNING id, role_name`
	if err := r.db.QueryRow(ctx, query, id, newName).Scan(&role.ID, &role.RoleName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: role", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return role, nil
}

func (r *RolePostgres) DeleteRole(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return classifyError(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: role", app_errors.ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *RolePostgres) CreatePermission(ctx context.Context, permissionName string) (*models.UserPermission, error) {
	permission := &models.UserPermission{PermissionName: permissionName}
	query := `INSERT INTO user_permissions (permission_name) VALUES ($1) RETURNING id`
	if err := r.db.QueryRow(ctx, query, permissionName).Scan(&permission.ID); err != nil {
		return nil, classifyError(err)
	}
	return permission, nil
}

func (r *RolePostgres) Permissions(ctx context.Context) ([]models.UserPermission, error) {
	rows, err := r.db.Query(ctx, `SELECT id, permission_name FROM user_permissions ORDER BY id`)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var permissions []models.UserPermission
	for rows.Next() {
		var p models.UserPermission
		if err := rows.Scan(&p.ID, &p.PermissionName); err != nil {
			return nil, classifyError(err)
		}
		permissions = append(permissions, p)
	}
	return permissions, classifyError(rows.Err())
}

func (r *RolePostgres) PermissionByID(ctx context.Context, id int) (*models.UserPermission, error) {
	permission := &models.UserPermission{}
	err := r.db.QueryRow(ctx, `SELECT id, permission_name FROM user_permissions WHERE id = $1`, id).
		Scan(&permission.ID, &permission.PermissionName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: permission", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return permission, nil
}

func (r *RolePostgres) UpdatePermission(ctx context.Context, id int, newName string) (*models.UserPermission, error) {
	permission := &models.UserPermission{}
	query := `UPDATE user_permissions SET permission_name = $2 WHERE id = $1 RETURNING id, permission_name`
	if err := r.db.QueryRow(ctx, query, id, newName).Scan(&permission.ID, &permission.PermissionName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: permission", app_errors.ErrNotFound)
		}
		return nil, classifyError(err)
	}
	return permission, nil
}

func (r *RolePostgres) DeletePermission(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return classifyError(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE permission_id = $1`, id); err != nil {
		return classifyError(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM user_permissions WHERE id = $1`, id)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: permission", app_errors.ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *RolePostgres) AttachPermission(ctx context.Context, roleID, permissionID int) error {
	query := `INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, query, roleID, permissionID); err != nil {
		return classifyError(err)
	}
	return nil
}

func (r *RolePostgres) DetachPermission(ctx context.Context, roleID, permissionID int) error {
	query := `DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`
	tag, err := r.db.Exec(ctx, query, roleID, permissionID)
	if err != nil {
		return classifyError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: role permission", app_errors.ErrNotFound)
	}
	return nil
}

func (r *RolePostgres) PermissionsByRole(ctx context.Context, roleID int) ([]models.UserPermission, error) {
	query := `
		SELECT p.id, p.permission_name
		FROM user_permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.id
	`
	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var permissions []models.UserPermission
	for rows.Next() {
		var p models.UserPermission
		if err := rows.Scan(&p.ID, &p.PermissionName); err != nil {
			return nil, classifyError(err)
		}
		permissions = append(permissions, p)
	}
	return permissions, classifyError(rows.Err())
}
