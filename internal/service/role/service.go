package role

import (
	"context"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"
)

type roleRepo interface {
	CreateRole(ctx context.Context, roleName string) (*models.UserRole, error)
	Roles(ctx context.Context) ([]models.UserRole, error)
	RoleByID(ctx context.Context, id int) (*models.UserRole, error)
	RoleByName(ctx context.Context, name string) (*models.UserRole, error)
	UpdateRole(ctx context.Context, id int, newName string) (*models.UserRole, error)
	DeleteRole(ctx context.Context, id int) error

	CreatePermission(ctx context.Context, permissionName string) (*models.UserPermission, error)
	Permissions(ctx context.Context) ([]models.UserPermission, error)
	PermissionByID(ctx context.Context, id int) (*models.UserPermission, error)
	UpdatePermission(ctx context.Context, id int, newName string) (*models.UserPermission, error)
	DeletePermission(ctx context.Context, id int) error

	AttachPermission(ctx context.Context, roleID, permissionID int) error
	DetachPermission(ctx context.Context, roleID, permissionID int) error
	PermissionsByRole(ctx context.Context, roleID int) ([]models.UserPermission, error)
}

type algorithmRepo interface {
	CreateAlgorithm(ctx context.Context, name string) (*models.HashingAlgorithm, error)
	Algorithms(ctx context.Context) ([]models.HashingAlgorithm, error)
	AlgorithmByID(ctx context.Context, id int) (*models.HashingAlgorithm, error)
	UpdateAlgorithm(ctx context.Context, id int, newName string) (*models.HashingAlgorithm, error)
	DeleteAlgorithm(ctx context.Context, id int) error
}

// Service covers the access-control reference data: roles, permissions,
// role-permission links and the hashing algorithm registry.
type Service struct {
	log           logger.Log
	roleRepo      roleRepo
	algorithmRepo algorithmRepo
}

func NewService(l logger.Log, rRepo roleRepo, aRepo algorithmRepo) *Service {
	return &Service{log: l, roleRepo: rRepo, algorithmRepo: aRepo}
}

func (s *Service) CreateRole(ctx context.Context, name string) (*models.UserRole, error) {
	role, err := s.roleRepo.CreateRole(ctx, name)
	if err != nil {
		return nil, err
	}
	s.log.Info("role created", "role_id", role.ID, "role_name", role.RoleName)
	return role, nil
}

func (s *Service) Roles(ctx context.Context) ([]models.UserRole, error) {
	return s.roleRepo.Roles(ctx)
}

func (s *Service) Role(ctx context.Context, id int) (*models.UserRole, error) {
	return s.roleRepo.RoleByID(ctx, id)
}

func (s *Service) RoleByName(ctx context.Context, name string) (*models.UserRole, error) {
	return s.roleRepo.RoleByName(ctx, name)
}

func (s *Service) UpdateRole(ctx context.Context, id int, newName string) (*models.UserRole, error) {
	return s.roleRepo.UpdateRole(ctx, id, newName)
}

func (s *Service) DeleteRole(ctx context.Context, id int) error {
	if err := s.roleRepo.DeleteRole(ctx, id); err != nil {
		return err
	}
	s.log.Info("role deleted", "role_id", id)
	return nil
}

func (s *Service) CreatePermission(ctx context.Context, name string) (*models.UserPermission, error) {
	permission, err := s.roleRepo.CreatePermission(ctx, name)
	if err != nil {
		return nil, err
	}
	s.log.Info("permission created", "permission_id", permission.ID, "permission_name", permission.PermissionName)
	return permission, nil
}

func (s *Service) Permissions(ctx context.Context) ([]models.UserPermission, error) {
	return s.roleRepo.Permissions(ctx)
}

func (s *Service) Permission(ctx context.Context, id int) (*models.UserPermission, error) {
	return s.roleRepo.PermissionByID(ctx, id)
}

func (s *Service) UpdatePermission(ctx context.Context, id int, newName string) (*models.UserPermission, error) {
	return s.roleRepo.UpdatePermission(ctx, id, newName)
}

func (s *Service) DeletePermission(ctx context.Context, id int) error {
	if err := s.roleRepo.DeletePermission(ctx, id); err != nil {
		return err
	}
	s.log.Info("permission deleted", "permission_id", id)
	return nil
}

func (s *Service) AttachPermission(ctx context.Context, roleID, permissionID int) error {
	if _, err := s.roleRepo.RoleByID(ctx, roleID); err != nil {
		return err
	}
	if _, err := s.roleRepo.PermissionByID(ctx, permissionID); err != nil {
		return err
	}
	return s.roleRepo.AttachPermission(ctx, roleID, permissionID)
}

func (s *Service) DetachPermission(ctx context.Context, roleID, permissionID int) error {
	return s.roleRepo.DetachPermission(ctx, roleID, permissionID)
}

func (s *Service) PermissionsByRole(ctx context.Context, roleID int) ([]models.UserPermission, error) {
	if _, err := s.roleRepo.RoleByID(ctx, roleID); err != nil {
		return nil, err
	}
	return s.roleRepo.PermissionsByRole(ctx, roleID)
}

func (s *Service) CreateAlgorithm(ctx context.Context, name string) (*models.HashingAlgorithm, error) {
	return s.algorithmRepo.CreateAlgorithm(ctx, name)
}

func (s *Service) Algorithms(ctx context.Context) ([]models.HashingAlgorithm, error) {
	return s.algorithmRepo.Algorithms(ctx)
}

func (s *Service) Algorithm(ctx context.Context, id int) (*models.HashingAlgorithm, error) {
	return s.algorithmRepo.AlgorithmByID(ctx, id)
}

func (s *Service) UpdateAlgorithm(ctx context.Context, id int, newName string) (*models.HashingAlgorithm, error) {
	return s.algorithmRepo.UpdateAlgorithm(ctx, id, newName)
}

func (s *Service) DeleteAlgorithm(ctx context.Context, id int) error {
	return s.algorithmRepo.DeleteAlgorithm(ctx, id)
}
