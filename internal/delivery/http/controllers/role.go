package controllers

import (
	"context"
	"net/http"
	"strconv"

	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RoleService interface {
	CreateRole(ctx context.Context, name string) (*models.UserRole, error)
	Roles(ctx context.Context) ([]models.UserRole, error)
	Role(ctx context.Context, id int) (*models.UserRole, error)
	UpdateRole(ctx context.Context, id int, newName string) (*models.UserRole, error)
	DeleteRole(ctx context.Context, id int) error

	CreatePermission(ctx context.Context, name string) (*models.UserPermission, error)
	Permissions(ctx context.Context) ([]models.UserPermission, error)
	Permission(ctx context.Context, id int) (*models.UserPermission, error)
	UpdatePermission(ctx context.Context, id int, newName string) (*models.UserPermission, error)
	DeletePermission(ctx context.Context, id int) error

	AttachPermission(ctx context.Context, roleID, permissionID int) error
	DetachPermission(ctx context.Context, roleID, permissionID int) error
	PermissionsByRole(ctx context.Context, roleID int) ([]models.UserPermission, error)

	CreateAlgorithm(ctx context.Context, name string) (*models.HashingAlgorithm, error)
	Algorithms(ctx context.Context) ([]models.HashingAlgorithm, error)
	Algorithm(ctx context.Context, id int) (*models.HashingAlgorithm, error)
	UpdateAlgorithm(ctx context.Context, id int, newName string) (*models.HashingAlgorithm, error)
	DeleteAlgorithm(ctx context.Context, id int) error
}

type RoleHandler struct {
	RoleService RoleService
	log         logger.Log
}

func NewRoleHandler(l logger.Log, role RoleService) *RoleHandler {
	return &RoleHandler{RoleService: role, log: l}
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	var input nameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := h.RoleService.CreateRole(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.RoleService.Roles(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) RoleByID(c *gin.Context) {
	id, ok := intParam(c, "role_id")
	if !ok {
		return
	}
	role, err := h.RoleService.Role(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := intParam(c, "role_id")
	if !ok {
		return
	}
	var input nameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := h.RoleService.UpdateRole(c.Request.Context(), id, input.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := intParam(c, "role_id")
	if !ok {
		return
	}
	if err := h.RoleService.DeleteRole(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) CreatePermission(c *gin.Context) {
	var input nameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	permission, err := h.RoleService.CreatePermission(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, permission)
}

func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.RoleService.Permissions(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

func (h *RoleHandler) PermissionByID(c *gin.Context) {
	id, ok := intParam(c, "permission_id")
	if !ok {
		return
	}
	permission, err := h.RoleService.Permission(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, permission)
}

func (h *RoleHandler) UpdatePermission(c *gin.Context) {
	id, ok := intParam(c, "permission_id")
	if !ok {
		return
	}
	var input nameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	permission, err := h.RoleService.UpdatePermission(c.Request.Context(), id, input.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, permission)
}

func (h *RoleHandler) DeletePermission(c *gin.Context) {
	id, ok := intParam(c, "permission_id")
	if !ok {
		return
	}
	if err := h.RoleService.DeletePermission(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) AttachPermission(c *gin.Context) {
	roleID, ok := intParam(c, "role_id")
	if !ok {
		return
	}
	permissionID, ok := intParam(c, "permission_id")
	if !ok {
		return
	}
	if err := h.RoleService.AttachPermission(c.Request.Context(), roleID, permissionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "permission attached"})
}

func (h *RoleHandler) DetachPermission(c *gin.Context) {
	roleID, ok := intParam(c, "role_id")
	if !ok {
		return
	}
	permissionID, ok := intParam(c, "permission_id")
	if !ok {
		return
	}
	if err := h.RoleService.DetachPermission(c.Request.Context(), roleID, permissionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) PermissionsByRole(c *gin.Context) {
	roleID, ok := intParam(c, "role_id")
	if !ok {
		return
	}
	permissions, err := h.RoleService.PermissionsByRole(c.Request.Context(), roleID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

func (h *RoleHandler) CreateAlgorithm(c *gin.Context) {
	var input nameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	algorithm, err := h.RoleService.CreateAlgorithm(c.Request.Context(), input.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, algorithm)
}

func (h *RoleHandler) ListAlgorithms(c *gin.Context) {
	algorithms, err := h.RoleService.Algorithms(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, algorithms)
}

func (h *RoleHandler) AlgorithmByID(c *gin.Context) {
	id, ok := intParam(c, "algorithm_id")
	if !ok {
		return
	}
	algorithm, err := h.RoleService.Algorithm(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, algorithm)
}

func (h *RoleHandler) UpdateAlgorithm(c *gin.Context) {
	id, ok := intParam(c, "algorithm_id")
	if !ok {
		return
	}
	var input nameRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	algorithm, err := h.RoleService.UpdateAlgorithm(c.Request.Context(), id, input.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, algorithm)
}

func (h *RoleHandler) DeleteAlgorithm(c *gin.Context) {
	id, ok := intParam(c, "algorithm_id")
	if !ok {
		return
	}
	if err := h.RoleService.DeleteAlgorithm(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
