package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AdminRole  = "admin"
	AuthorRole = "author"
	ClientRole = "client"
)

type UserAuth struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	HashAlgorithmID int       `json:"hash_algorithm_id"`
	IsActive        bool      `json:"is_active"`
	IsVerified      bool      `json:"is_verified"`
	RoleID          int       `json:"role_id"`
	RoleName        string    `json:"role_name"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UserRole struct {
	ID       int    `json:"id"`
	RoleName string `json:"role_name"`
}

type UserPermission struct {
	ID             int    `json:"id"`
	PermissionName string `json:"permission_name"`
}

type HashingAlgorithm struct {
	ID            int    `json:"id"`
	AlgorithmName string `json:"algorithm_name"`
}
