package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type RefreshToken struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	HashedToken string
	IsUsed      bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

type TokenPair struct {
	AccessToken  *jwt.Token
	RefreshToken *jwt.Token
}
