package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 20
)

type UserRepo interface {
	CreateUser(ctx context.Context, user models.UserAuth) (*models.UserAuth, error)
	UserByEmail(ctx context.Context, email string) (*models.UserAuth, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	LatestByUser(ctx context.Context, userID uuid.UUID) (*models.RefreshToken, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	MarkUsedByUser(ctx context.Context, userID uuid.UUID) error
	Matches(record *models.RefreshToken, token *jwt.Token) bool
}

type roleRepo interface {
	RoleByName(ctx context.Context, name string) (*models.UserRole, error)
}

type algorithmRepo interface {
	AlgorithmByName(ctx context.Context, name string) (*models.HashingAlgorithm, error)
}

type AuthService struct {
	log              logger.Log
	jwtManager       *JWTManager
	userRepo         UserRepo
	tokenRepo        tokenRepo
	roleRepo         roleRepo
	algorithmRepo    algorithmRepo
	defaultAlgorithm string
}

func NewAuthService(l logger.Log, manager *JWTManager, uRepo UserRepo, tRepo tokenRepo, rRepo roleRepo, aRepo algorithmRepo, defaultAlgorithm string) *AuthService {
	return &AuthService{
		log:              l,
		jwtManager:       manager,
		userRepo:         uRepo,
		tokenRepo:        tRepo,
		roleRepo:         rRepo,
		algorithmRepo:    aRepo,
		defaultAlgorithm: defaultAlgorithm,
	}
}

func (u *AuthService) Register(ctx context.Context, email, password, roleName string) (*models.UserAuth, error) {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return nil, app_errors.ErrPasswordLength
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	algorithm, err := u.algorithmRepo.AlgorithmByName(ctx, u.defaultAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("resolve hashing algorithm: %w", err)
	}
	role, err := u.roleRepo.RoleByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}

	user := models.UserAuth{
		Email:           email,
		PasswordHash:    hash,
		HashAlgorithmID: algorithm.ID,
		IsActive:        true,
		RoleID:          role.ID,
	}
	created, err := u.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	u.log.Info("user registered", "user_id", created.ID)
	return created, nil
}

func (u *AuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	user, err := u.userRepo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, app_errors.ErrNotFound) {
			return "", "", app_errors.ErrAuthentication
		}
		return "", "", err
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		return "", "", app_errors.ErrAuthentication
	}

	tokenPair, err := u.jwtManager.GenerateTokenPair(user.ID, user.RoleName)
	if err != nil {
		return "", "", err
	}

	if err = u.tokenRepo.MarkUsedByUser(ctx, user.ID); err != nil {
		return "", "", err
	}
	if _, err = u.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return "", "", err
	}

	return tokenPair.AccessToken.Raw, tokenPair.RefreshToken.Raw, nil
}

// Refresh rotates the token chain: only the latest unused, unexpired token
// for the user is accepted, and it is burned on use.
func (u *AuthService) Refresh(ctx context.Context, token string) (accessToken, refreshToken string, err error) {
	curToken, err := u.jwtManager.ParseRefreshIgnoringExpiry(token)
	if err != nil {
		return "", "", app_errors.ErrAuthentication
	}
	userIDStr, err := curToken.Claims.GetSubject()
	if err != nil {
		return "", "", app_errors.ErrAuthentication
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", app_errors.ErrAuthentication
	}

	record, err := u.tokenRepo.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, app_errors.ErrNotFound) {
			return "", "", app_errors.ErrAuthentication
		}
		return "", "", err
	}
	if !u.tokenRepo.Matches(record, curToken) || record.IsUsed || record.ExpiresAt.Before(time.Now()) {
		return "", "", app_errors.ErrAuthentication
	}

	user, err := u.userRepo.UserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	tokenPair, err := u.jwtManager.GenerateTokenPair(user.ID, user.RoleName)
	if err != nil {
		return "", "", err
	}
	if err = u.tokenRepo.MarkUsed(ctx, record.ID); err != nil {
		return "", "", err
	}
	if _, err = u.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return "", "", err
	}

	return tokenPair.AccessToken.Raw, tokenPair.RefreshToken.Raw, nil
}

func (u *AuthService) AccessClaims(ctx context.Context, token string) (userID uuid.UUID, role string, err error) {
	claims, err := u.jwtManager.AccessClaims(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, claims.Role, nil
}

func (u *AuthService) User(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
	return u.userRepo.UserByID(ctx, id)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
