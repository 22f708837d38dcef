package auth

import (
	"errors"
	"fmt"
	"time"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

var signingMethod = jwt.SigningMethodHS256

// JWTManager signs access and refresh tokens with independent secrets, so a
// leaked access secret cannot mint refresh tokens.
type JWTManager struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

func NewJWTManager(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
	}
}

type AccessTokenClaims struct {
	TokenType string    `json:"token_type"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	jwt.RegisteredClaims
}

type RefreshTokenClaims struct {
	TokenType string    `json:"token_type"`
	UserID    uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

func (j *JWTManager) AccessClaims(tokenStr string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.accessSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, app_errors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidToken, err)
	}
	if claims.TokenType != AccessTokenType {
		return nil, fmt.Errorf("%w: wrong token type %q", app_errors.ErrInvalidToken, claims.TokenType)
	}
	return claims, nil
}

func (j *JWTManager) parse(tokenStr, secret, tokenType string, parser *jwt.Parser) (*jwt.Token, error) {
	token, err := parser.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, app_errors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidToken, err)
	}
	if !j.tokenType(token, tokenType) {
		return nil, fmt.Errorf("%w: wrong token type", app_errors.ErrInvalidToken)
	}
	return token, nil
}

func (j *JWTManager) ParseAccess(tokenStr string) (*jwt.Token, error) {
	return j.parse(tokenStr, j.accessSecret, AccessTokenType, jwt.NewParser())
}

func (j *JWTManager) ParseRefresh(tokenStr string) (*jwt.Token, error) {
	return j.parse(tokenStr, j.refreshSecret, RefreshTokenType, jwt.NewParser())
}

// ParseRefreshIgnoringExpiry still verifies the signature; it only skips
// claim validation so rotation can inspect an expired token's record.
func (j *JWTManager) ParseRefreshIgnoringExpiry(tokenStr string) (*jwt.Token, error) {
	return j.parse(tokenStr, j.refreshSecret, RefreshTokenType, jwt.NewParser(jwt.WithoutClaimsValidation()))
}

func (j *JWTManager) tokenType(token *jwt.Token, t string) bool {
	switch claims := token.Claims.(type) {
	case jwt.MapClaims:
		tokenType, ok := claims["token_type"].(string)
		return ok && tokenType == t
	case *AccessTokenClaims:
		return claims.TokenType == t
	case *RefreshTokenClaims:
		return claims.TokenType == t
	}
	return false
}

func (j *JWTManager) GenerateTokenPair(userID uuid.UUID, role string) (*models.TokenPair, error) {
	now := time.Now()
	accessToken := jwt.NewWithClaims(signingMethod, AccessTokenClaims{
		TokenType: AccessTokenType,
		UserID:    userID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signedAccessToken, err := accessToken.SignedString([]byte(j.accessSecret))
	if err != nil {
		return nil, fmt.Errorf("access token signing failed: %v", err)
	}
	accessToken, err = j.ParseAccess(signedAccessToken)
	if err != nil {
		return nil, fmt.Errorf("access token parsing failed: %v", err)
	}

	// jti keeps tokens minted within the same second distinct.
	refreshToken := jwt.NewWithClaims(signingMethod, RefreshTokenClaims{
		TokenType: RefreshTokenType,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    j.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signedRefreshToken, err := refreshToken.SignedString([]byte(j.refreshSecret))
	if err != nil {
		return nil, fmt.Errorf("refresh token signing failed: %v", err)
	}
	refreshToken, err = j.ParseRefresh(signedRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token parsing failed: %v", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
