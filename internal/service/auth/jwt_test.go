package auth

import (
	"errors"
	"testing"
	"time"

	"CourseForge/internal/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", "test", accessTTL, refreshTTL)
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	userID := uuid.New()

	pair, err := m.GenerateTokenPair(userID, "author")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	claims, err := m.AccessClaims(pair.AccessToken.Raw)
	if err != nil {
		t.Fatalf("AccessClaims() error = %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "author" {
		t.Fatalf("expected role author, got %q", claims.Role)
	}

	if _, err := m.ParseRefresh(pair.RefreshToken.Raw); err != nil {
		t.Fatalf("ParseRefresh() error = %v", err)
	}
}

func TestAccessClaimsRejectsRefreshToken(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	pair, err := m.GenerateTokenPair(uuid.New(), "client")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if _, err := m.AccessClaims(pair.RefreshToken.Raw); err == nil {
		t.Fatal("expected error parsing refresh token as access token")
	}
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	pair, err := m.GenerateTokenPair(uuid.New(), "client")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if _, err := m.ParseRefresh(pair.AccessToken.Raw); err == nil {
		t.Fatal("expected error parsing access token as refresh token")
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	other := NewJWTManager("other-access", "other-refresh", "test", time.Minute, time.Hour)

	pair, err := other.GenerateTokenPair(uuid.New(), "client")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if _, err := m.AccessClaims(pair.AccessToken.Raw); !errors.Is(err, app_errors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := m.ParseRefresh(pair.RefreshToken.Raw); !errors.Is(err, app_errors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRefreshIgnoringExpiry(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	userID := uuid.New()

	now := time.Now()
	expired := jwt.NewWithClaims(signingMethod, RefreshTokenClaims{
		TokenType: RefreshTokenType,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "test",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("refresh-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := m.ParseRefresh(signed); !errors.Is(err, app_errors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, err := m.ParseRefreshIgnoringExpiry(signed); err != nil {
		t.Fatalf("ParseRefreshIgnoringExpiry() error = %v", err)
	}
}

func TestParseRefreshIgnoringExpiryStillChecksSignature(t *testing.T) {
	m := newTestManager(time.Minute, time.Hour)
	other := NewJWTManager("other-access", "other-refresh", "test", time.Minute, time.Hour)

	pair, err := other.GenerateTokenPair(uuid.New(), "client")
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	if _, err := m.ParseRefreshIgnoringExpiry(pair.RefreshToken.Raw); !errors.Is(err, app_errors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
