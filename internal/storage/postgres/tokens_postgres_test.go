package postgres

import (
	"testing"

	"CourseForge/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestMatches(t *testing.T) {
	repo := &TokensPostgres{}
	raw := "header.payload.signature"

	record := &models.RefreshToken{HashedToken: hashToken(raw)}
	if !repo.Matches(record, &jwt.Token{Raw: raw}) {
		t.Fatal("expected token to match its own record")
	}
	if repo.Matches(record, &jwt.Token{Raw: raw + "x"}) {
		t.Fatal("expected mismatch for a different token")
	}
	if repo.Matches(nil, &jwt.Token{Raw: raw}) {
		t.Fatal("expected mismatch for nil record")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	if hashToken("abc") != hashToken("abc") {
		t.Fatal("expected stable hashes")
	}
	if hashToken("abc") == hashToken("abd") {
		t.Fatal("expected distinct hashes for distinct tokens")
	}
	if hashToken("abc") == "abc" {
		t.Fatal("raw token must not equal its hash")
	}
}
