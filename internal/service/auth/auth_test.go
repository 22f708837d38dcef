package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	createUserFn  func(ctx context.Context, user models.UserAuth) (*models.UserAuth, error)
	userByEmailFn func(ctx context.Context, email string) (*models.UserAuth, error)
	userByIDFn    func(ctx context.Context, id uuid.UUID) (*models.UserAuth, error)
}

func (s *stubUserRepo) CreateUser(ctx context.Context, user models.UserAuth) (*models.UserAuth, error) {
	return s.createUserFn(ctx, user)
}

func (s *stubUserRepo) UserByEmail(ctx context.Context, email string) (*models.UserAuth, error) {
	return s.userByEmailFn(ctx, email)
}

func (s *stubUserRepo) UserByID(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
	return s.userByIDFn(ctx, id)
}

// stubTokenRepo mimics the storage semantics in memory: one record chain per
// user, Matches on the raw token string.
type stubTokenRepo struct {
	records map[uuid.UUID][]*models.RefreshToken
	raws    map[uuid.UUID]string
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{
		records: make(map[uuid.UUID][]*models.RefreshToken),
		raws:    make(map[uuid.UUID]string),
	}
}

func (s *stubTokenRepo) Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error) {
	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt.Time,
	}
	s.records[userID] = append(s.records[userID], record)
	s.raws[record.ID] = token.Raw
	return record, nil
}

func (s *stubTokenRepo) LatestByUser(ctx context.Context, userID uuid.UUID) (*models.RefreshToken, error) {
	chain := s.records[userID]
	if len(chain) == 0 {
		return nil, app_errors.ErrNotFound
	}
	return chain[len(chain)-1], nil
}

func (s *stubTokenRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	for _, chain := range s.records {
		for _, record := range chain {
			if record.ID == id {
				record.IsUsed = true
				return nil
			}
		}
	}
	return app_errors.ErrNotFound
}

func (s *stubTokenRepo) MarkUsedByUser(ctx context.Context, userID uuid.UUID) error {
	for _, record := range s.records[userID] {
		record.IsUsed = true
	}
	return nil
}

func (s *stubTokenRepo) Matches(record *models.RefreshToken, token *jwt.Token) bool {
	return record != nil && s.raws[record.ID] == token.Raw
}

type stubRoleRepo struct{}

func (stubRoleRepo) RoleByName(ctx context.Context, name string) (*models.UserRole, error) {
	switch name {
	case models.AdminRole:
		return &models.UserRole{ID: 1, RoleName: name}, nil
	case models.AuthorRole:
		return &models.UserRole{ID: 2, RoleName: name}, nil
	case models.ClientRole:
		return &models.UserRole{ID: 3, RoleName: name}, nil
	}
	return nil, app_errors.ErrNotFound
}

type stubAlgorithmRepo struct{}

func (stubAlgorithmRepo) AlgorithmByName(ctx context.Context, name string) (*models.HashingAlgorithm, error) {
	if name != "bcrypt" {
		return nil, app_errors.ErrNotFound
	}
	return &models.HashingAlgorithm{ID: 1, AlgorithmName: name}, nil
}

func newTestService(users *stubUserRepo, tokens *stubTokenRepo) *AuthService {
	return NewAuthService(
		logger.New("prod"),
		newTestManager(time.Minute, time.Hour),
		users,
		tokens,
		stubRoleRepo{},
		stubAlgorithmRepo{},
		"bcrypt",
	)
}

func TestRegisterPasswordLength(t *testing.T) {
	service := newTestService(&stubUserRepo{}, newStubTokenRepo())

	for _, password := range []string{"short", "this-password-is-way-too-long"} {
		_, err := service.Register(context.Background(), "a@b.c", password, models.ClientRole)
		if !errors.Is(err, app_errors.ErrPasswordLength) {
			t.Fatalf("password %q: expected ErrPasswordLength, got %v", password, err)
		}
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	var captured models.UserAuth
	users := &stubUserRepo{
		createUserFn: func(ctx context.Context, user models.UserAuth) (*models.UserAuth, error) {
			captured = user
			copy := user
			copy.ID = uuid.New()
			return &copy, nil
		},
	}
	service := newTestService(users, newStubTokenRepo())

	_, err := service.Register(context.Background(), "a@b.c", "password123", models.ClientRole)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if captured.PasswordHash == "password123" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(captured.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if captured.HashAlgorithmID != 1 {
		t.Fatalf("expected algorithm id 1, got %d", captured.HashAlgorithmID)
	}
	if captured.RoleID != 3 {
		t.Fatalf("expected client role id 3, got %d", captured.RoleID)
	}
}

func testUser(t *testing.T, password string) *models.UserAuth {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return &models.UserAuth{
		ID:           uuid.New(),
		Email:        "a@b.c",
		PasswordHash: string(hash),
		RoleName:     models.ClientRole,
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser(t, "password123")
	users := &stubUserRepo{
		userByEmailFn: func(ctx context.Context, email string) (*models.UserAuth, error) {
			return user, nil
		},
	}
	service := newTestService(users, newStubTokenRepo())

	_, _, err := service.Login(context.Background(), "a@b.c", "wrong-password")
	if !errors.Is(err, app_errors.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &stubUserRepo{
		userByEmailFn: func(ctx context.Context, email string) (*models.UserAuth, error) {
			return nil, app_errors.ErrNotFound
		},
	}
	service := newTestService(users, newStubTokenRepo())

	_, _, err := service.Login(context.Background(), "missing@b.c", "password123")
	if !errors.Is(err, app_errors.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestLoginInvalidatesOldTokens(t *testing.T) {
	user := testUser(t, "password123")
	users := &stubUserRepo{
		userByEmailFn: func(ctx context.Context, email string) (*models.UserAuth, error) {
			return user, nil
		},
	}
	tokens := newStubTokenRepo()
	service := newTestService(users, tokens)

	if _, _, err := service.Login(context.Background(), "a@b.c", "password123"); err != nil {
		t.Fatalf("first login error = %v", err)
	}
	first, err := tokens.LatestByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("LatestByUser() error = %v", err)
	}

	if _, _, err := service.Login(context.Background(), "a@b.c", "password123"); err != nil {
		t.Fatalf("second login error = %v", err)
	}
	if !first.IsUsed {
		t.Fatal("expected first token to be invalidated by second login")
	}
}

func TestRefreshRotatesChain(t *testing.T) {
	user := testUser(t, "password123")
	users := &stubUserRepo{
		userByEmailFn: func(ctx context.Context, email string) (*models.UserAuth, error) {
			return user, nil
		},
		userByIDFn: func(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
			return user, nil
		},
	}
	tokens := newStubTokenRepo()
	service := newTestService(users, tokens)

	_, refresh1, err := service.Login(context.Background(), "a@b.c", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	_, refresh2, err := service.Refresh(context.Background(), refresh1)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if refresh2 == refresh1 {
		t.Fatal("expected a new refresh token")
	}

	// The burned token must not work a second time.
	if _, _, err := service.Refresh(context.Background(), refresh1); !errors.Is(err, app_errors.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication replaying old token, got %v", err)
	}

	// The fresh token is still good.
	if _, _, err := service.Refresh(context.Background(), refresh2); err != nil {
		t.Fatalf("Refresh() with new token error = %v", err)
	}
}

func TestRefreshRejectsExpiredRecord(t *testing.T) {
	user := testUser(t, "password123")
	users := &stubUserRepo{
		userByEmailFn: func(ctx context.Context, email string) (*models.UserAuth, error) {
			return user, nil
		},
		userByIDFn: func(ctx context.Context, id uuid.UUID) (*models.UserAuth, error) {
			return user, nil
		},
	}
	tokens := newStubTokenRepo()
	service := newTestService(users, tokens)

	_, refresh, err := service.Login(context.Background(), "a@b.c", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// The stored expiry is authoritative even when the token signature
	// still verifies.
	record, err := tokens.LatestByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("LatestByUser() error = %v", err)
	}
	record.ExpiresAt = time.Now().Add(-time.Minute)

	if _, _, err := service.Refresh(context.Background(), refresh); !errors.Is(err, app_errors.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication for expired record, got %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	service := newTestService(&stubUserRepo{}, newStubTokenRepo())

	_, _, err := service.Refresh(context.Background(), "not-a-token")
	if !errors.Is(err, app_errors.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}
