package auth

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/internal/users"
	pkgauth "github.com/cognitia-web/Cognitia-Scratch/pkg/auth"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/auth/session"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/security"
)

type fakeUserRepo struct {
	byEmail   map[string]*models.User
	byID      map[uuid.UUID]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user := dto.ToModel()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeSessions struct {
	tokens    map[string]string
	rotateErr error
	revoked   []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[string]string)}
}

func (f *fakeSessions) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.tokens[accessID] = token
	return token, nil
}

func (f *fakeSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateErr != nil {
		return "", "", f.rotateErr
	}
	stored, ok := f.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.tokens, oldAccessID)
	newID := "rotated-" + oldAccessID
	f.tokens[newID] = "refresh-" + newID
	return newID, f.tokens[newID], nil
}

func (f *fakeSessions) Revoke(ctx context.Context, accessID string) error {
	f.revoked = append(f.revoked, accessID)
	delete(f.tokens, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "unit-test-secret-with-enough-length",
		Issuer:                 "cognitia-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, repo *fakeUserRepo, sessions *fakeSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:   logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard}),
		Users:    repo,
		Sessions: sessions,
		JWT:      testJWTConfig(),
		Password: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Seed User",
		Role:         enums.UserRoleStudent,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	repo.byEmail[user.Email] = user
	repo.byID[user.ID] = user
	return user
}

func TestRegisterNormalizesEmailAndDefaultsRole(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(t, repo, newFakeSessions())

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "  Student@Example.COM ",
		Password:    "correct horse battery",
		DisplayName: "Student",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if dto.Email != "student@example.com" {
		t.Fatalf("email not normalized: %q", dto.Email)
	}
	if dto.Role != enums.UserRoleStudent {
		t.Fatalf("expected student role, got %s", dto.Role)
	}

	stored, err := repo.FindByEmail(context.Background(), "student@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if stored.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
}

func TestLoginReturnsTokensAndUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	sessions := newFakeSessions()
	svc := newTestService(t, repo, sessions)
	user := seedUser(t, repo, "login@example.com", "sufficiently-long-pass")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Login@Example.com",
		Password: "sufficiently-long-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatal("response user mismatch")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatal("claims user mismatch")
	}
	if _, ok := sessions.tokens[claims.ID]; !ok {
		t.Fatal("no session stored under token jti")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(t, repo, newFakeSessions())
	seedUser(t, repo, "victim@example.com", "the-real-password")

	cases := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Email: "victim@example.com", Password: "guess"}},
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "whatever"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	sessions := newFakeSessions()
	svc := newTestService(t, repo, sessions)
	seedUser(t, repo, "refresh@example.com", "sufficiently-long-pass")

	first, err := svc.Login(context.Background(), LoginRequest{
		Email:    "refresh@example.com",
		Password: "sufficiently-long-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.AccessToken == first.AccessToken {
		t.Fatal("access token was not re-minted")
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}

	// the old pair must be dead after rotation
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  first.AccessToken,
		RefreshToken: first.RefreshToken,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized on replayed refresh, got %v", err)
	}
}

func TestRefreshRejectsGarbageAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeUserRepo(), newFakeSessions())
	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "anything",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestRefreshSurfacesStoreFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	sessions := newFakeSessions()
	svc := newTestService(t, repo, sessions)
	seedUser(t, repo, "outage@example.com", "sufficiently-long-pass")

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "outage@example.com",
		Password: "sufficiently-long-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	sessions.rotateErr = errors.New("redis down")
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	sessions := newFakeSessions()
	svc := newTestService(t, newFakeUserRepo(), sessions)

	if err := svc.Logout(context.Background(), "some-access-id"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "some-access-id" {
		t.Fatalf("revoke not recorded: %v", sessions.revoked)
	}
}
