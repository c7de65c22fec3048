package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/internal/auth"
	"github.com/cognitia-web/Cognitia-Scratch/internal/users"
	pkgAuth "github.com/cognitia-web/Cognitia-Scratch/pkg/auth"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*users.UserDTO, error) {
	return nil, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, nil
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.LoginResponse, error) {
	return nil, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "cognitia-test",
			ExpirationMinutes: 15,
		},
		Video: config.VideoConfig{
			MasterKey:        "0123456789abcdef0123456789abcdef",
			StorageDir:       "/tmp/cognitia-router-test",
			CronSharedSecret: "cron-secret",
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(RouterParams{
		Config:      cfg,
		Logger:      logg,
		DBPinger:    stubPinger{},
		Sessions:    stubSessionChecker{},
		AuthService: stubAuthService{},
	})
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    "router-test-session",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Cognitia-Env"); got != "test" {
		t.Fatalf("expected env header, got %q", got)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := newTestRouter(t, testConfig())

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/tasks"},
		{http.MethodGet, "/api/v1/habits"},
		{http.MethodGet, "/api/v1/rewards/balance"},
		{http.MethodGet, "/api/v1/dashboard"},
		{http.MethodGet, "/api/v1/verifications/prompt"},
		{http.MethodGet, "/api/v1/exams"},
		{http.MethodGet, "/api/v1/flashcards"},
		{http.MethodGet, "/api/v1/data/export"},
		{http.MethodDelete, "/api/v1/data"},
		{http.MethodPost, "/api/v1/auth/logout"},
	}

	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestGuardianRouteRequiresGuardianRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guardian/report", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleStudent))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student token, got %d", rec.Code)
	}
}

func TestCleanupRouteRequiresCronSecret(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/internal/videos/cleanup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/internal/videos/cleanup", nil)
	req.Header.Set("Authorization", "Bearer wrong-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad secret, got %d", rec.Code)
	}
}

func TestCleanupRouteHiddenWhenSecretUnset(t *testing.T) {
	cfg := testConfig()
	cfg.Video.CronSharedSecret = ""
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/internal/videos/cleanup", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when cron secret unset, got %d", rec.Code)
	}
}
