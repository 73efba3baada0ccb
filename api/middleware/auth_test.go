package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/swiftbasket/swiftbasket-backend/pkg/auth"
	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
)

type allowAllChecker struct{}

func (allowAllChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type denyAllChecker struct{}

func (denyAllChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return false, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "secret",
		Issuer:                 "issuer",
		ExpirationMinutes:      60,
		RefreshTokenTTLMinutes: 120,
	}
}

func testMiddlewareLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func mintToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Phone:  "9876543210",
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	jti := uuid.NewString()

	var gotUser, gotPhone, gotJTI string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotPhone = PhoneFromContext(r.Context())
		gotJTI = JTIFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(cfg, allowAllChecker{}, testMiddlewareLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, jti))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUser == "" {
		t.Fatal("expected user id in context")
	}
	if gotPhone != "9876543210" {
		t.Fatalf("expected phone in context got %q", gotPhone)
	}
	if gotJTI != jti {
		t.Fatalf("expected jti %q got %q", jti, gotJTI)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testJWTConfig(), allowAllChecker{}, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := testJWTConfig()
	handler := Auth(cfg, denyAllChecker{}, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session got %d", resp.Code)
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	other := cfg
	other.Secret = "different"

	handler := Auth(cfg, allowAllChecker{}, testMiddlewareLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, other, uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature got %d", resp.Code)
	}
}
