package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*ports.RegisterResult, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	confirmFn  func(ctx context.Context, token string) error
	logoutFn   func(ctx context.Context, tokenID string, expiresAt time.Time) error
	sessionFn  func(ctx context.Context, userID string) (*domain.User, error)
	updateFn   func(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Confirm(ctx context.Context, token string) error {
	return s.confirmFn(ctx, token)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) CurrentSession(ctx context.Context, userID string) (*domain.User, error) {
	return s.sessionFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, userID, update)
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email, password string) (*ports.RegisterResult, error) {
			if name != "Alice" || email != "alice@example.com" || password != "supersecret" {
				t.Fatalf("unexpected args: %s %s", name, email)
			}
			return &ports.RegisterResult{
				Token: "jwt-token",
				User:  &domain.User{ID: "user-1", Name: name, Email: email},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Alice","email":"alice@example.com","password":"supersecret","confirm_password":"supersecret"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", body)

	if err := handler.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "jwt-token" || resp.User == nil || resp.User.ID != "user-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_PasswordMismatchNeverInvokesService(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*ports.RegisterResult, error) {
			t.Fatalf("service must not be invoked on validation failure")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Alice","email":"alice@example.com","password":"supersecret","confirm_password":"different1"}`
	c, _ := newJSONContext(e, http.MethodPost, "/auth/register", body)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	body := `{"name":"Alice","email":"alice@example.com","password":"short","confirm_password":"short"}`
	c, _ := newJSONContext(e, http.MethodPost, "/auth/register", body)

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*ports.RegisterResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Alice","email":"alice@example.com","password":"supersecret","confirm_password":"supersecret"}`
	c, _ := newJSONContext(e, http.MethodPost, "/auth/register", body)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Confirm(t *testing.T) {
	e := newTestEcho()
	var redeemed string
	stub := &stubAuthService{
		confirmFn: func(_ context.Context, token string) error {
			redeemed = token
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/confirm", `{"token":"abc123"}`)

	if err := handler.Confirm(c); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if rec.Code != http.StatusOK || redeemed != "abc123" {
		t.Fatalf("unexpected result: code=%d token=%q", rec.Code, redeemed)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "jwt-token", &domain.User{ID: "user-1", Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"email":"alice@example.com","password":"supersecret"}`
	c, rec := newJSONContext(e, http.MethodPost, "/auth/login", body)

	if err := handler.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "jwt-token" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"email":"alice@example.com","password":"wrongpass"}`
	c, _ := newJSONContext(e, http.MethodPost, "/auth/login", body)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	var revokedID string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, tokenID string, _ time.Time) error {
			revokedID = tokenID
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/logout", "")
	c.Set("user_id", "user-1")
	c.Set("token_id", "jti-1")
	c.Set("token_expires", time.Now().Add(time.Hour))

	if err := handler.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if rec.Code != http.StatusOK || revokedID != "jti-1" {
		t.Fatalf("unexpected result: code=%d revoked=%q", rec.Code, revokedID)
	}
}

func TestAuthHandler_Logout_RevocationFailureStillSucceeds(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		logoutFn: func(context.Context, string, time.Time) error {
			return errors.New("redis down")
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/logout", "")
	c.Set("user_id", "user-1")
	c.Set("token_id", "jti-1")
	c.Set("token_expires", time.Now().Add(time.Hour))

	if err := handler.Logout(c); err != nil {
		t.Fatalf("logout must not surface revocation errors, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(e, http.MethodGet, "/v1/profile", "")

	err := handler.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile_Partial(t *testing.T) {
	e := newTestEcho()
	var got ports.ProfileUpdate
	stub := &stubAuthService{
		updateFn: func(_ context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			got = update
			return &domain.User{ID: userID, Name: *update.Name}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newJSONContext(e, http.MethodPatch, "/v1/profile", `{"name":"Alice B"}`)
	c.Set("user_id", "user-1")

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Name == nil || *got.Name != "Alice B" {
		t.Fatalf("name not forwarded: %+v", got)
	}
	if got.Email != nil || got.AvatarURL != nil || got.Bio != nil {
		t.Fatalf("untouched fields must stay nil: %+v", got)
	}
}

func TestAuthHandler_UpdateProfile_BadAvatarURL(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(e, http.MethodPatch, "/v1/profile", `{"avatar_url":"not a url"}`)
	c.Set("user_id", "user-1")

	err := handler.UpdateProfile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
