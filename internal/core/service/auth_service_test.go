package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.AvatarURL != nil {
			u.AvatarURL = *update.AvatarURL
		}
		if update.Bio != nil {
			u.Bio = *update.Bio
		}
		u.UpdatedAt = time.Now().UTC()
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) MarkConfirmed(_ context.Context, id string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Confirmed = true
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubTokenStore struct {
	revoked       map[string]bool
	confirmations map[string]string
	revokeErr     error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{
		revoked:       make(map[string]bool),
		confirmations: make(map[string]string),
	}
}

func (s *stubTokenStore) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked[tokenID] = true
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

func (s *stubTokenStore) PutConfirmation(_ context.Context, token, userID string, _ time.Duration) error {
	s.confirmations[token] = userID
	return nil
}

func (s *stubTokenStore) RedeemConfirmation(_ context.Context, token string) (string, error) {
	userID, ok := s.confirmations[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(s.confirmations, token)
	return userID, nil
}

func newTestAuthService(repo ports.AuthRepository, tokens TokenStore, requireConfirmation bool) *AuthService {
	return NewAuthService(repo, tokens, "secret", time.Hour, requireConfirmation, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.ConfirmationPending {
		t.Fatalf("expected immediate session")
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}
	if result.User.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("pass1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !result.User.Confirmed {
		t.Fatalf("expected user confirmed when confirmation is disabled")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	if _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bob", "not-an-email", "pass"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "Bob", "b@example.com", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	_, _ = svc.Register(context.Background(), "Bob", "bob@example.com", "pass1234")
	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "other123"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_ConfirmationPending(t *testing.T) {
	repo := newStubAuthRepo()
	tokens := newStubTokenStore()
	svc := newTestAuthService(repo, tokens, true)

	result, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !result.ConfirmationPending {
		t.Fatalf("expected confirmation pending")
	}
	if result.Token != "" {
		t.Fatalf("expected no session token while pending")
	}
	if len(tokens.confirmations) != 1 {
		t.Fatalf("expected one stored confirmation token")
	}

	// Login is rejected until the token is redeemed.
	if _, _, err := svc.Login(context.Background(), "carol@example.com", "s3cret99"); err != domain.ErrNotConfirmed {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}

	var token string
	for tok := range tokens.confirmations {
		token = tok
	}
	if err := svc.Confirm(context.Background(), token); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "carol@example.com", "s3cret99"); err != nil {
		t.Fatalf("login after confirm failed: %v", err)
	}
}

func TestAuthService_Confirm_UnknownToken(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubTokenStore(), true)

	if err := svc.Confirm(context.Background(), "nope"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	if _, err := svc.Register(context.Background(), "Carol", "carol@example.com", "s3cret99"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if claims["jti"] == "" {
		t.Fatalf("expected token id claim")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	_, _ = svc.Register(context.Background(), "Dave", "dave@example.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubTokenStore(), false)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	tokens := newStubTokenStore()
	svc := newTestAuthService(newStubAuthRepo(), tokens, false)

	if err := svc.Logout(context.Background(), "tok-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !tokens.revoked["tok-1"] {
		t.Fatalf("expected token revoked")
	}
}

func TestAuthService_Logout_SucceedsWhenStoreFails(t *testing.T) {
	tokens := newStubTokenStore()
	tokens.revokeErr = context.DeadlineExceeded
	svc := newTestAuthService(newStubAuthRepo(), tokens, false)

	if err := svc.Logout(context.Background(), "tok-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("logout must swallow store failures, got %v", err)
	}
}

func TestAuthService_CurrentSession(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	result, _ := svc.Register(context.Background(), "Eve", "eve@example.com", "pass1234")

	user, err := svc.CurrentSession(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if user.Email != "eve@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentSession(context.Background(), ""); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubTokenStore(), false)

	result, _ := svc.Register(context.Background(), "Frank", "frank@example.com", "pass1234")

	bio := "keeps the workshop stocked"
	updated, err := svc.UpdateProfile(context.Background(), result.User.ID, ports.ProfileUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("bio not updated: %q", updated.Bio)
	}
	if updated.Name != "Frank" {
		t.Fatalf("untouched field changed: %q", updated.Name)
	}

	if _, err := svc.UpdateProfile(context.Background(), "", ports.ProfileUpdate{Bio: &bio}); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	bad := "not-an-email"
	if _, err := svc.UpdateProfile(context.Background(), result.User.ID, ports.ProfileUpdate{Email: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
