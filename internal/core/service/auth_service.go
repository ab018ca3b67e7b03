package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

const confirmationTTL = 24 * time.Hour

// TokenStore abstracts the short-lived token state kept in Redis: the logout
// denylist and pending confirmation tokens.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	PutConfirmation(ctx context.Context, token, userID string, ttl time.Duration) error
	// RedeemConfirmation returns the user id bound to the token and deletes
	// it, so each token is usable once. Unknown tokens yield ErrInvalidToken.
	RedeemConfirmation(ctx context.Context, token string) (string, error)
}

// AuthService implements registration, login, session lookup and profile
// management.
type AuthService struct {
	repo                ports.AuthRepository
	tokens              TokenStore
	jwtSecret           string
	tokenTTL            time.Duration
	requireConfirmation bool
	logger              zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, tokens TokenStore, jwtSecret string, tokenTTL time.Duration, requireConfirmation bool, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:                repo,
		tokens:              tokens,
		jwtSecret:           jwtSecret,
		tokenTTL:            tokenTTL,
		requireConfirmation: requireConfirmation,
		logger:              logger,
	}
}

// Register creates a new identity. When confirmation is required the account
// is stored unconfirmed and the result carries ConfirmationPending; otherwise
// a session token is issued immediately.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.RegisterResult, error) {
	if name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Confirmed:    !s.requireConfirmation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.requireConfirmation {
		token := randomToken()
		if err := s.tokens.PutConfirmation(ctx, token, created.ID, confirmationTTL); err != nil {
			return nil, fmt.Errorf("store confirmation token: %w", err)
		}
		// No mailer is wired; the token is logged for out-of-band delivery.
		s.logger.Info().Str("user_id", created.ID).Str("confirmation_token", token).Msg("confirmation pending")
		return &ports.RegisterResult{User: created, ConfirmationPending: true}, nil
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}
	return &ports.RegisterResult{Token: token, User: created}, nil
}

// Confirm redeems a confirmation token and activates the account.
func (s *AuthService) Confirm(ctx context.Context, token string) error {
	userID, err := s.tokens.RedeemConfirmation(ctx, token)
	if err != nil {
		return err
	}
	return s.repo.MarkConfirmed(ctx, userID)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return "", nil, domain.ErrNotConfirmed
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout denylists the token id until its natural expiry. Revocation is best
// effort: the caller's session ends regardless of the store's outcome.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.Revoke(ctx, tokenID, ttl); err != nil {
		s.logger.Warn().Err(err).Str("token_id", tokenID).Msg("token revocation failed, logging out anyway")
	}
	return nil
}

// CurrentSession resolves the identity behind a validated token.
func (s *AuthService) CurrentSession(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial identity update and returns the stored
// representation.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if update.Email != nil {
		if _, err := mail.ParseAddress(*update.Email); err != nil {
			return nil, fmt.Errorf("%w: malformed email", domain.ErrValidation)
		}
	}
	updated, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"jti":   randomToken(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// randomToken returns a 32-hex-char opaque token.
func randomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from current nanoseconds
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
