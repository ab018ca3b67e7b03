package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockpile/inventory-system/internal/api/metrics"
	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type confirmRequest struct {
	Token string `json:"token" validate:"required"`
}

type profileUpdateRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"      validate:"omitempty,email"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio       *string `json:"bio,omitempty"`
}

type authResponse struct {
	Token               string       `json:"token,omitempty"`
	User                *domain.User `json:"user,omitempty"`
	ConfirmationPending bool         `json:"confirmation_pending,omitempty"`
}

// Register creates a new identity.
//
// @Summary      Register a new identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return err
	}

	outcome := "success"
	if result.ConfirmationPending {
		outcome = "pending"
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", outcome).Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Token:               result.Token,
		User:                result.User,
		ConfirmationPending: result.ConfirmationPending,
	})
}

// Confirm redeems an email confirmation token.
//
// @Summary      Confirm a registered email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      confirmRequest  true  "Confirmation token"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/confirm [post]
func (h *AuthHandler) Confirm(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Confirm(c.Request().Context(), req.Token); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("confirm", "failure").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("confirm", "success").Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "confirmed"})
}

// Login authenticates an identity and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout revokes the caller's token. The response is 200 even when the
// revocation backend is down; the client discards its session either way.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	tokenID, expiresAt := ctxToken(c)
	_ = h.authService.Logout(c.Request().Context(), tokenID, expiresAt)

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the identity behind the caller's session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentSession(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileUpdateRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/profile [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), userID, ports.ProfileUpdate{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
