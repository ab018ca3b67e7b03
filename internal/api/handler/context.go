package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty user id
// proves the middleware ran.
func ctxIdentity(c echo.Context) (userID string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxToken extracts the token id and expiry used for logout revocation.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get("token_id").(string)
	expiresAt, _ = c.Get("token_expires").(time.Time)
	return tokenID, expiresAt
}
