package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockpile/inventory-system/internal/core/domain"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

// PreferenceHandler serves per-identity UI preferences.
type PreferenceHandler struct {
	store ports.ThemeStore
}

func NewPreferenceHandler(store ports.ThemeStore) *PreferenceHandler {
	return &PreferenceHandler{store: store}
}

// GetTheme handles GET /v1/preferences/theme.
//
// @Summary      Get the theme preference
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  themeResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/preferences/theme [get]
func (h *PreferenceHandler) GetTheme(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	theme, err := h.store.GetTheme(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: string(theme)})
}

// SetTheme handles PUT /v1/preferences/theme.
//
// @Summary      Set the theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      themeRequest  true  "One of light, dark, system"
// @Success      200   {object}  themeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/preferences/theme [put]
func (h *PreferenceHandler) SetTheme(c echo.Context) error {
	userID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.SetTheme(c.Request().Context(), userID, domain.Theme(req.Theme)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: req.Theme})
}
