package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stockpile/inventory-system/internal/core/ports"
)

// ActivityHandler serves the resource change audit feed.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /v1/activity.
//
// @Summary      Recent resource changes
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max events to return (default 20)"
// @Success      200    {array}   activityEventResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.service.ListRecent(c.Request().Context(), ownerID, limit)
	if err != nil {
		return err
	}

	out := make([]activityEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, activityEventResponse{
			ResourceID: e.ResourceID,
			Action:     string(e.Action),
			Title:      e.Title,
			Timestamp:  e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, out)
}
