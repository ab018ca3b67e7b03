package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockpile/inventory-system/internal/api/metrics"
	"github.com/stockpile/inventory-system/internal/core/ports"
)

// ResourceHandler handles HTTP requests for resource operations.
type ResourceHandler struct {
	service ports.ResourceService
}

func NewResourceHandler(service ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// Create handles POST /v1/resources.
//
// @Summary      Create a new resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resourceRequest  true  "Resource details"
// @Success      201   {object}  resourceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/resources [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), ownerID, toResourceInput(req))
	if err != nil {
		return err
	}

	metrics.ResourcesMutatedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toResourceResponse(*created))
}

// List handles GET /v1/resources.
//
// @Summary      List the caller's resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        status    query     string  false  "Filter by status"
// @Param        search    query     string  false  "Partial match on title or supplier"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResourcesResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /v1/resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ownerID, ports.ListResourcesInput{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listResourcesResponse{
		Data: toResourceResponses(result.Items),
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/resources/:id.
//
// @Summary      Get a resource by id
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource id"
// @Success      200  {object}  resourceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/resources/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	resource, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResourceResponse(*resource))
}

// Update handles PUT /v1/resources/:id.
//
// @Summary      Update a resource
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Resource id"
// @Param        body  body      resourceRequest  true  "Resource details"
// @Success      200   {object}  resourceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/resources/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), ownerID, c.Param("id"), toResourceInput(req))
	if err != nil {
		return err
	}

	metrics.ResourcesMutatedTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, toResourceResponse(*updated))
}

// Delete handles DELETE /v1/resources/:id.
//
// @Summary      Delete a resource
// @Tags         resources
// @Security     BearerAuth
// @Param        id  path  string  true  "Resource id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}

	metrics.ResourcesMutatedTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/stats.
//
// @Summary      Aggregate statistics over the caller's collection
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/stats [get]
func (h *ResourceHandler) Stats(c echo.Context) error {
	ownerID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	start := time.Now()
	stats, err := h.service.Stats(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	metrics.StatsComputeDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, toStatsResponse(*stats))
}
