package http

import (
	"embed"
	"fmt"
	"net/http"
	"time"

	"celebrity-trends/internal/dashboard/service"
	"celebrity-trends/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed static
var staticFS embed.FS

// DashboardHandler exposes the analytics views over HTTP.
type DashboardHandler struct {
	analytics *service.Analytics
	logger    *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(analytics *service.Analytics, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, logger: log}
}

// RegisterRoutes registers the dashboard routes on the Echo instance.
func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.GET("/overview", h.Overview)
	api.GET("/overview/trends", h.OverviewTrends)
	api.GET("/entities", h.Entities)
	api.GET("/entities/:name", h.EntityDetail)
	api.GET("/entities/:name/trends", h.EntityTrends)
}

// Index serves the single-page dashboard.
func (h *DashboardHandler) Index(c echo.Context) error {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "dashboard page unavailable"})
	}
	return c.HTMLBlob(http.StatusOK, page)
}

// Health reports process liveness.
func (h *DashboardHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Overview returns the aggregate analysis for the optional date range.
func (h *DashboardHandler) Overview(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	overview, err := h.analytics.Overview(from, to)
	if err != nil {
		h.logger.Error("Failed to build overview", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build overview"})
	}
	return c.JSON(http.StatusOK, overview)
}

// OverviewTrends returns the search-interest overlay for the top entities.
func (h *DashboardHandler) OverviewTrends(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.analytics.OverviewTrends(c.Request().Context(), from, to)
	if err != nil {
		h.logger.Error("Failed to fetch overview trends", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch search interest"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Entities returns the known entity list, filtered by the q parameter.
func (h *DashboardHandler) Entities(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	entities, err := h.analytics.Entities(c.QueryParam("q"), from, to)
	if err != nil {
		h.logger.Error("Failed to list entities", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list entities"})
	}
	return c.JSON(http.StatusOK, echo.Map{"entities": entities})
}

// EntityDetail returns the per-entity analysis payload.
func (h *DashboardHandler) EntityDetail(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	detail, err := h.analytics.EntityDetail(c.Param("name"), from, to)
	if err != nil {
		h.logger.Error("Failed to build entity detail", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build entity detail"})
	}
	return c.JSON(http.StatusOK, detail)
}

// EntityTrends returns the search-interest series for one entity.
func (h *DashboardHandler) EntityTrends(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	resp, err := h.analytics.EntityTrends(c.Request().Context(), c.Param("name"), from, to)
	if err != nil {
		h.logger.Error("Failed to fetch entity trends", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch search interest"})
	}
	return c.JSON(http.StatusOK, resp)
}

func dateRange(c echo.Context) (*time.Time, *time.Time, error) {
	parse := func(name string) (*time.Time, error) {
		raw := c.QueryParam(name)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s date, expected YYYY-MM-DD", name)
		}
		return &t, nil
	}

	from, err := parse("from")
	if err != nil {
		return nil, nil, err
	}
	to, err := parse("to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
