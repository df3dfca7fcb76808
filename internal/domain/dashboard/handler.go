package dashboard

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.Stats)
	api.GET("/dashboard/recent-patients", h.RecentPatients)
	api.GET("/dashboard/daily-report", h.DailyReport)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return response.Internal(c, err)
	}
	return response.OK(c, stats)
}

func (h *Handler) RecentPatients(c echo.Context) error {
	items, err := h.svc.RecentPatients(c.Request().Context())
	if err != nil {
		return response.Internal(c, err)
	}
	if items == nil {
		items = []*patient.Patient{}
	}
	return response.OK(c, items)
}

func (h *Handler) DailyReport(c echo.Context) error {
	var day *time.Time
	if v := c.QueryParam("date"); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			return response.BadRequest(c, "Invalid date: expected YYYY-MM-DD")
		}
		day = &d
	}
	rep, err := h.svc.DailyReport(c.Request().Context(), day)
	if err != nil {
		return response.Internal(c, err)
	}
	return response.OK(c, rep)
}
