package nurse

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/response"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/nurses", h.Create)
	api.GET("/nurses", h.List)
	api.GET("/nurses/:id", h.Get)
	api.PUT("/nurses/:id", h.Update)
	api.DELETE("/nurses/:id", h.Delete)

	api.POST("/work-chart", h.AddWorkChart)
	api.GET("/work-chart", h.ListWorkCharts)
}

func (h *Handler) Create(c echo.Context) error {
	var n Nurse
	if err := c.Bind(&n); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &n); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, n, "Nurse created successfully")
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Search:   c.QueryParam("search"),
		Archived: archivedFilter(c.QueryParam("isArchived")),
	}
	pg := pagination.FromContext(c)
	items, _, err := h.svc.List(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return response.Internal(c, err)
	}
	if items == nil {
		items = []*Nurse{}
	}
	return response.OK(c, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid nurse ID")
	}
	n, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Nurse not found")
	}
	return response.OK(c, n)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid nurse ID")
	}
	n, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Nurse not found")
	}
	if err := c.Bind(n); err != nil {
		return response.BadRequest(c, err.Error())
	}
	n.ID = id
	if err := h.svc.Update(c.Request().Context(), n); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, n, "Nurse updated successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid nurse ID")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return response.Internal(c, err)
	}
	return response.Message(c, "Nurse deleted successfully")
}

func (h *Handler) AddWorkChart(c echo.Context) error {
	var w WorkChart
	if err := c.Bind(&w); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.AddWorkChart(c.Request().Context(), &w); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, w, "Work chart entry added successfully")
}

func (h *Handler) ListWorkCharts(c echo.Context) error {
	filter := ChartFilter{
		Month:    c.QueryParam("month"),
		Archived: archivedFilter(c.QueryParam("isArchived")),
	}
	if v := c.QueryParam("date"); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			return response.BadRequest(c, "Invalid date: expected YYYY-MM-DD")
		}
		filter.Date = &d
	}
	if v := c.QueryParam("nurseId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.BadRequest(c, "Invalid nurse ID")
		}
		filter.NurseID = &id
	}
	pg := pagination.FromContext(c)
	items, _, err := h.svc.ListWorkCharts(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return response.Internal(c, err)
	}
	if items == nil {
		items = []*WorkChart{}
	}
	return response.OK(c, items)
}

func archivedFilter(v string) *bool {
	switch v {
	case "true":
		t := true
		return &t
	case "false":
		f := false
		return &f
	}
	return nil
}
