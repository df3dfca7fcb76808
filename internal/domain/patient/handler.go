package patient

import (
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
	api.POST("/patients", h.Create)
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)
	api.POST("/patients/:id/discharge", h.Discharge)
	api.DELETE("/patients/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, p, "Patient created successfully")
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Status:        c.QueryParam("status"),
		AdmissionType: c.QueryParam("admissionType"),
		Search:        c.QueryParam("search"),
		Archived:      archivedFilter(c.QueryParam("isArchived")),
	}
	pg := pagination.FromContext(c)
	items, _, err := h.svc.List(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return response.Internal(c, err)
	}
	if items == nil {
		items = []*Patient{}
	}
	return response.OK(c, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Patient not found")
	}
	return response.OK(c, p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Patient not found")
	}
	if err := c.Bind(p); err != nil {
		return response.BadRequest(c, err.Error())
	}
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), p); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, p, "Patient updated successfully")
}

func (h *Handler) Discharge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}
	p, err := h.svc.Discharge(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Patient not found")
	}
	return response.OKMessage(c, p, "Patient discharged successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return response.Internal(c, err)
	}
	return response.Message(c, "Patient and all related records deleted successfully")
}

// archivedFilter maps an isArchived query value onto a tri-state filter.
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
