package doctor

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
	api.POST("/doctors", h.Create)
	api.GET("/doctors", h.List)
	api.GET("/doctors/:id", h.Get)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, d, "Doctor created successfully")
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
		items = []*Doctor{}
	}
	return response.OK(c, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Doctor not found")
	}
	return response.OK(c, d)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Doctor not found")
	}
	if err := c.Bind(d); err != nil {
		return response.BadRequest(c, err.Error())
	}
	d.ID = id
	if err := h.svc.Update(c.Request().Context(), d); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, d, "Doctor updated successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return response.Internal(c, err)
	}
	return response.Message(c, "Doctor deleted successfully")
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
