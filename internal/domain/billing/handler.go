package billing

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
	api.POST("/billing", h.Create)
	api.GET("/billing", h.List)
	api.GET("/billing/:id", h.Get)
	api.PUT("/billing/:id", h.Update)
	api.DELETE("/billing/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &rec); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, rec, "Billing record created successfully")
}

func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Search:   c.QueryParam("search"),
		Archived: archivedFilter(c.QueryParam("isArchived")),
	}
	if v := c.QueryParam("patientId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return response.BadRequest(c, "Invalid patient ID")
		}
		filter.PatientID = &id
	}
	pg := pagination.FromContext(c)
	items, _, err := h.svc.List(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return response.Internal(c, err)
	}
	if items == nil {
		items = []*Record{}
	}
	return response.OK(c, items)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid billing record ID")
	}
	rec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Billing record not found")
	}
	return response.OK(c, rec)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid billing record ID")
	}
	rec, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return response.NotFound(c, "Billing record not found")
	}
	if err := c.Bind(rec); err != nil {
		return response.BadRequest(c, err.Error())
	}
	rec.ID = id
	if err := h.svc.Update(c.Request().Context(), rec); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OKMessage(c, rec, "Billing record updated successfully")
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid billing record ID")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return response.Internal(c, err)
	}
	return response.Message(c, "Billing record deleted successfully")
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
