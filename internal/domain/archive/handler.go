package archive

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/archives", h.List)
	api.POST("/archives", h.Archive)
	api.GET("/archives/:period", h.Get)
	api.GET("/archives/:period/pdf", h.DownloadPDF)
	api.DELETE("/archives/:period", h.Purge)
}

type archiveRequest struct {
	Month        string `json:"month"`
	DeleteOption string `json:"deleteOption"`
}

func (h *Handler) Archive(c echo.Context) error {
	var req archiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	policy, err := PolicyFromDeleteOption(req.DeleteOption)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	entry, err := h.svc.ArchivePeriod(c.Request().Context(), req.Month, policy)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.OKMessage(c, entry, fmt.Sprintf("Data for %s archived successfully", req.Month))
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.ListLedger(c.Request().Context())
	if err != nil {
		return response.Internal(c, err)
	}
	if items == nil {
		items = []*LedgerEntry{}
	}
	return response.OK(c, items)
}

func (h *Handler) Get(c echo.Context) error {
	period := c.Param("period")
	entry, err := h.svc.GetLedger(c.Request().Context(), period)
	if err != nil {
		return h.mapError(c, err)
	}
	snap, err := h.svc.Snapshot(c.Request().Context(), period)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.OK(c, map[string]interface{}{
		"archive":  entry,
		"snapshot": snap,
	})
}

func (h *Handler) DownloadPDF(c echo.Context) error {
	period := c.Param("period")
	pdf, err := h.svc.ReportPDF(c.Request().Context(), period)
	if err != nil {
		return h.mapError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="Hospital_Archive_%s.pdf"`, period))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) Purge(c echo.Context) error {
	period := c.Param("period")
	res, err := h.svc.PurgeArchivedPeriod(c.Request().Context(), period)
	if err != nil {
		return h.mapError(c, err)
	}
	return response.OKMessage(c, res, fmt.Sprintf("Archived data for %s deleted successfully", period))
}

func (h *Handler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInvalidRetentionPolicy):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, ErrNoRecords), errors.Is(err, ErrNotFound):
		return response.NotFound(c, err.Error())
	}
	return response.Internal(c, err)
}
