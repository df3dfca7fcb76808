package auth

import (
	"errors"

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
	api.GET("/auth/check-password", h.CheckPassword)
	api.POST("/auth/initialize-password", h.InitializePassword)
	api.POST("/auth/verify-password", h.VerifyPassword)
	api.POST("/auth/change-password", h.ChangePassword)
}

type passwordRequest struct {
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) CheckPassword(c echo.Context) error {
	set, err := h.svc.IsSet()
	if err != nil {
		return response.Internal(c, err)
	}
	return response.OK(c, map[string]bool{"isPasswordSet": set})
}

func (h *Handler) InitializePassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.Initialize(req.Password); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Message(c, "Password initialized successfully")
}

func (h *Handler) VerifyPassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	token, err := h.svc.Verify(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			return response.Error(c, 401, "Incorrect password")
		case errors.Is(err, ErrPasswordNotSet):
			return response.BadRequest(c, err.Error())
		}
		return response.Internal(c, err)
	}
	return response.OKMessage(c, map[string]string{"token": token}, "Password verified")
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.svc.Change(req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrWrongPassword) {
			return response.Error(c, 401, "Incorrect password")
		}
		return response.BadRequest(c, err.Error())
	}
	return response.Message(c, "Password changed successfully")
}
