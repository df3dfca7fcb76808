package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the JSON shape every API endpoint responds with.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK writes a 200 envelope with data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 envelope with data and a human-readable message.
func OKMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Message writes a 200 envelope carrying only a message.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Error writes an error envelope with the given status code.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

// BadRequest writes a 400 error envelope.
func BadRequest(c echo.Context, msg string) error {
	return Error(c, http.StatusBadRequest, msg)
}

// NotFound writes a 404 error envelope.
func NotFound(c echo.Context, msg string) error {
	return Error(c, http.StatusNotFound, msg)
}

// Internal writes a 500 error envelope.
func Internal(c echo.Context, err error) error {
	return Error(c, http.StatusInternalServerError, err.Error())
}
