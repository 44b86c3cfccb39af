package response

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Meta carries per-request metadata echoed back on every response.
type Meta struct {
	Time      time.Time `json:"time"`
	RequestID string    `json:"request_id"`
}

// Envelope is the wire contract every endpoint renders.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    Meta        `json:"meta"`
}

func meta(c echo.Context) Meta {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Request().Header.Get(echo.HeaderXRequestID)
	}
	return Meta{
		Time:      time.Now().UTC(),
		RequestID: requestID,
	}
}

// OK renders a success envelope with the given status code.
func OK(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta(c),
	})
}

// Fail renders a failure envelope with the given status code.
func Fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{
		Success: false,
		Message: message,
		Meta:    meta(c),
	})
}
