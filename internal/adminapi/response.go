package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ok wraps a successful response payload.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

// fail reports a structured error response.
func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":  1,
		"error": apiError{Code: code, Message: message, Details: details},
	})
}
