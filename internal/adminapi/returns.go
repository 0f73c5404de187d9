package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/bocmarket/internal/domain"
)

func (s *WebServer) listReturns(c echo.Context) error {
	returns, err := s.app.ReturnsLedger().List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load returns", err.Error())
	}
	return ok(c, returns)
}

func (s *WebServer) processReturn(c echo.Context) error {
	var req domain.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse return request", err.Error())
	}

	result := s.app.Returns().ProcessReturn(c.Request().Context(), req)
	if !result.Success {
		return fail(c, http.StatusConflict, "RETURN_FAILED", result.Message, nil)
	}
	return ok(c, result)
}
