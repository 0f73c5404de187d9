package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/bocmarket/internal/domain"
)

func (s *WebServer) getAppState(c echo.Context) error {
	return ok(c, s.app.Settings().AppState(c.Request().Context()))
}

func (s *WebServer) getEmailConfig(c echo.Context) error {
	return ok(c, s.app.Settings().EmailConfig(c.Request().Context()))
}

func (s *WebServer) saveEmailConfig(c echo.Context) error {
	var cfg domain.EmailConfig
	if err := c.Bind(&cfg); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse email config", err.Error())
	}

	if err := s.app.Settings().SaveEmailConfig(c.Request().Context(), cfg); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save email config", err.Error())
	}
	return ok(c, cfg)
}
