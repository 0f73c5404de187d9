package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *WebServer) createBackup(c echo.Context) error {
	b, err := s.app.Backup().Create(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create backup", err.Error())
	}
	return ok(c, b)
}

func (s *WebServer) restoreBackup(c echo.Context) error {
	var raw map[string]interface{}
	if err := c.Bind(&raw); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse backup data", err.Error())
	}

	if err := s.app.Backup().Restore(c.Request().Context(), raw); err != nil {
		return fail(c, http.StatusBadRequest, "RESTORE_FAILED", "Failed to restore backup", err.Error())
	}
	return ok(c, map[string]interface{}{"restored": true})
}

func (s *WebServer) createDemoData(c echo.Context) error {
	if err := s.app.CreateDemoData(); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create demo data", err.Error())
	}
	return ok(c, map[string]interface{}{"created": true})
}
