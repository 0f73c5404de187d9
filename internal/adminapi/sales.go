package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/bocmarket/internal/receipt"
)

func (s *WebServer) listSales(c echo.Context) error {
	sales, err := s.app.SalesLedger().List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load sales", err.Error())
	}
	return ok(c, sales)
}

func (s *WebServer) downloadReceipt(c echo.Context) error {
	sale, err := s.app.SalesLedger().GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load sale", err.Error())
	}
	if sale == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sale not found", nil)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="recibo_%s.txt"`, sale.ID))
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(receipt.Render(sale)))
}

func (s *WebServer) emailReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	sale, err := s.app.SalesLedger().GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load sale", err.Error())
	}
	if sale == nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Sale not found", nil)
	}

	result := s.app.Receipt().SendReceipt(ctx, sale)
	if !result.Success {
		return fail(c, http.StatusBadGateway, "EMAIL_FAILED", result.Message, nil)
	}
	return ok(c, result)
}

func (s *WebServer) dailyReport(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	rep, err := s.app.Report().Daily(c.Request().Context(), date)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse report date", err.Error())
	}
	return ok(c, rep)
}

func (s *WebServer) exportDailyReport(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	csvText, err := s.app.Report().ExportCSV(c.Request().Context(), date)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to export report", err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="reporte_ventas_%s.csv"`, date))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}
