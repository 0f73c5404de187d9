package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type checkoutPayload struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (s *WebServer) processPurchase(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout request", err.Error())
	}

	result := s.app.Purchase().ProcessPurchase(c.Request().Context(), payload.PaymentMethod)
	if !result.Success {
		return fail(c, http.StatusConflict, "CHECKOUT_FAILED", result.Message, nil)
	}
	return ok(c, result)
}
