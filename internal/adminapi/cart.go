package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/bocmarket/internal/cart"
)

type addToCartPayload struct {
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
	VariantName string `json:"variantName"`
}

type updateQuantityPayload struct {
	Quantity int `json:"quantity"`
}

func (s *WebServer) getCart(c echo.Context) error {
	return ok(c, s.app.Cart().Get(c.Request().Context()))
}

func (s *WebServer) verifyCart(c echo.Context) error {
	isEmpty, count := s.app.Cart().VerifyEmpty(c.Request().Context())
	return ok(c, map[string]interface{}{"isEmpty": isEmpty, "cartLength": count})
}

func (s *WebServer) addToCart(c echo.Context) error {
	var payload addToCartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if payload.ProductID == "" || payload.Quantity <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "productId and a positive quantity are required", nil)
	}

	items, err := s.app.Cart().AddToCart(c.Request().Context(),
		payload.ProductID, payload.Quantity, payload.VariantName)
	if err != nil {
		return cartFail(c, err)
	}
	return ok(c, items)
}

func (s *WebServer) updateCartItem(c echo.Context) error {
	var payload updateQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}

	items, err := s.app.Cart().UpdateQuantity(c.Request().Context(), c.Param("key"), payload.Quantity)
	if err != nil {
		return cartFail(c, err)
	}
	return ok(c, items)
}

func (s *WebServer) removeCartItem(c echo.Context) error {
	return ok(c, s.app.Cart().Remove(c.Request().Context(), c.Param("key")))
}

func (s *WebServer) clearCart(c echo.Context) error {
	return ok(c, s.app.Cart().Clear(c.Request().Context()))
}

// cartFail maps cart failure signals to HTTP errors.
func cartFail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case errors.Is(err, cart.ErrVariantNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Variant not found", nil)
	case errors.Is(err, cart.ErrInsufficientStock):
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Insufficient stock", nil)
	case errors.Is(err, cart.ErrItemNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Cart item not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Cart operation failed", err.Error())
	}
}
