package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/bocmarket/internal/catalog"
	"github.com/talkincode/bocmarket/internal/domain"
)

type productPayload struct {
	Name        string           `json:"name"`
	Price       float64          `json:"price"`
	Quantity    int              `json:"quantity"`
	HasVariants bool             `json:"hasVariants"`
	Variants    []domain.Variant `json:"variants"`
}

func (s *WebServer) listProducts(c echo.Context) error {
	return ok(c, s.app.Catalog().List(c.Request().Context()))
}

func (s *WebServer) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Price < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must be >= 0", nil)
	}
	if payload.Quantity < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be >= 0", nil)
	}

	products := s.app.Catalog().Add(c.Request().Context(), domain.Product{
		Name:        payload.Name,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		HasVariants: payload.HasVariants,
		Variants:    payload.Variants,
	})
	return ok(c, products)
}

func (s *WebServer) updateProduct(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	product, err := s.app.Catalog().Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		}
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, product)
}

func (s *WebServer) deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if !s.app.Catalog().Delete(c.Request().Context(), id) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, map[string]interface{}{"id": id})
}
