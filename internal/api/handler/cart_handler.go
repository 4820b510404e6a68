package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digiloka/marketplace-api/internal/core/ports"
)

type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Add puts a product reference into the caller's cart.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product to add"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	cart, err := h.service.Add(c.Request().Context(), claims.Subject, req.ProductID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Cart: cart})
}

// List returns the resolved contents of the caller's cart. References to
// products that no longer exist are omitted.
//
// @Summary      List the cart contents
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.CartLine
// @Failure      401  {object}  errorResponse
// @Router       /api/cart [get]
func (h *CartHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	lines, err := h.service.List(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []ports.CartLine{}
	}
	return c.JSON(http.StatusOK, lines)
}

// Remove drops a product reference from the caller's cart. Removing a
// product that is not in the cart is a no-op.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {object}  map[string]string
// @Failure      401        {object}  errorResponse
// @Router       /api/cart/remove/{productId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), claims.Subject, c.Param("productId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "removed from cart"})
}
