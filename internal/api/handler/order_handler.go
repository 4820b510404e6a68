package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/digiloka/marketplace-api/internal/api/metrics"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// idempotencyHeader lets a client retry checkout without buying twice.
const idempotencyHeader = "Idempotency-Key"

type OrderHandler struct {
	service ports.CartService
}

func NewOrderHandler(service ports.CartService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Checkout converts the caller's cart into one order per item.
//
// @Summary      Check out the cart
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string  false  "Replay guard key"
// @Success      201  {object}  checkoutResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/orders/create [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := h.service.Checkout(c.Request().Context(), claims.Subject, c.Request().Header.Get(idempotencyHeader))
	if err != nil {
		return err
	}
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())

	if result.Replayed {
		return c.JSON(http.StatusOK, checkoutResponse{Message: "checkout already processed", OrdersCreated: 0})
	}

	metrics.OrdersCreatedTotal.Add(float64(result.OrdersCreated))
	return c.JSON(http.StatusCreated, checkoutResponse{Message: "order placed", OrdersCreated: result.OrdersCreated})
}

// ListMine returns the caller's purchase history, newest first.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.OrderView
// @Failure      401  {object}  errorResponse
// @Router       /api/orders/my-orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.service.Orders(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []ports.OrderView{}
	}
	return c.JSON(http.StatusOK, orders)
}
