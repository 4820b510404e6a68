package ports

import (
	"context"
	"time"
)

// CartLine is a cart entry with its product and seller details resolved.
type CartLine struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url"`
	SellerName   string  `json:"seller_name"`
}

// OrderProduct is the slice of product detail shown on the orders page.
type OrderProduct struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ThumbnailURL   string `json:"thumbnail_url"`
	ProductFileURL string `json:"product_file_url"`
}

// OrderView is one purchase with product and seller resolved.
type OrderView struct {
	ID              string       `json:"id"`
	Product         OrderProduct `json:"product"`
	SellerName      string       `json:"seller_name"`
	PriceAtPurchase float64      `json:"price_at_purchase"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// CheckoutResult reports what checkout materialized.
type CheckoutResult struct {
	OrdersCreated int
	// Replayed is true when the Idempotency-Key matched a previous checkout
	// and no new orders were written.
	Replayed bool
}

// CartService defines cart mutations and the checkout use case.
type CartService interface {
	Add(ctx context.Context, userID, productID string) ([]string, error)
	List(ctx context.Context, userID string) ([]CartLine, error)
	Remove(ctx context.Context, userID, productID string) error
	Checkout(ctx context.Context, userID, idempotencyKey string) (*CheckoutResult, error)
	Orders(ctx context.Context, userID string) ([]OrderView, error)
}
