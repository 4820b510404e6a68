package domain

import (
	"errors"
	"time"
)

// OrderStatus is the fulfillment state of an order. Checkout is a simulated
// payment, so orders are written as Completed; Pending and Cancelled exist
// for schema compatibility but no code path sets them.
type OrderStatus string

const (
	OrderCompleted OrderStatus = "Completed"
	OrderPending   OrderStatus = "Pending"
	OrderCancelled OrderStatus = "Cancelled"
)

var ErrEmptyCart = errors.New("cart is empty")
var ErrAlreadyInCart = errors.New("product already in cart")

// Order is an immutable purchase record created at checkout.
// PriceAtPurchase snapshots the product price; later price edits do not
// touch it.
type Order struct {
	ID              string      `json:"id" bson:"_id,omitempty"`
	ProductID       string      `json:"product_id" bson:"product_id"`
	BuyerID         string      `json:"buyer_id" bson:"buyer_id"`
	SellerID        string      `json:"seller_id" bson:"seller_id"`
	PriceAtPurchase float64     `json:"price_at_purchase" bson:"price_at_purchase"`
	Status          OrderStatus `json:"status" bson:"status"`
	CreatedAt       time.Time   `json:"created_at" bson:"created_at"`
}
