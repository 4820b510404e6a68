package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/digiloka/marketplace-api/internal/core/domain"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// CheckoutGuard abstracts the idempotency store (Redis). Keys are only
// consulted when the client sends an Idempotency-Key header; without it,
// checkout behaves exactly like the bare two-write flow.
type CheckoutGuard interface {
	IsDuplicate(ctx context.Context, buyerID, key string) (bool, error)
	Mark(ctx context.Context, buyerID, key string) error
}

// CartService implements cart mutations and checkout. Cart adds are
// read-then-push: two concurrent adds of different products can race with
// last-write-wins semantics, which the store does not guard against.
type CartService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	guard    CheckoutGuard
	logger   zerolog.Logger
}

func NewCartService(users ports.UserRepository, products ports.ProductRepository, orders ports.OrderRepository, guard CheckoutGuard, logger zerolog.Logger) *CartService {
	return &CartService{users: users, products: products, orders: orders, guard: guard, logger: logger}
}

// Add appends a product reference to the cart. The product is not checked
// for existence; a dangling reference is skipped at list/checkout time.
func (s *CartService) Add(ctx context.Context, userID, productID string) ([]string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.InCart(productID) {
		return nil, domain.ErrAlreadyInCart
	}

	if err := s.users.PushCart(ctx, userID, productID); err != nil {
		return nil, err
	}
	return append(user.Cart, productID), nil
}

func (s *CartService) List(ctx context.Context, userID string) ([]ports.CartLine, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Cart) == 0 {
		return []ports.CartLine{}, nil
	}

	items, err := s.products.FindByIDs(ctx, user.Cart)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Product, len(items))
	sellerIDs := make([]string, 0, len(items))
	for _, p := range items {
		byID[p.ID] = p
		sellerIDs = append(sellerIDs, p.SellerID)
	}
	names, err := s.users.UsernamesByIDs(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	// Preserve cart order; silently skip lines whose product was deleted.
	lines := make([]ports.CartLine, 0, len(user.Cart))
	for _, id := range user.Cart {
		p, ok := byID[id]
		if !ok {
			continue
		}
		lines = append(lines, ports.CartLine{
			ProductID:    p.ID,
			Name:         p.Name,
			Price:        p.Price,
			ThumbnailURL: p.ThumbnailURL,
			SellerName:   names[p.SellerID],
		})
	}
	return lines, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	return s.users.PullCart(ctx, userID, productID)
}

// Checkout turns every cart line into an order snapshotting the current
// price and seller, then clears the cart. The two writes are not atomic:
// a fault in between leaves orders without a cleared cart. An optional
// idempotency key keeps a client retry from writing the orders twice.
func (s *CartService) Checkout(ctx context.Context, userID, idempotencyKey string) (*ports.CheckoutResult, error) {
	if idempotencyKey != "" && s.guard != nil {
		dup, err := s.guard.IsDuplicate(ctx, userID, idempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("idempotency check failed, proceeding")
		} else if dup {
			s.logger.Info().Str("user_id", userID).Str("idempotency_key", idempotencyKey).Msg("checkout replay skipped")
			return &ports.CheckoutResult{Replayed: true}, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items, err := s.products.FindByIDs(ctx, user.Cart)
	if err != nil {
		return nil, err
	}
	// Every reference can be dangling when sellers deleted their products
	// after the add. The store rejects an empty insert, so drop the stale
	// references and report the cart empty instead.
	if len(items) == 0 {
		if err := s.users.ClearCart(ctx, userID); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear stale cart")
		}
		return nil, domain.ErrEmptyCart
	}

	now := time.Now().UTC()
	orders := make([]*domain.Order, 0, len(items))
	for _, p := range items {
		orders = append(orders, &domain.Order{
			ProductID:       p.ID,
			BuyerID:         userID,
			SellerID:        p.SellerID,
			PriceAtPurchase: p.Price,
			Status:          domain.OrderCompleted,
			CreatedAt:       now,
		})
	}

	if err := s.orders.InsertMany(ctx, orders); err != nil {
		return nil, fmt.Errorf("insert orders: %w", err)
	}

	if idempotencyKey != "" && s.guard != nil {
		if err := s.guard.Mark(ctx, userID, idempotencyKey); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to mark idempotency key")
		}
	}

	if err := s.users.ClearCart(ctx, userID); err != nil {
		// Orders are already written; surfacing the error would invite a
		// retry that duplicates them without an idempotency key.
		s.logger.Error().Err(err).Str("user_id", userID).Msg("cart clear failed after order insert")
	}

	s.logger.Info().Str("user_id", userID).Int("orders", len(orders)).Msg("checkout completed")
	return &ports.CheckoutResult{OrdersCreated: len(orders)}, nil
}

func (s *CartService) Orders(ctx context.Context, userID string) ([]ports.OrderView, error) {
	orders, err := s.orders.FindByBuyer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []ports.OrderView{}, nil
	}

	productIDs := make([]string, 0, len(orders))
	sellerIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		productIDs = append(productIDs, o.ProductID)
		sellerIDs = append(sellerIDs, o.SellerID)
	}

	items, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	names, err := s.users.UsernamesByIDs(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ports.OrderView, 0, len(orders))
	for _, o := range orders {
		v := ports.OrderView{
			ID:              o.ID,
			SellerName:      names[o.SellerID],
			PriceAtPurchase: o.PriceAtPurchase,
			Status:          string(o.Status),
			CreatedAt:       o.CreatedAt,
		}
		if p, ok := byID[o.ProductID]; ok {
			v.Product = ports.OrderProduct{
				ID:             p.ID,
				Name:           p.Name,
				ThumbnailURL:   p.ThumbnailURL,
				ProductFileURL: p.ProductFileURL,
			}
		}
		views = append(views, v)
	}
	return views, nil
}
