package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

func seedBuyer(t *testing.T, users *stubUserRepo, username string) *domain.User {
	t.Helper()
	user, err := users.Create(context.Background(), &domain.User{
		Username:   username,
		Email:      username + "@example.com",
		Roles:      []string{domain.RoleBuyer},
		ActiveRole: domain.RoleBuyer,
	})
	if err != nil {
		t.Fatalf("seed buyer: %v", err)
	}
	return user
}

func TestCartService_Add(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, newStubProductRepo(), &stubOrderRepo{}, nil, zerolog.Nop())

	buyer := seedBuyer(t, users, "liam")

	// No existence check on the product reference.
	cart, err := svc.Add(context.Background(), buyer.ID, "prod_nonexistent")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(cart) != 1 || cart[0] != "prod_nonexistent" {
		t.Fatalf("unexpected cart: %v", cart)
	}

	if _, err := svc.Add(context.Background(), buyer.ID, "prod_nonexistent"); err != domain.ErrAlreadyInCart {
		t.Fatalf("expected ErrAlreadyInCart, got %v", err)
	}
}

func TestCartService_List_SkipsDeletedProducts(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	svc := NewCartService(users, products, &stubOrderRepo{}, nil, zerolog.Nop())

	seller := seedSeller(t, users, "mona")
	buyer := seedBuyer(t, users, "nick")
	p, _ := products.Create(context.Background(), &domain.Product{Name: "Pack", Price: 3.5, SellerID: seller.ID})

	_, _ = svc.Add(context.Background(), buyer.ID, p.ID)
	_, _ = svc.Add(context.Background(), buyer.ID, "prod_gone")

	lines, err := svc.List(context.Background(), buyer.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected dangling reference skipped, got %d lines", len(lines))
	}
	if lines[0].ProductID != p.ID || lines[0].SellerName != "mona" {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestCartService_Remove_AbsentEntryIsNoop(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, newStubProductRepo(), &stubOrderRepo{}, nil, zerolog.Nop())

	buyer := seedBuyer(t, users, "olga")
	if err := svc.Remove(context.Background(), buyer.ID, "never_added"); err != nil {
		t.Fatalf("Remove of absent entry should be a no-op, got %v", err)
	}
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	users := newStubUserRepo()
	svc := NewCartService(users, newStubProductRepo(), &stubOrderRepo{}, nil, zerolog.Nop())

	buyer := seedBuyer(t, users, "pete")
	if _, err := svc.Checkout(context.Background(), buyer.ID, ""); err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCartService_Checkout_AllReferencesDangling(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := &stubOrderRepo{}
	svc := NewCartService(users, products, orders, nil, zerolog.Nop())

	buyer := seedBuyer(t, users, "ana")
	// Both carted products were deleted before checkout.
	_, _ = svc.Add(context.Background(), buyer.ID, "prod_gone_1")
	_, _ = svc.Add(context.Background(), buyer.ID, "prod_gone_2")

	if _, err := svc.Checkout(context.Background(), buyer.ID, ""); err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart for an all-dangling cart, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Fatalf("no orders should be written, got %d", len(orders.orders))
	}

	user, _ := users.FindByID(context.Background(), buyer.ID)
	if len(user.Cart) != 0 {
		t.Fatalf("stale references should be cleared, got %v", user.Cart)
	}
}

func TestCartService_Checkout_SnapshotsAndClears(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := &stubOrderRepo{}
	svc := NewCartService(users, products, orders, nil, zerolog.Nop())

	seller := seedSeller(t, users, "quinn")
	buyer := seedBuyer(t, users, "rosa")
	p1, _ := products.Create(context.Background(), &domain.Product{Name: "A", Price: 1.5, SellerID: seller.ID})
	p2, _ := products.Create(context.Background(), &domain.Product{Name: "B", Price: 2.5, SellerID: seller.ID})

	_, _ = svc.Add(context.Background(), buyer.ID, p1.ID)
	_, _ = svc.Add(context.Background(), buyer.ID, p2.ID)

	result, err := svc.Checkout(context.Background(), buyer.ID, "")
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if result.OrdersCreated != 2 || result.Replayed {
		t.Fatalf("unexpected result: %+v", result)
	}

	for _, o := range orders.orders {
		if o.Status != domain.OrderCompleted {
			t.Fatalf("orders should be completed, got %q", o.Status)
		}
		if o.SellerID != seller.ID {
			t.Fatalf("seller not snapshotted: %+v", o)
		}
	}

	user, _ := users.FindByID(context.Background(), buyer.ID)
	if len(user.Cart) != 0 {
		t.Fatalf("cart should be cleared, got %v", user.Cart)
	}
}

func TestCartService_Checkout_IdempotencyKeyBlocksReplay(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := &stubOrderRepo{}
	guard := newStubGuard()
	svc := NewCartService(users, products, orders, guard, zerolog.Nop())

	seller := seedSeller(t, users, "sara")
	buyer := seedBuyer(t, users, "theo")
	p, _ := products.Create(context.Background(), &domain.Product{Name: "A", Price: 1, SellerID: seller.ID})
	_, _ = svc.Add(context.Background(), buyer.ID, p.ID)

	first, err := svc.Checkout(context.Background(), buyer.ID, "key-1")
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if first.OrdersCreated != 1 {
		t.Fatalf("expected 1 order, got %d", first.OrdersCreated)
	}

	// Client retries with the same key after a dropped response.
	_, _ = svc.Add(context.Background(), buyer.ID, p.ID)
	second, err := svc.Checkout(context.Background(), buyer.ID, "key-1")
	if err != nil {
		t.Fatalf("replayed checkout failed: %v", err)
	}
	if !second.Replayed || second.OrdersCreated != 0 {
		t.Fatalf("expected replay short-circuit, got %+v", second)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("replay must not write more orders, got %d", len(orders.orders))
	}
}

func TestCartService_Checkout_GuardErrorProceeds(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := &stubOrderRepo{}
	guard := newStubGuard()
	guard.isDupErr = errors.New("redis down")
	svc := NewCartService(users, products, orders, guard, zerolog.Nop())

	seller := seedSeller(t, users, "uma")
	buyer := seedBuyer(t, users, "vic")
	p, _ := products.Create(context.Background(), &domain.Product{Name: "A", Price: 1, SellerID: seller.ID})
	_, _ = svc.Add(context.Background(), buyer.ID, p.ID)

	result, err := svc.Checkout(context.Background(), buyer.ID, "key-1")
	if err != nil {
		t.Fatalf("checkout should proceed past a guard error, got %v", err)
	}
	if result.OrdersCreated != 1 {
		t.Fatalf("expected 1 order, got %d", result.OrdersCreated)
	}
}

func TestCartService_Checkout_ClearCartFailureIsSwallowed(t *testing.T) {
	users := newStubUserRepo()
	users.clearCartErr = errors.New("write conflict")
	products := newStubProductRepo()
	orders := &stubOrderRepo{}
	svc := NewCartService(users, products, orders, nil, zerolog.Nop())

	seller := seedSeller(t, users, "wes")
	buyer := seedBuyer(t, users, "xena")
	p, _ := products.Create(context.Background(), &domain.Product{Name: "A", Price: 1, SellerID: seller.ID})
	_, _ = svc.Add(context.Background(), buyer.ID, p.ID)

	result, err := svc.Checkout(context.Background(), buyer.ID, "")
	if err != nil {
		t.Fatalf("orders are written; clear failure must not surface, got %v", err)
	}
	if result.OrdersCreated != 1 {
		t.Fatalf("expected 1 order, got %d", result.OrdersCreated)
	}
}

func TestCartService_Orders_NewestFirstWithProducts(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	orders := &stubOrderRepo{}
	svc := NewCartService(users, products, orders, nil, zerolog.Nop())

	seller := seedSeller(t, users, "yuri")
	buyer := seedBuyer(t, users, "zoe")
	p1, _ := products.Create(context.Background(), &domain.Product{Name: "First", Price: 1, SellerID: seller.ID})
	p2, _ := products.Create(context.Background(), &domain.Product{Name: "Second", Price: 2, SellerID: seller.ID})

	_, _ = svc.Add(context.Background(), buyer.ID, p1.ID)
	if _, err := svc.Checkout(context.Background(), buyer.ID, ""); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	_, _ = svc.Add(context.Background(), buyer.ID, p2.ID)
	if _, err := svc.Checkout(context.Background(), buyer.ID, ""); err != nil {
		t.Fatalf("second checkout: %v", err)
	}

	views, err := svc.Orders(context.Background(), buyer.ID)
	if err != nil {
		t.Fatalf("Orders returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(views))
	}
	if views[0].Product.Name != "Second" || views[1].Product.Name != "First" {
		t.Fatalf("expected newest first, got %q then %q", views[0].Product.Name, views[1].Product.Name)
	}
	if views[0].SellerName != "yuri" {
		t.Fatalf("seller name not resolved: %+v", views[0])
	}
}
