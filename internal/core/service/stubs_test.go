package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/digiloka/marketplace-api/internal/core/domain"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// In-memory fakes for the repository ports. Mutators clone documents so a
// test cannot accidentally share state with the store.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	pushCartErr  error
	clearCartErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	clone.Cart = append([]string(nil), u.Cart...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) mutate(id string, fn func(*domain.User)) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	fn(u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) AddRole(_ context.Context, id, role string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) {
		if !u.HasRole(role) {
			u.Roles = append(u.Roles, role)
		}
	})
}

func (r *stubUserRepo) SetActiveRole(_ context.Context, id, role string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.ActiveRole = role })
}

func (r *stubUserRepo) SetProfilePicture(_ context.Context, id, url string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.ProfilePicture = url })
}

func (r *stubUserRepo) SetBannerPicture(_ context.Context, id, url string) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.BannerPicture = url })
}

func (r *stubUserRepo) PushCart(_ context.Context, id, productID string) error {
	if r.pushCartErr != nil {
		return r.pushCartErr
	}
	_, err := r.mutate(id, func(u *domain.User) { u.Cart = append(u.Cart, productID) })
	return err
}

func (r *stubUserRepo) PullCart(_ context.Context, id, productID string) error {
	_, err := r.mutate(id, func(u *domain.User) {
		kept := u.Cart[:0]
		for _, pid := range u.Cart {
			if pid != productID {
				kept = append(kept, pid)
			}
		}
		u.Cart = kept
	})
	return err
}

func (r *stubUserRepo) ClearCart(_ context.Context, id string) error {
	if r.clearCartErr != nil {
		return r.clearCartErr
	}
	_, err := r.mutate(id, func(u *domain.User) { u.Cart = []string{} })
	return err
}

func (r *stubUserRepo) UsernamesByIDs(_ context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			names[id] = u.Username
		}
	}
	return names, nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	clone.ImageURLs = append([]string(nil), p.ImageURLs...)
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	copy := cloneProduct(p)
	copy.ID = fmt.Sprintf("prod_%d", r.nextID)
	r.products[copy.ID] = cloneProduct(copy)
	return copy, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	ids := make([]string, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneProduct(r.products[id]))
	}
	return out, nil
}

func (r *stubProductRepo) FindBySeller(_ context.Context, sellerID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.SellerID == sellerID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p.Name = upd.Name
	p.Description = upd.Description
	p.Price = upd.Price
	if upd.ThumbnailURL != "" {
		p.ThumbnailURL = upd.ThumbnailURL
	}
	if upd.ImageURLs != nil {
		p.ImageURLs = append([]string(nil), upd.ImageURLs...)
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type stubOrderRepo struct {
	orders    []*domain.Order
	insertErr error
}

func (r *stubOrderRepo) InsertMany(_ context.Context, orders []*domain.Order) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	// The mongo driver rejects an empty documents slice; the fake holds
	// callers to the same contract.
	if len(orders) == 0 {
		return errors.New("must provide at least one element in input slice")
	}
	for i, o := range orders {
		copy := *o
		copy.ID = fmt.Sprintf("order_%d", len(r.orders)+i+1)
		r.orders = append(r.orders, &copy)
	}
	return nil
}

func (r *stubOrderRepo) FindByBuyer(_ context.Context, buyerID string) ([]*domain.Order, error) {
	// Newest first, matching the real repository's sort.
	var out []*domain.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].BuyerID == buyerID {
			copy := *r.orders[i]
			out = append(out, &copy)
		}
	}
	return out, nil
}

type stubGuard struct {
	seen     map[string]bool
	isDupErr error
}

func newStubGuard() *stubGuard {
	return &stubGuard{seen: make(map[string]bool)}
}

func (g *stubGuard) IsDuplicate(_ context.Context, buyerID, key string) (bool, error) {
	if g.isDupErr != nil {
		return false, g.isDupErr
	}
	return g.seen[buyerID+":"+key], nil
}

func (g *stubGuard) Mark(_ context.Context, buyerID, key string) error {
	g.seen[buyerID+":"+key] = true
	return nil
}

type stubBlobStore struct {
	saved []string
}

func (s *stubBlobStore) Save(_ context.Context, ownerID, filename string, _ io.Reader, _ int64, _ string) (string, error) {
	url := "/uploads/" + ownerID + "-" + filename
	s.saved = append(s.saved, url)
	return url, nil
}

func (s *stubBlobStore) Remove(_ context.Context, _ string) error {
	return nil
}
