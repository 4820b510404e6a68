package ports

import (
	"context"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// ProductUpdate carries the owner-editable fields of a product.
// File references for the digital good itself are write-once at creation.
type ProductUpdate struct {
	Name         string
	Description  string
	Price        float64
	ThumbnailURL string
	ImageURLs    []string
}

// ProductRepository defines persistence operations on product documents.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
