package ports

import (
	"context"
	"io"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// FileUpload is a single multipart file handed from the transport layer to
// the catalog service for persistence. The transport layer owns the Reader
// and closes it once the request is done.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.ReadCloser
}

// CreateProductInput carries everything needed to list a new product.
// ActiveRole comes from the caller's claims and must be "seller".
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	SellerID    string
	ActiveRole  string
	Thumbnail   *FileUpload
	Gallery     []*FileUpload
	ProductFile *FileUpload
}

// ProductSummary is a product with its seller's username resolved.
type ProductSummary struct {
	domain.Product
	SellerName string `json:"seller_name"`
}

// ProductDetail is the single-product view with seller profile attached.
type ProductDetail struct {
	domain.Product
	SellerName           string `json:"seller_name"`
	SellerProfilePicture string `json:"seller_profile_picture,omitempty"`
}

// CatalogService defines use-case operations over the product catalog.
type CatalogService interface {
	List(ctx context.Context) ([]ProductSummary, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*ProductDetail, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, callerID, productID string, upd ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, callerID, productID string) error
}
