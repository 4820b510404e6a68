package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/digiloka/marketplace-api/internal/core/domain"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// CatalogService implements product CRUD with ownership checks. Seller
// details are resolved explicitly against the user repository since the
// store does not join documents for us.
type CatalogService struct {
	products ports.ProductRepository
	users    ports.UserRepository
	blobs    ports.BlobStore
	logger   zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, users ports.UserRepository, blobs ports.BlobStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, users: users, blobs: blobs, logger: logger}
}

func (s *CatalogService) List(ctx context.Context) ([]ports.ProductSummary, error) {
	items, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	names, err := s.sellerNames(ctx, items)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProductSummary, 0, len(items))
	for _, p := range items {
		out = append(out, ports.ProductSummary{Product: *p, SellerName: names[p.SellerID]})
	}
	return out, nil
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	return s.products.FindBySeller(ctx, sellerID)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*ports.ProductDetail, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.ProductDetail{Product: *p}
	seller, err := s.users.FindByID(ctx, p.SellerID)
	if err == nil {
		detail.SellerName = seller.Username
		detail.SellerProfilePicture = seller.ProfilePicture
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}
	return detail, nil
}

// Create persists the uploaded assets and records the resulting public
// paths on a new product document. Only an active seller may list.
func (s *CatalogService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.ActiveRole != domain.RoleSeller {
		return nil, domain.ErrSellerOnly
	}
	if input.Thumbnail == nil || input.ProductFile == nil {
		return nil, domain.ErrMissingFile
	}

	thumbURL, err := s.store(ctx, input.SellerID, input.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	imageURLs := make([]string, 0, len(input.Gallery))
	for _, f := range input.Gallery {
		u, err := s.store(ctx, input.SellerID, f)
		if err != nil {
			return nil, fmt.Errorf("store gallery image: %w", err)
		}
		imageURLs = append(imageURLs, u)
	}

	fileURL, err := s.store(ctx, input.SellerID, input.ProductFile)
	if err != nil {
		return nil, fmt.Errorf("store product file: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.products.Create(ctx, &domain.Product{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		SellerID:       input.SellerID,
		ThumbnailURL:   thumbURL,
		ImageURLs:      imageURLs,
		ProductFileURL: fileURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("seller_id", input.SellerID).Msg("product created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, callerID, productID string, upd ports.ProductUpdate) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.SellerID != callerID {
		return nil, domain.ErrNotProductOwner
	}
	return s.products.Update(ctx, productID, upd)
}

// Delete hard-deletes the product document. Uploaded blobs are left behind;
// orders referencing the product keep their snapshots.
func (s *CatalogService) Delete(ctx context.Context, callerID, productID string) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID != callerID {
		return domain.ErrNotProductOwner
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", productID).Str("seller_id", callerID).Msg("product deleted")
	return nil
}

func (s *CatalogService) store(ctx context.Context, ownerID string, f *ports.FileUpload) (string, error) {
	return s.blobs.Save(ctx, ownerID, f.Filename, f.Reader, f.Size, f.ContentType)
}

// sellerNames resolves the distinct seller IDs of a product slice.
func (s *CatalogService) sellerNames(ctx context.Context, items []*domain.Product) (map[string]string, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, p := range items {
		if _, ok := seen[p.SellerID]; !ok {
			seen[p.SellerID] = struct{}{}
			ids = append(ids, p.SellerID)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	return s.users.UsernamesByIDs(ctx, ids)
}

