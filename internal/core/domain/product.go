package domain

import (
	"errors"
	"time"
)

// MaxGalleryImages caps the number of gallery images per product.
const MaxGalleryImages = 8

var ErrProductNotFound = errors.New("product not found")
var ErrMissingFile = errors.New("thumbnail and product file are required")
var ErrNotProductOwner = errors.New("not the product owner")
var ErrSellerOnly = errors.New("active seller role required")

// Product is a downloadable good listed by a seller. ThumbnailURL and
// ProductFileURL point into the blob store and are required; ImageURLs
// holds up to MaxGalleryImages additional gallery images.
type Product struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Name           string    `json:"name" bson:"name"`
	Description    string    `json:"description" bson:"description"`
	Price          float64   `json:"price" bson:"price"`
	SellerID       string    `json:"seller_id" bson:"seller_id"`
	ThumbnailURL   string    `json:"thumbnail_url" bson:"thumbnail_url"`
	ImageURLs      []string  `json:"image_urls" bson:"image_urls"`
	ProductFileURL string    `json:"product_file_url" bson:"product_file_url"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}
