package handler

// allowedProductFileTypes is the content-type allow-list for the digital
// good itself. Everything else is rejected before any document is written.
var allowedProductFileTypes = map[string]struct{}{
	"application/zip":              {},
	"application/x-rar-compressed": {},
	"application/pdf":              {},
}

// Multipart field names for product creation. Files under any other field
// name are silently dropped.
const (
	fieldThumbnail     = "thumbnail"
	fieldGalleryImages = "galleryImages"
	fieldProductFile   = "productFile"
)

// updateProductRequest carries the owner-editable fields. File references
// for the digital good are write-once at creation and not editable here.
type updateProductRequest struct {
	Name         string   `json:"name"          validate:"required"`
	Description  string   `json:"description"   validate:"required"`
	Price        float64  `json:"price"         validate:"gte=0"`
	ThumbnailURL string   `json:"thumbnail_url"`
	ImageURLs    []string `json:"image_urls"`
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type cartResponse struct {
	Cart []string `json:"cart"`
}

type checkoutResponse struct {
	Message       string `json:"message"`
	OrdersCreated int    `json:"orders_created"`
}
