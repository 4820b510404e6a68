package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/digiloka/marketplace-api/internal/api/metrics"
	"github.com/digiloka/marketplace-api/internal/core/domain"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns the whole catalog with seller usernames attached.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}   ports.ProductSummary
// @Failure      500  {object}  errorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListMine returns the caller's own products.
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  errorResponse
// @Router       /api/products/my-products [get]
func (h *ProductHandler) ListMine(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListBySeller(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns a single product with seller profile attached.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  ports.ProductDetail
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Create lists a new product from a multipart payload.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name           formData  string  true   "Product name"
// @Param        description    formData  string  true   "Product description"
// @Param        price          formData  number  true   "Price"
// @Param        thumbnail      formData  file    true   "Thumbnail image"
// @Param        galleryImages  formData  file    false  "Up to 8 gallery images"
// @Param        productFile    formData  file    true   "Digital good (.zip, .rar, .pdf)"
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid multipart payload"})
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "price must be a non-negative number"})
	}
	name := c.FormValue("name")
	description := c.FormValue("description")
	if name == "" || description == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "name and description are required"})
	}

	thumbnail := firstFile(form, fieldThumbnail)
	gallery := form.File[fieldGalleryImages]
	productFile := firstFile(form, fieldProductFile)

	if thumbnail == nil || productFile == nil {
		metrics.UploadsRejectedTotal.WithLabelValues("missing_file").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "thumbnail and product file are required"})
	}
	if len(gallery) > domain.MaxGalleryImages {
		metrics.UploadsRejectedTotal.WithLabelValues("too_many_images").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "at most 8 gallery images allowed"})
	}
	if !isImage(thumbnail) {
		metrics.UploadsRejectedTotal.WithLabelValues("bad_image_type").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "thumbnail must be an image"})
	}
	for _, fh := range gallery {
		if !isImage(fh) {
			metrics.UploadsRejectedTotal.WithLabelValues("bad_image_type").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "gallery images must be images"})
		}
	}
	if _, ok := allowedProductFileTypes[productFile.Header.Get("Content-Type")]; !ok {
		metrics.UploadsRejectedTotal.WithLabelValues("bad_file_type").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "product file must be .zip, .rar, or .pdf"})
	}

	input := ports.CreateProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		SellerID:    claims.Subject,
		ActiveRole:  claims.ActiveRole,
	}

	// Large parts spill to temp files; close every opened part when the
	// request is done, including on a mid-loop open failure.
	var opened []io.Closer
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	if input.Thumbnail, err = openUpload(thumbnail); err != nil {
		return err
	}
	opened = append(opened, input.Thumbnail.Reader)
	if input.ProductFile, err = openUpload(productFile); err != nil {
		return err
	}
	opened = append(opened, input.ProductFile.Reader)
	for _, fh := range gallery {
		f, err := openUpload(fh)
		if err != nil {
			return err
		}
		opened = append(opened, f.Reader)
		input.Gallery = append(input.Gallery, f)
	}

	created, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Update edits an owned product's fields.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.service.Update(c.Request().Context(), claims.Subject, c.Param("id"), ports.ProductUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ThumbnailURL: req.ThumbnailURL,
		ImageURLs:    req.ImageURLs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an owned product. Uploaded blobs are not cleaned up.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims.Subject, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	files := form.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func openUpload(fh *multipart.FileHeader) (*ports.FileUpload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      src,
	}, nil
}
