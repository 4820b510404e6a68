package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/digiloka/marketplace-api/internal/api/metrics"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// UserHandler covers role management and profile media. Every operation
// here mutates a claims-embedded field, so every success reissues the token.
type UserHandler struct {
	authService ports.AuthService
	blobs       ports.BlobStore
}

func NewUserHandler(authService ports.AuthService, blobs ports.BlobStore) *UserHandler {
	return &UserHandler{authService: authService, blobs: blobs}
}

// ApplySeller grants the seller role to the calling account.
//
// @Summary      Apply for the seller role
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/apply-seller [put]
func (h *UserHandler) ApplySeller(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	session, err := h.authService.ApplySeller(c.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: session.Token, User: session.Claims})
}

// SwitchRole changes the session's active role.
//
// @Summary      Switch the active role
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      switchRoleRequest  true  "Role to switch to"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/user/switch-role [put]
func (h *UserHandler) SwitchRole(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req switchRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	session, err := h.authService.SwitchRole(c.Request().Context(), claims.Subject, req.NewRole)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: session.Token, User: session.Claims})
}

// UploadProfilePicture replaces the caller's profile picture.
//
// @Summary      Upload a profile picture
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profilePicture  formData  file  true  "Image file"
// @Success      200  {object}  sessionResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/user/profile-picture [put]
func (h *UserHandler) UploadProfilePicture(c echo.Context) error {
	return h.uploadPicture(c, "profilePicture", h.authService.SetProfilePicture)
}

// UploadBannerPicture replaces the caller's banner picture.
//
// @Summary      Upload a banner picture
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        bannerPicture  formData  file  true  "Image file"
// @Success      200  {object}  sessionResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/user/banner-picture [put]
func (h *UserHandler) UploadBannerPicture(c echo.Context) error {
	return h.uploadPicture(c, "bannerPicture", h.authService.SetBannerPicture)
}

// uploadPicture is the shared flow behind both picture endpoints: validate
// the multipart field is an image, persist the blob, then let the auth
// service record the URL and reissue claims.
func (h *UserHandler) uploadPicture(c echo.Context, field string, apply func(ctx context.Context, userID, url string) (*ports.Session, error)) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(field)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "no file uploaded"})
	}
	if !isImage(fh) {
		metrics.UploadsRejectedTotal.WithLabelValues("bad_image_type").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: field + " must be an image"})
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	url, err := h.blobs.Save(c.Request().Context(), claims.Subject, fh.Filename, src, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	session, err := apply(c.Request().Context(), claims.Subject, url)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Token: session.Token, User: session.Claims})
}

// isImage checks the declared content type; the store never inspects bytes.
func isImage(fh *multipart.FileHeader) bool {
	return strings.HasPrefix(fh.Header.Get("Content-Type"), "image/")
}
