package handlers

import (
	"context"

	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Presigner issues direct-upload URLs for the storage backend.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, dir, filename string) (string, string, error)
}

type UploadHandler struct {
	presigner Presigner
	logger    *logrus.Logger
}

func NewUploadHandler(presigner Presigner, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		presigner: presigner,
		logger:    logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for file upload
// @Description Generate a presigned URL for uploading a file straight to the storage bucket
// @Tags Upload
// @Produce json
// @Param path query string true "Video ID owning the upload"
// @Param filename query string true "Filename"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /upload/presign [get]
func (h *UploadHandler) GetPresignedURL(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	dir := c.Query("path")
	if dir == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "path is required")
	}
	videoID, err := uuid.Parse(dir)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "path must be a video ID")
	}

	presignedURL, publicURL, err := h.presigner.GeneratePresignedURL(c.Context(), videoID.String(), filename)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate presigned URL")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", fiber.Map{
		"presigned_url": presignedURL,
		"public_url":    publicURL,
	})
}
