package handlers

import (
	"streamhub-backend/internal/services"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	storage *services.StorageService
	logger  *logrus.Logger
}

func NewUploadHandler(storage *services.StorageService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		logger:  logger,
	}
}

// Upload godoc
// @Summary Upload an image
// @Description Upload a poster or avatar image; returns its public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} utils.StandardResponse "Public URL of the stored file"
// @Failure 400 {object} utils.StandardResponse "Invalid file"
// @Security BearerAuth
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer file.Close()

	url, err := h.storage.UploadFile(
		c.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "File uploaded successfully", fiber.Map{
		"url": url,
	})
}

// Presign godoc
// @Summary Get a presigned upload URL
// @Description Returns a short-lived direct-upload URL and the resulting public URL
// @Tags uploads
// @Produce json
// @Param filename query string true "File name"
// @Success 200 {object} utils.StandardResponse "Presigned and public URLs"
// @Failure 400 {object} utils.StandardResponse "Invalid file name"
// @Security BearerAuth
// @Router /uploads/presign [get]
func (h *UploadHandler) Presign(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing filename query parameter")
	}

	uploadURL, publicURL, err := h.storage.PresignedPutURL(filename)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated", fiber.Map{
		"upload_url": uploadURL,
		"public_url": publicURL,
	})
}
