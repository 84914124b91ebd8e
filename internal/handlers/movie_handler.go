package handlers

import (
	"strconv"
	"strings"

	"streamhub-backend/internal/models"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ImageStore is the slice of the storage service the movie handler needs for
// poster cleanup. *services.StorageService satisfies it.
type ImageStore interface {
	DeleteFile(objectPath string) error
}

type MovieHandler struct {
	movies     *repository.Repository[models.Movie]
	categories *repository.Repository[models.Category]
	storage    ImageStore
	logger     *logrus.Logger
}

func NewMovieHandler(movies *repository.Repository[models.Movie], categories *repository.Repository[models.Category], storage ImageStore, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		movies:     movies,
		categories: categories,
		storage:    storage,
		logger:     logger,
	}
}

// List godoc
// @Summary List movies
// @Description List movies with pagination, title search and category filter
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in title and synopsis"
// @Param category_id query int false "Filter by category"
// @Success 200 {object} utils.StandardResponse "Movies"
// @Router /movies [get]
func (h *MovieHandler) List(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	scopes := []repository.Scope{repository.Preload("Category"), repository.OrderBy("title ASC")}
	if search := c.Query("search"); search != "" {
		scopes = append(scopes, repository.TitleContains(search))
	}
	if raw := c.Query("category_id"); raw != "" {
		if categoryID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			scopes = append(scopes, repository.ByCategory(uint(categoryID)))
		}
	}

	movies, total := h.movies.Paged(c.Context(), page, limit, scopes...)
	meta := utils.CreatePaginationMeta(page, limit, total, c.Path())
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// GetByID godoc
// @Summary Get a movie by id
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	movie, found := h.movies.GetByID(c.Context(), id, repository.Preload("Category"))
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// Create godoc
// @Summary Create a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie request"
// @Success 201 {object} utils.StandardResponse "Movie created"
// @Failure 409 {object} utils.StandardResponse "Duplicate title"
// @Security BearerAuth
// @Router /movies [post]
func (h *MovieHandler) Create(c *fiber.Ctx) error {
	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	if _, exists := h.movies.FindSingle(c.Context(), repository.TitleEquals(req.Title)); exists {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A movie with this title already exists")
	}
	if _, found := h.categories.GetByID(c.Context(), req.CategoryID); !found {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category does not exist")
	}

	movie := &models.Movie{
		Title:             req.Title,
		Synopsis:          req.Synopsis,
		ImageURL:          req.ImageURL,
		VideoSource:       req.VideoSource,
		ReleaseYear:       req.ReleaseYear,
		DurationInMinutes: req.DurationInMinutes,
		CategoryID:        req.CategoryID,
	}
	if res := h.movies.Save(c.Context(), movie); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to create movie")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create movie")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully", movie)
}

// Update godoc
// @Summary Update a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie request"
// @Success 200 {object} utils.StandardResponse "Movie updated"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Security BearerAuth
// @Router /movies/{id} [put]
func (h *MovieHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	existing, found := h.movies.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	}
	if other, exists := h.movies.FindSingle(c.Context(), repository.TitleEquals(req.Title)); exists && other.ID != id {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A movie with this title already exists")
	}
	if _, found := h.categories.GetByID(c.Context(), req.CategoryID); !found {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category does not exist")
	}

	previousImageURL := existing.ImageURL

	existing.Title = req.Title
	existing.Synopsis = req.Synopsis
	existing.ImageURL = req.ImageURL
	existing.VideoSource = req.VideoSource
	existing.ReleaseYear = req.ReleaseYear
	existing.DurationInMinutes = req.DurationInMinutes
	existing.CategoryID = req.CategoryID

	if res := h.movies.Update(c.Context(), existing); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to update movie")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update movie")
	}

	// Remove the replaced poster only once the row referencing it is gone.
	if req.ImageURL != previousImageURL {
		h.deleteStoredImage(previousImageURL)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Movie updated successfully", existing)
}

// Delete godoc
// @Summary Delete a movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie deleted"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Security BearerAuth
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	movie, found := h.movies.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	}

	if res := h.movies.Delete(c.Context(), movie); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to delete movie")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete movie")
	}

	h.deleteStoredImage(movie.ImageURL)
	return utils.SuccessResponse(c, fiber.StatusOK, "Movie deleted successfully", nil)
}

func (h *MovieHandler) deleteStoredImage(imageURL string) {
	if h.storage == nil || imageURL == "" || !strings.HasPrefix(imageURL, "http") {
		return
	}
	if err := h.storage.DeleteFile(imageURL); err != nil {
		h.logger.WithError(err).Warn("Failed to delete stored image")
	}
}
