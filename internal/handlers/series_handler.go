package handlers

import (
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SeriesHandler struct {
	series     *repository.Repository[models.Series]
	episodes   *repository.Repository[models.Episode]
	categories *repository.Repository[models.Category]
	logger     *logrus.Logger
}

func NewSeriesHandler(series *repository.Repository[models.Series], episodes *repository.Repository[models.Episode], categories *repository.Repository[models.Category], logger *logrus.Logger) *SeriesHandler {
	return &SeriesHandler{
		series:     series,
		episodes:   episodes,
		categories: categories,
		logger:     logger,
	}
}

// List godoc
// @Summary List series
// @Tags series
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search in title and synopsis"
// @Success 200 {object} utils.StandardResponse "Series"
// @Router /series [get]
func (h *SeriesHandler) List(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	scopes := []repository.Scope{repository.Preload("Category"), repository.OrderBy("title ASC")}
	if search := c.Query("search"); search != "" {
		scopes = append(scopes, repository.TitleContains(search))
	}

	series, total := h.series.Paged(c.Context(), page, limit, scopes...)
	meta := utils.CreatePaginationMeta(page, limit, total, c.Path())
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Series retrieved successfully", series, meta)
}

// GetByID returns one series with its category and episodes preloaded.
func (h *SeriesHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	series, found := h.series.GetByID(c.Context(), id, repository.Preload("Category"), repository.Preload("Episodes"))
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Series not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Series retrieved successfully", series)
}

// Create godoc
// @Summary Create a series
// @Tags series
// @Accept json
// @Produce json
// @Param series body SeriesRequest true "Series request"
// @Success 201 {object} utils.StandardResponse "Series created"
// @Security BearerAuth
// @Router /series [post]
func (h *SeriesHandler) Create(c *fiber.Ctx) error {
	var req SeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	if _, exists := h.series.FindSingle(c.Context(), repository.TitleEquals(req.Title)); exists {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A series with this title already exists")
	}
	if _, found := h.categories.GetByID(c.Context(), req.CategoryID); !found {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category does not exist")
	}

	series := &models.Series{
		Title:       req.Title,
		Synopsis:    req.Synopsis,
		ImageURL:    req.ImageURL,
		ReleaseYear: req.ReleaseYear,
		CategoryID:  req.CategoryID,
	}
	if res := h.series.Save(c.Context(), series); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to create series")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create series")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Series created successfully", series)
}

// Update modifies an existing series.
func (h *SeriesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req SeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	existing, found := h.series.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Series not found")
	}
	if _, found := h.categories.GetByID(c.Context(), req.CategoryID); !found {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Category does not exist")
	}

	existing.Title = req.Title
	existing.Synopsis = req.Synopsis
	existing.ImageURL = req.ImageURL
	existing.ReleaseYear = req.ReleaseYear
	existing.CategoryID = req.CategoryID

	if res := h.series.Update(c.Context(), existing); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to update series")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update series")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Series updated successfully", existing)
}

// Delete removes a series. Episodes cascade at the store level.
func (h *SeriesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	series, found := h.series.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Series not found")
	}

	if res := h.series.Delete(c.Context(), series); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to delete series")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete series")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Series deleted successfully", nil)
}

// ListEpisodes returns the episodes of a series in watch order.
func (h *SeriesHandler) ListEpisodes(c *fiber.Ctx) error {
	seriesID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if _, found := h.series.GetByID(c.Context(), seriesID); !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Series not found")
	}

	episodes := h.episodes.FindAll(c.Context(),
		repository.BySeries(seriesID),
		repository.OrderBy("season_number ASC, episode_number ASC"),
	)
	return utils.SuccessResponse(c, fiber.StatusOK, "Episodes retrieved successfully", episodes)
}

// CreateEpisode adds an episode to a series.
func (h *SeriesHandler) CreateEpisode(c *fiber.Ctx) error {
	seriesID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req EpisodeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	if _, found := h.series.GetByID(c.Context(), seriesID); !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Series not found")
	}

	episode := &models.Episode{
		Title:             req.Title,
		Synopsis:          req.Synopsis,
		SeasonNumber:      req.SeasonNumber,
		EpisodeNumber:     req.EpisodeNumber,
		DurationInMinutes: req.DurationInMinutes,
		VideoSource:       req.VideoSource,
		SeriesID:          seriesID,
	}
	if res := h.episodes.Save(c.Context(), episode); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to create episode")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create episode")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Episode created successfully", episode)
}

// DeleteEpisode removes a single episode.
func (h *SeriesHandler) DeleteEpisode(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	episode, found := h.episodes.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Episode not found")
	}

	if res := h.episodes.Delete(c.Context(), episode); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to delete episode")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete episode")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Episode deleted successfully", nil)
}
