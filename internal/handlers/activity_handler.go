package handlers

import (
	"time"

	"streamhub-backend/internal/middleware"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/profiles"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ActivityHandler serves per-profile bookmarks and watch history. Every
// route verifies the profile belongs to the authenticated account first.
type ActivityHandler struct {
	manager   *profiles.Manager
	bookmarks *repository.Repository[models.BookmarkedMovie]
	watched   *repository.Repository[models.WatchedMovie]
	movies    *repository.Repository[models.Movie]
	logger    *logrus.Logger
}

func NewActivityHandler(manager *profiles.Manager, bookmarks *repository.Repository[models.BookmarkedMovie], watched *repository.Repository[models.WatchedMovie], movies *repository.Repository[models.Movie], logger *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{
		manager:   manager,
		bookmarks: bookmarks,
		watched:   watched,
		movies:    movies,
		logger:    logger,
	}
}

// ListBookmarks godoc
// @Summary List a profile's bookmarked movies
// @Tags activity
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} utils.StandardResponse "Bookmarks"
// @Security BearerAuth
// @Router /profiles/{id}/bookmarks [get]
func (h *ActivityHandler) ListBookmarks(c *fiber.Ctx) error {
	profileID, err := h.ownedProfile(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if profileID == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}

	bookmarks := h.bookmarks.FindAll(c.Context(),
		repository.ByProfile(profileID),
		repository.Preload("Movie"),
		repository.OrderBy("created_at DESC"),
	)
	return utils.SuccessResponse(c, fiber.StatusOK, "Bookmarks retrieved successfully", bookmarks)
}

// AddBookmark bookmarks a movie for the profile.
func (h *ActivityHandler) AddBookmark(c *fiber.Ctx) error {
	profileID, err := h.ownedProfile(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if profileID == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}

	var req BookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	if _, found := h.movies.GetByID(c.Context(), req.MovieID); !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	}
	if _, exists := h.bookmarks.FindSingle(c.Context(), repository.ByProfile(profileID), repository.ByMovie(req.MovieID)); exists {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Movie is already bookmarked")
	}

	bookmark := &models.BookmarkedMovie{ProfileID: profileID, MovieID: req.MovieID}
	if res := h.bookmarks.Save(c.Context(), bookmark); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to save bookmark")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save bookmark")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie bookmarked successfully", bookmark)
}

// RemoveBookmark deletes a bookmark.
func (h *ActivityHandler) RemoveBookmark(c *fiber.Ctx) error {
	profileID, err := h.ownedProfile(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if profileID == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}

	movieID, err := parseID(c, "movieId")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	bookmark, found := h.bookmarks.FindSingle(c.Context(), repository.ByProfile(profileID), repository.ByMovie(movieID))
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Bookmark not found")
	}

	if res := h.bookmarks.Delete(c.Context(), bookmark); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to delete bookmark")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete bookmark")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Bookmark removed successfully", nil)
}

// ListWatched returns the profile's watch history, most recent first.
func (h *ActivityHandler) ListWatched(c *fiber.Ctx) error {
	profileID, err := h.ownedProfile(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if profileID == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}

	watched := h.watched.FindAll(c.Context(),
		repository.ByProfile(profileID),
		repository.Preload("Movie"),
		repository.OrderBy("watched_at DESC"),
	)
	return utils.SuccessResponse(c, fiber.StatusOK, "Watch history retrieved successfully", watched)
}

// MarkWatched records that the profile watched a movie. Rewatching refreshes
// the existing entry instead of duplicating it.
func (h *ActivityHandler) MarkWatched(c *fiber.Ctx) error {
	profileID, err := h.ownedProfile(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if profileID == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}

	var req WatchedRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	if _, found := h.movies.GetByID(c.Context(), req.MovieID); !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	}

	if existing, found := h.watched.FindSingle(c.Context(), repository.ByProfile(profileID), repository.ByMovie(req.MovieID)); found {
		existing.WatchedAt = time.Now().UTC()
		if res := h.watched.Update(c.Context(), existing); !res.IsSuccess {
			h.logger.WithField("message", res.Message).Error("Failed to update watch entry")
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update watch entry")
		}
		return utils.SuccessResponse(c, fiber.StatusOK, "Watch entry refreshed", existing)
	}

	entry := &models.WatchedMovie{ProfileID: profileID, MovieID: req.MovieID, WatchedAt: time.Now().UTC()}
	if res := h.watched.Save(c.Context(), entry); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to save watch entry")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save watch entry")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie marked as watched", entry)
}

// ownedProfile resolves the :id route param to a profile owned by the
// authenticated account. Returns 0 when the account does not own it.
func (h *ActivityHandler) ownedProfile(c *fiber.Ctx) (uint, error) {
	profileID, err := parseID(c, "id")
	if err != nil {
		return 0, err
	}

	profile, err := h.manager.GetByID(c.Context(), middleware.AccountID(c), profileID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, nil
	}
	return profile.ID, nil
}
