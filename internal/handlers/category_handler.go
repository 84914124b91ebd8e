package handlers

import (
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	categories *repository.Repository[models.Category]
	movies     *repository.Repository[models.Movie]
	logger     *logrus.Logger
}

func NewCategoryHandler(categories *repository.Repository[models.Category], movies *repository.Repository[models.Movie], logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		movies:     movies,
		logger:     logger,
	}
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} utils.StandardResponse "Categories"
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories := h.categories.GetAll(c.Context(), repository.OrderBy("name ASC"))
	return utils.SuccessResponse(c, fiber.StatusOK, "Categories retrieved successfully", categories)
}

// GetByID godoc
// @Summary Get a category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.StandardResponse "Category"
// @Failure 404 {object} utils.StandardResponse "Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	category, found := h.categories.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category retrieved successfully", category)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category request"
// @Success 201 {object} utils.StandardResponse "Category created"
// @Failure 409 {object} utils.StandardResponse "Duplicate category name"
// @Security BearerAuth
// @Router /categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	// Name uniqueness is a convention checked here, not a store constraint.
	if _, exists := h.categories.FindSingle(c.Context(), repository.NameEquals(req.Name)); exists {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A category with this name already exists")
	}

	category := &models.Category{Name: req.Name}
	if res := h.categories.Save(c.Context(), category); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to create category")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create category")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Category created successfully", category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body CategoryRequest true "Category request"
// @Success 200 {object} utils.StandardResponse "Category updated"
// @Failure 404 {object} utils.StandardResponse "Category not found"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	existing, found := h.categories.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}

	if other, exists := h.categories.FindSingle(c.Context(), repository.NameEquals(req.Name)); exists && other.ID != id {
		return utils.ErrorResponse(c, fiber.StatusConflict, "A category with this name already exists")
	}

	existing.Name = req.Name
	if res := h.categories.Update(c.Context(), existing); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to update category")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category updated successfully", existing)
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.StandardResponse "Category deleted"
// @Failure 404 {object} utils.StandardResponse "Category not found"
// @Failure 409 {object} utils.StandardResponse "Category still referenced"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	category, found := h.categories.GetByID(c.Context(), id)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found")
	}

	if count, err := h.movies.Count(c.Context(), repository.ByCategory(id)); err == nil && count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Category is still referenced by movies")
	}

	if res := h.categories.Delete(c.Context(), category); !res.IsSuccess {
		h.logger.WithField("message", res.Message).Error("Failed to delete category")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category deleted successfully", nil)
}
