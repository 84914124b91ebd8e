package handlers

import (
	"streamhub-backend/internal/middleware"
	"streamhub-backend/internal/models"
	"streamhub-backend/internal/profiles"
	"streamhub-backend/internal/repository"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	manager *profiles.Manager
	logger  *logrus.Logger
}

func NewProfileHandler(manager *profiles.Manager, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		manager: manager,
		logger:  logger,
	}
}

// List godoc
// @Summary List the account's profiles
// @Tags profiles
// @Produce json
// @Success 200 {object} utils.StandardResponse "Profiles"
// @Security BearerAuth
// @Router /profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	result, err := h.manager.GetAll(c.Context(), middleware.AccountID(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profiles retrieved successfully", result)
}

// GetByID returns one of the account's profiles.
func (h *ProfileHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	profile, err := h.manager.GetByID(c.Context(), middleware.AccountID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if profile == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", profile)
}

// Create godoc
// @Summary Create a profile
// @Description Create a profile under the authenticated account, subject to the profile quota
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile request"
// @Success 201 {object} utils.StandardResponse "Profile created"
// @Failure 403 {object} utils.StandardResponse "Profile quota reached"
// @Security BearerAuth
// @Router /profiles [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	profile := &models.Profile{
		Name:    req.Name,
		IsChild: req.IsChild,
		Avatar:  req.Avatar,
	}
	res, err := h.manager.Save(c.Context(), middleware.AccountID(c), profile)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !res.IsSuccess {
		return utils.ErrorResponse(c, statusForResult(res), res.Message)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, res.Message, profile)
}

// Update modifies one of the account's profiles.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	profile := &models.Profile{
		Base:    models.Base{ID: id},
		Name:    req.Name,
		IsChild: req.IsChild,
		Avatar:  req.Avatar,
	}
	res, err := h.manager.Update(c.Context(), middleware.AccountID(c), profile)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !res.IsSuccess {
		return utils.ErrorResponse(c, statusForResult(res), res.Message)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res.Message, profile)
}

// Delete removes one of the account's profiles.
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.manager.Delete(c.Context(), middleware.AccountID(c), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if !res.IsSuccess {
		return utils.ErrorResponse(c, statusForResult(res), res.Message)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res.Message, nil)
}

// statusForResult maps the manager's business failures to status codes.
func statusForResult(res repository.Result) int {
	switch res.Message {
	case profiles.MsgQuotaReached:
		return fiber.StatusForbidden
	case profiles.MsgProfileNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
