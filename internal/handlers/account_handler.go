package handlers

import (
	"time"

	"streamhub-backend/internal/middleware"
	"streamhub-backend/internal/services"
	"streamhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service services.AccountService
	logger  *logrus.Logger
}

func NewAccountHandler(service services.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account with name, email and password
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration request"
// @Success 201 {object} utils.StandardResponse "Account created"
// @Failure 400 {object} utils.StandardResponse "Validation failed"
// @Failure 409 {object} utils.StandardResponse "Email already registered"
// @Router /accounts/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	account, err := h.service.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Account registered successfully", account)
}

// Authenticate godoc
// @Summary Authenticate an account
// @Description Exchange email and password for an access token
// @Tags accounts
// @Accept json
// @Produce json
// @Param credentials body AuthenticateRequest true "Credentials"
// @Success 200 {object} utils.StandardResponse "Access token"
// @Failure 401 {object} utils.StandardResponse "Invalid credentials"
// @Router /accounts/authenticate [post]
func (h *AccountHandler) Authenticate(c *fiber.Ctx) error {
	var req AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	auth, err := h.service.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Authenticated successfully", TokenResponse{
		Token:     auth.Token,
		ExpiresAt: auth.ExpiresAt.Format(time.RFC3339),
		Account:   auth.Account,
	})
}

// SelectProfile godoc
// @Summary Select the active profile
// @Description Reissue the access token with active-profile claims
// @Tags accounts
// @Accept json
// @Produce json
// @Param selection body SelectProfileRequest true "Profile selection"
// @Success 200 {object} utils.StandardResponse "Access token with profile claims"
// @Failure 404 {object} utils.StandardResponse "Profile not found"
// @Security BearerAuth
// @Router /accounts/profiles/select [post]
func (h *AccountHandler) SelectProfile(c *fiber.Ctx) error {
	var req SelectProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if rejected, err := checkRequest(c, &req); rejected {
		return err
	}

	auth, err := h.service.SelectProfile(c.Context(), middleware.AccountID(c), req.ProfileID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Profile selected successfully", TokenResponse{
		Token:     auth.Token,
		ExpiresAt: auth.ExpiresAt.Format(time.RFC3339),
	})
}
