package handlers

import (
	"strconv"

	"streamhub-backend/internal/apperr"
	"streamhub-backend/internal/utils"
	"streamhub-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondError translates an application error into the response envelope.
// Internal causes are logged server-side; clients get the safe message only.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	code := apperr.Status(err)
	if code >= fiber.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Request failed")
	}
	return utils.ErrorResponse(c, code, apperr.ClientMessage(err))
}

// checkRequest runs declarative validation and writes the 400 response with
// the field/message list when the request is invalid. Returns true when the
// request was rejected.
func checkRequest(c *fiber.Ctx, req interface{}) (bool, error) {
	if errs := validation.Check(req); errs != nil {
		return true, utils.ErrorWithDataResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}
	return false, nil
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, apperr.BadRequest("Invalid " + param)
	}
	return uint(id), nil
}

// pageParams reads and clamps pagination query parameters.
func pageParams(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
