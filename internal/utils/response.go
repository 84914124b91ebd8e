package utils

import (
	"streamhub-backend/internal/pagination"

	"github.com/gofiber/fiber/v2"
)

// StandardResponse represents the standard API response format
type StandardResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// PaginationMeta represents pagination metadata, including navigation links
// for the adjacent pages when they exist.
type PaginationMeta struct {
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	Total       int64   `json:"total"`
	TotalPages  int     `json:"total_pages"`
	HasNext     bool    `json:"has_next"`
	HasPrevious bool    `json:"has_previous"`
	Next        *string `json:"next,omitempty"`
	Previous    *string `json:"previous,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// SuccessWithMetaResponse sends a success response with pagination meta
func SuccessWithMetaResponse(c *fiber.Ctx, code int, message string, data interface{}, meta interface{}) error {
	return c.Status(code).JSON(StandardResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// ErrorWithDataResponse sends an error response with additional data
func ErrorWithDataResponse(c *fiber.Ctx, code int, message string, data interface{}) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(StandardResponse{
		Status:  status,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// CreatePaginationMeta creates pagination metadata. basePath is the request
// path used to build next/previous links. The page math and links come from
// the pagination package so list endpoints and the metadata never disagree.
func CreatePaginationMeta(page, limit int, total int64, basePath string) PaginationMeta {
	meta := PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: 1,
	}

	p, err := pagination.NewFromCount[struct{}](nil, total, page, limit, basePath)
	if err != nil {
		return meta
	}
	if p.TotalPages > 0 {
		meta.TotalPages = p.TotalPages
	}
	meta.HasNext = p.Next != nil
	meta.HasPrevious = p.Previous != nil
	meta.Next = p.Next
	meta.Previous = p.Previous
	return meta
}
