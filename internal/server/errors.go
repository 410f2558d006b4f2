package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// errorHandler is the single place errors become HTTP responses. Rich errors
// carry their status in Code; anything else is treated as internal and the
// client sees an opaque message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiber.Map{"message": fiberErr.Message},
		})
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status < http.StatusBadRequest {
		status = statusFromCategory(richErr.Category)
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(
			"request failed",
			"error", richErr.Message,
			"category", richErr.Category,
			"path", c.OriginalURL(),
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)
		return c.Status(status).JSON(fiber.Map{
			"error": fiber.Map{"message": "internal server error"},
		})
	}

	s.logger.Info(
		"request rejected",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	body := fiber.Map{
		"message":   richErr.Message,
		"text_code": richErr.TextCode,
	}
	if len(richErr.Metadata) > 0 {
		body["details"] = richErr.Metadata
	}

	return c.Status(status).JSON(fiber.Map{"error": body})
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryValidation, errors.CategoryBadInput, errors.CategoryConflict:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
