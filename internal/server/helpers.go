package server

import (
	"strconv"

	"aihub/internal/middleware"
	"aihub/internal/models"
	"aihub/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const maxPaginationLimit = 100

// Page is the parsed page/limit query pair.
type Page struct {
	Page  int
	Limit int
}

// parsePagination reads page and limit. Missing, non-numeric or out of range
// values fall back to page 1 and defaultLimit; limit is capped.
func parsePagination(c *fiber.Ctx, defaultLimit int) Page {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return Page{Page: page, Limit: limit}
}

// listQuery builds the content query from the request's filters and viewer.
func listQuery(c *fiber.Ctx, defaultLimit int) repository.ListQuery {
	p := parsePagination(c, defaultLimit)
	return repository.NewListQuery(p.Page, p.Limit).
		WithCategory(c.Query("category")).
		WithSearch(c.Query("search")).
		WithViewer(middleware.UserID(c))
}

// respondError writes err with its mapped status. Server errors are logged
// and replaced by message so internals never reach the client.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), message,
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return c.Status(status).JSON(models.ErrorResponse{
			Error: message,
			Code:  models.CodeInternal,
		})
	}
	return models.RespondWithError(c, status, err)
}

// parseBody decodes a JSON body, answering 400 on malformed input.
// Callers return nil when ok is false.
func parseBody(c *fiber.Ctx, dest any) (ok bool) {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return false
	}
	return true
}
