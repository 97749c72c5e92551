package server

import (
	"aihub/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type toggleLikeRequest struct {
	UserID string `json:"userId"`
	Type   string `json:"type"`
	ItemID string `json:"itemId"`
}

// ToggleLike likes the item for the user, or removes an existing like.
// The body's userId wins; an authenticated caller may omit it.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	var req toggleLikeRequest
	if !parseBody(c, &req) {
		return nil
	}
	userID := req.UserID
	if userID == "" {
		userID = middleware.UserID(c)
	}

	liked, err := s.likeService.Toggle(c.UserContext(), userID, req.Type, req.ItemID)
	if err != nil {
		return respondError(c, err, "Failed to toggle like")
	}
	return c.JSON(fiber.Map{"liked": liked})
}
