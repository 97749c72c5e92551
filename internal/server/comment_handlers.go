package server

import (
	"aihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultCommentLimit = 10

// GetComments returns the threads of the item named by type and itemId.
func (s *Server) GetComments(c *fiber.Ctx) error {
	p := parsePagination(c, defaultCommentLimit)
	res, err := s.commentService.ListComments(c.UserContext(), c.Query("type"), c.Query("itemId"), p.Page, p.Limit)
	if err != nil {
		return respondError(c, err, "Failed to fetch comments")
	}
	return c.JSON(fiber.Map{"comments": res.Items, "pagination": res.Pagination})
}

// CreateComment adds a comment, or a reply when parentId is set.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req service.CreateCommentInput
	if !parseBody(c, &req) {
		return nil
	}
	comment, err := s.commentService.CreateComment(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
