package server

import (
	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks email and password and returns the user with a bearer token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !parseBody(c, &req) {
		return nil
	}

	res, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Login failed")
	}
	return c.JSON(res)
}
