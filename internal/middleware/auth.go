// Package middleware provides the HTTP middleware shared by every route.
package middleware

import (
	"errors"
	"fmt"
	"strings"

	"aihub/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware stores the config used by authentication and rate limiting
// and rebuilds Logger from its environment and level.
func InitMiddleware(c *config.Config) {
	cfg = c
	if c != nil {
		ConfigureLogger(c.Env, c.LogLevel)
	}
}

// ParseToken validates an HS256 token and returns its subject.
func ParseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("invalid token structure - missing subject")
	}
	return sub, nil
}

// OptionalAuth reads a bearer token when one is present and stores the user
// ID in c.Locals("userID"). Requests without a valid token continue anonymously.
func OptionalAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || cfg == nil {
		return c.Next()
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Next()
	}

	userID, err := ParseToken(parts[1], cfg.JWTSecret)
	if err != nil {
		Logger.DebugContext(c.UserContext(), "ignoring invalid bearer token", "error", err)
		return c.Next()
	}

	c.Locals("userID", userID)
	return c.Next()
}

// UserID returns the authenticated user ID, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals("userID").(string)
	return uid
}
