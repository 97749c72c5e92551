package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"aihub/internal/models"
	"aihub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "aihub-api"
	tokenAudience = "aihub-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	now       func() time.Time
}

// NewAuthService creates an auth service signing tokens with jwtSecret.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: jwtSecret, now: time.Now}
}

// LoginResult is the authenticated user and their token.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login checks the password against the stored bcrypt hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, models.NewInternalError(err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (s *AuthService) generateToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

// HashPassword returns the bcrypt hash stored for a password. A cost of 0
// uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
