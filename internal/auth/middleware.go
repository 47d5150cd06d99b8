package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/stories-service/pkg/util"
)

const accountIDKey = "auth_account_id"

// Middleware is the single authentication choke point: every protected route
// passes through Handle before any downstream component runs.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the gate around a token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle extracts and verifies the bearer token. A missing or malformed
// header yields 401; a token that fails verification or has expired yields
// 403. On success the account id is attached to the request context.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	accountID, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewForbidden("invalid token")
	}

	c.Locals(accountIDKey, accountID)
	return c.Next()
}

// AccountIDFromContext retrieves the verified account id set by Handle.
func AccountIDFromContext(c *fiber.Ctx) (int64, bool) {
	val := c.Locals(accountIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}
