package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/stories-service/internal/api/dto"
	"github.com/spec-kit/stories-service/internal/service"
	apperrors "github.com/spec-kit/stories-service/pkg/util"
)

// AuthHandler exposes the signup and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Handle == "" || req.Secret == "" {
		return apperrors.NewValidationError("handle and secret required")
	}

	account, token, _, err := h.auth.Register(c.UserContext(), req.Handle, req.Secret)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "User created successfully",
		Account: dto.AccountResponse{ID: account.ID, Handle: account.Handle},
		Token:   token,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Handle == "" || req.Secret == "" {
		return apperrors.NewValidationError("handle and secret required")
	}

	account, token, _, err := h.auth.Authenticate(c.UserContext(), req.Handle, req.Secret)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Message: "Logged in successfully",
		Account: dto.AccountResponse{ID: account.ID, Handle: account.Handle},
		Token:   token,
	})
}
