package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/loadrush/loadrush-backend/internal/core/auth"
)

type AuthHandler struct {
	jwtService    *auth.JWTService
	adminEmail    string
	adminPassword string
}

func NewAuthHandler(jwtService *auth.JWTService, adminEmail, adminPassword string) *AuthHandler {
	return &AuthHandler{
		jwtService:    jwtService,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges the admin credentials for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.adminEmail == "" || h.adminPassword == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "admin login is not configured",
		})
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) == 1
	if !emailOK || !passOK {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, expiresIn, err := h.jwtService.GenerateToken(&auth.TokenClaims{
		Email: req.Email,
		Role:  "admin",
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
	})
}
