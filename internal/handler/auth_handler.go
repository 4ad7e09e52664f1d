package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"go-stockledger/internal/service"
	"go-stockledger/pkg/config"
)

type AuthHandler struct {
	auth   service.AuthService
	jwtCfg config.JWTConfig
}

func NewAuthHandler(auth service.AuthService, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{auth: auth, jwtCfg: jwtCfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON()
	}

	user, err := h.auth.Register(&req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user.ToResponse(),
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON()
	}

	resp, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, "access_token", resp.AccessToken, h.jwtCfg.AccessTTL)
	h.setTokenCookie(c, "refresh_token", resp.RefreshToken, h.jwtCfg.RefreshTTL)

	return c.JSON(fiber.Map{
		"message":       "Login successful",
		"user":          resp.User,
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
	})
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	_ = c.BodyParser(&req)
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies("refresh_token")
	}

	access, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		return err
	}

	h.setTokenCookie(c, "access_token", access, h.jwtCfg.AccessTTL)

	return c.JSON(fiber.Map{
		"message":      "Token refreshed successfully",
		"access_token": access,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refresh := c.Cookies("refresh_token")
	if refresh == "" {
		var req refreshRequest
		_ = c.BodyParser(&req)
		refresh = req.RefreshToken
	}
	if err := h.auth.Logout(refresh); err != nil {
		return err
	}

	h.clearTokenCookie(c, "access_token")
	h.clearTokenCookie(c, "refresh_token")

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

func (h *AuthHandler) clearTokenCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
