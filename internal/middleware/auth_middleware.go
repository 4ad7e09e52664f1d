package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-stockledger/pkg/apperror"
	"go-stockledger/pkg/jwt"
)

// RequireAuth validates the session token, supplied either as a bearer header
// or as the access_token cookie, and sets the caller's identity in locals.
func RequireAuth(tokens *jwt.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies("access_token")
		}
		if tokenString == "" {
			return apperror.New(apperror.CodeAuth, "missing authorization token")
		}

		claims, err := tokens.ValidateAccessToken(tokenString)
		if err != nil {
			return apperror.New(apperror.CodeAuth, "invalid or expired token")
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("username", claims.Username)
		c.Locals("user_email", claims.Email)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
