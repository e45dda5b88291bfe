package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Cyrivelus/stockpro/internal/application/dto"
	"github.com/Cyrivelus/stockpro/pkg/jwt"
)

// Clé Locals pour l'identité de l'utilisateur dans Fiber.
const LocalUserID = "user_id"

// AuthMiddleware valide le Bearer Token JWT et place l'identité (created_by)
// dans c.Locals. Le moteur ne gère pas les comptes : il fait confiance au
// jeton émis par la couche d'authentification amont.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "en-tête Authorization requis"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format attendu : Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "jeton vide"})
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "jeton invalide ou expiré"})
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// GetUserID retourne l'identité du contexte (après le middleware d'auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
