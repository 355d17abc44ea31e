package middleware

import (
	"fmt"
	"strings"

	"formations-backend/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "

	// Locals keys populated by Protected for downstream handlers.
	UserIDKey         = "userID"
	OrganizationIDKey = "organizationID"
	RoleKey           = "role"
)

// Claims are the JWT claims the identity service issues. The org and role
// travel in the token so the request layer never reads membership tables.
type Claims struct {
	UserID         string `json:"sub"`
	OrganizationID string `json:"org"`
	Role           string `json:"role"`
	TokenType      string `json:"token_type"`
	jwt.RegisteredClaims
}

// Protected requires a valid access token and stores the caller's
// identity, organization and role in the request locals.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Authorization header is missing"))
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Authorization scheme is not Bearer"))
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Token is empty"))
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.NewErrorResponse("Invalid or expired token"))
		}

		if claims.TokenType != "" && claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(
				dto.NewErrorResponse(fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType)))
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(OrganizationIDKey, claims.OrganizationID)
		c.Locals(RoleKey, claims.Role)

		return c.Next()
	}
}

// RequireRole allows the request through only when the caller's role is in
// the allow-list. Runs after Protected.
func RequireRole(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = true
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(RoleKey).(string)
		if !allowedSet[role] {
			return c.Status(fiber.StatusForbidden).JSON(
				dto.NewErrorResponse("Insufficient permissions for this operation"))
		}
		return c.Next()
	}
}
