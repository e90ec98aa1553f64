package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret      []byte
	accessTokenTTL = 15 * time.Minute
)

// SetJWTConfig installs the signing secret and access-token lifetime. Must
// be called once at startup before any token is issued or verified.
func SetJWTConfig(secret string, ttl time.Duration) {
	jwtSecret = []byte(secret)
	if ttl > 0 {
		accessTokenTTL = ttl
	}
}

// Claims carried in agent access tokens.
type Claims struct {
	AgentID int    `json:"agent_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT issues an access token for an agent.
func GenerateJWT(agentID int, email string) (string, error) {
	claims := Claims{
		AgentID: agentID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// JWTMiddleware validates the Authorization bearer token and stores the
// agent identity in the request locals.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Authorization token required",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token format",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(401).JSON(fiber.Map{
				"success": false,
				"message": "Invalid token claims",
			})
		}

		c.Locals("agent_id", claims.AgentID)
		c.Locals("agent_email", claims.Email)

		return c.Next()
	}
}
