package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"vendorhub-backend/internal/config"
	"vendorhub-backend/internal/dto"
)

// SubjectKey is the locals key under which SubjectContext stores the
// verified Clerk user id.
const SubjectKey = "clerk_subject"

var ErrNoSubject = errors.New("no authenticated subject in context")

// Protected verifies the bearer token as an RS256 Clerk session JWT
// against the instance JWKS endpoint. Any failure (missing header,
// malformed token, expired, signature mismatch) is a uniform 401.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		JWKSetURLs: []string{cfg.ClerkJWKSURL},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized",
			})
		},
	})
}

// SubjectContext runs after Protected. It checks the issuer and the
// authorized-party (azp) claim when configured, then binds the Clerk
// user id to request locals so handlers never touch raw claims.
func SubjectContext(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return unauthorized(c)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c)
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			return unauthorized(c)
		}

		if cfg.ClerkIssuer != "" {
			if iss, _ := claims["iss"].(string); iss != cfg.ClerkIssuer {
				return unauthorized(c)
			}
		}

		if len(cfg.ClerkAuthorizedParties) > 0 {
			azp, _ := claims["azp"].(string)
			if azp != "" && !contains(cfg.ClerkAuthorizedParties, azp) {
				return unauthorized(c)
			}
		}

		c.Locals(SubjectKey, sub)
		return c.Next()
	}
}

// GetSubject returns the Clerk user id bound by SubjectContext.
func GetSubject(c *fiber.Ctx) (string, error) {
	sub, ok := c.Locals(SubjectKey).(string)
	if !ok || sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
