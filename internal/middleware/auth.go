package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

var errNoUser = errors.New("no authenticated user in context")

// JWTProtected verifies the bearer token and stores the caller's id in
// c.Locals for GetUserID.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwt.SigningMethodHS256.Alg(), Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			userID, err := subjectFromToken(c)
			if err != nil {
				return unauthorized(c, "Unauthorized: invalid or expired token")
			}
			c.Locals(userIDKey, userID)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return unauthorized(c, "Unauthorized: missing or malformed token")
			}
			return unauthorized(c, "Unauthorized: invalid or expired token")
		},
	})
}

// GetUserID returns the id attached by JWTProtected.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errNoUser
	}
	return userID, nil
}

func subjectFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	// jwt/v5 only checks exp when present.
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return uuid.Nil, errors.New("missing exp claim")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
