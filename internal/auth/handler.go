package auth

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Operator is the tool's single login, taken from configuration at startup.
type Operator struct {
	Username     string
	PasswordHash []byte
}

func NewOperator(username, password string) (Operator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Operator{}, err
	}
	return Operator{Username: username, PasswordHash: hash}, nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginHandler(secret string, operator Operator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Username != operator.Username {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
		}
		if err := bcrypt.CompareHashAndPassword(operator.PasswordHash, []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
		}

		token, err := GenerateToken(secret, operator.Username)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not generate token")
		}

		return c.JSON(fiber.Map{
			"token":    token,
			"username": operator.Username,
		})
	}
}
