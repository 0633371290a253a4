package backend

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/bendright/backend/store"
)

// AuthController serves the signup and login endpoints.
type AuthController struct {
	Users  store.Users
	Auther Authenticator
	Logger Logger
}

// NewAuthController wires the controller with its collaborators.
func NewAuthController(users store.Users, auther Authenticator) *AuthController {
	return &AuthController{
		Users:  users,
		Auther: auther,
		Logger: defLogger{},
	}
}

// SignupRequest payload
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Name,
			validation.Required,
			validation.Length(1, 120),
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(8, 0),
		),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// Signup registers a new user and issues a token right away. The duplicate
// check folds the email to lower case, matching the lookup used at login.
func (a *AuthController) Signup(c *fiber.Ctx) error {
	payload := new(SignupRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := a.Users.ByEmail(c.UserContext(), payload.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": ErrDuplicateEmail.Error(),
		})
	} else if !errors.Is(err, store.ErrNotFound) {
		a.Logger.Error("Signup email lookup error", "error", err)
		return internalError(c)
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		a.Logger.Error("Signup password hash error", "error", err)
		return internalError(c)
	}

	user, err := a.Users.Create(c.UserContext(), &store.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hash,
	})
	if err != nil {
		a.Logger.Error("Signup create user error", "error", err)
		return internalError(c)
	}

	token, err := a.Auther.TokenService().Generate(NewIdentityFromUser(user))
	if err != nil {
		a.Logger.Error("Signup token generation error", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"token":   token,
	})
}

// Login verifies credentials and issues a fresh token. Every failed attempt
// gets the same unauthorized payload, carrying no enumeration signal.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	token, identity, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			a.Logger.Error("Login error", "error", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": ErrInvalidCredentials.Error(),
		})
	}

	userID, err := strconv.ParseInt(identity.ID(), 10, 64)
	if err != nil {
		a.Logger.Error("Login identity id parse error", "id", identity.ID())
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user_id": userID,
		"name":    identity.Username(),
		"email":   identity.Email(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "internal server error",
	})
}
