package backend

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"github.com/bendright/backend/store"
)

const sessionDateLayout = "2006-01-02"

// SessionController serves the practice-session endpoints. Both handlers run
// behind the auth gate and read the actor the gate attached.
type SessionController struct {
	Sessions   store.Sessions
	Logger     Logger
	ContextKey string
}

// NewSessionController wires the controller with its collaborators.
func NewSessionController(sessions store.Sessions, cfg Config) *SessionController {
	return &SessionController{
		Sessions:   sessions,
		Logger:     defLogger{},
		ContextKey: cfg.GetContextKey(),
	}
}

// SessionRequest payload
type SessionRequest struct {
	Status string `json:"status"`
	Date   string `json:"date"`
	Asana  string `json:"asana"`
}

// Validate will run validation rules
func (r SessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Status,
			validation.Required,
		),
		validation.Field(
			&r.Date,
			validation.Required,
		),
		validation.Field(
			&r.Asana,
			validation.Required,
		),
	)
}

// Create logs a practice session for the authenticated user.
func (s *SessionController) Create(c *fiber.Ctx) error {
	actor, ok := ActorFromFiber(c, s.ContextKey)
	if !ok {
		return unauthorized(c)
	}

	payload := new(SessionRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	status, err := store.ParseStatus(payload.Status)
	if err != nil {
		return badRequest(c, err.Error())
	}

	date, err := time.Parse(sessionDateLayout, payload.Date)
	if err != nil {
		return badRequest(c, "date must use the YYYY-MM-DD format")
	}

	record, err := s.Sessions.Create(c.UserContext(), &store.Session{
		UserID: actor.UserID,
		Status: status,
		Date:   date,
		Asana:  payload.Asana,
	})
	if err != nil {
		s.Logger.Error("Session create error", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// List returns the authenticated user's sessions, newest first.
func (s *SessionController) List(c *fiber.Ctx) error {
	actor, ok := ActorFromFiber(c, s.ContextKey)
	if !ok {
		return unauthorized(c)
	}

	records, err := s.Sessions.ByUser(c.UserContext(), actor.UserID)
	if err != nil {
		s.Logger.Error("Session list error", "error", err)
		return internalError(c)
	}

	return c.JSON(records)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "authentication required",
	})
}
