package backend

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the API surface. The sessions group sits behind the
// auth gate; the auth endpoints and the health probe are public.
func RegisterRoutes(app *fiber.App, auth *AuthController, sessions *SessionController, gate fiber.Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", auth.Signup)
	authGroup.Post("/login", auth.Login)

	sessionGroup := api.Group("/sessions", gate)
	sessionGroup.Post("/", sessions.Create)
	sessionGroup.Get("/", sessions.List)
}
