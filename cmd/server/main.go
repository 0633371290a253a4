package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	backend "github.com/bendright/backend"
	"github.com/bendright/backend/store"
)

func main() {
	cfg, err := backend.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer db.Close()

	if err := store.Init(ctx, db); err != nil {
		log.Fatalf("store init: %v", err)
	}

	users := store.NewUsers(db)
	sessions := store.NewSessions(db)

	auther := backend.NewAuthenticator(backend.NewStoreIdentityProvider(users), cfg)

	app := fiber.New(fiber.Config{
		AppName: "bendright",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	gate := backend.ProtectedRoute(cfg, auther.TokenService(), users)
	backend.RegisterRoutes(app,
		backend.NewAuthController(users, auther),
		backend.NewSessionController(sessions, cfg),
		gate,
	)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Printf("server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
