package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/database"
	"github.com/iliyamo/secure-auth-api/internal/handler"
	"github.com/iliyamo/secure-auth-api/internal/queue"
	"github.com/iliyamo/secure-auth-api/internal/repository"
	"github.com/iliyamo/secure-auth-api/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	cancel()

	// Redis backs the login rate limiter; nil degrades it to a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, login rate limiting disabled")
	}

	// Audit stream is optional; without a broker URL the publisher is nil
	// and no consumer is started.
	audit := queue.NewPublisher(cfg.AMQPURL)
	if audit != nil {
		go func() {
			if err := queue.StartAuditConsumer(cfg.AMQPURL); err != nil {
				log.Printf("audit consumer: %v", err)
			}
		}()
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens, audit)
	userHandler := handler.NewUserHandler(cfg, users, tokens)

	e := echo.New()
	e.Use(echomw.Logger())  // per-request log lines
	e.Use(echomw.Recover()) // contain handler panics

	router.RegisterRoutes(e, cfg, authHandler, userHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
