// Command seed provisions the database schema and creates the two initial
// test accounts (one admin, one regular user).  It is idempotent: existing
// tables and accounts are left alone.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/database"
	"github.com/iliyamo/secure-auth-api/internal/model"
	"github.com/iliyamo/secure-auth-api/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	users := repository.NewUserRepo(db)

	seed := []repository.NewUser{
		{Email: "admin@test.com", Password: "Password123!", FirstName: "Admin", LastName: "User", Role: model.RoleAdmin},
		{Email: "user@test.com", Password: "Password123!", FirstName: "Regular", LastName: "User", Role: model.RoleUser},
	}
	for _, n := range seed {
		u, err := users.Create(ctx, n, cfg.BcryptCost)
		if errors.Is(err, repository.ErrEmailExists) {
			log.Printf("user already exists: %s", n.Email)
			continue
		}
		if err != nil {
			log.Fatalf("seed %s: %v", n.Email, err)
		}
		log.Printf("created %s user: %s (%s)", u.Role, u.Email, u.UserID)
	}
	log.Printf("seeding complete")
}
