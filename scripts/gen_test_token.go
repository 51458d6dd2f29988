package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"codeberg.org/quickai/server/internal/auth"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/users"
)

func main() {
	premium := flag.Bool("premium", false, "put the test user on the premium plan")
	admin := flag.Bool("admin", false, "mark the token as an admin token")
	flag.Parse()

	// load environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConnString := os.Getenv("DATABASE_URL")
	if dbConnString == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()

	dbPool, err := pgxpool.New(ctx, dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repo := users.NewRepository(dbPool)

	user, err := repo.FindOrCreateByProvider(ctx, "test", "test-user-123", "test@quickai.dev", "Test User", "")
	if err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}

	plan := usage.PlanFree
	if *premium {
		plan = usage.PlanPremium
	}

	if user, err = repo.SetPlan(ctx, user.ID, plan); err != nil {
		log.Fatalf("Failed to set plan: %v", err)
	}

	fmt.Printf("Using test user %s (ID: %s, plan: %s, free usage: %d)\n", user.Email, user.ID, user.Plan, user.FreeUsage)

	issuer, err := auth.NewTokenIssuer(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}

	token, err := issuer.Generate(user.ID, user.Email, *admin)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("\nTest JWT Token:\n%s\n\n", token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
