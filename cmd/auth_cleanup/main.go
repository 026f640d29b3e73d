package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"community/internal/database"
	"community/internal/repository"
)

// Deletes refresh records whose expiry has passed. Expired records never pass
// token verification, so this is housekeeping, not a security boundary.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	deleted, err := repository.NewRefreshRecordRepository(db).DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup refresh_records failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_records=%d", deleted)
}
