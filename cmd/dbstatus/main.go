// Command dbstatus probes the knowledge base database and reports what
// has been ingested. It is a standalone diagnostic with no flags.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nrivera/botkb/internal/db"
)

func main() {
	_ = godotenv.Load(".env")

	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getenv("POSTGRES_USER", "postgres"),
			getenv("POSTGRES_PASSWORD", "postgres"),
			getenv("POSTGRES_HOST", "localhost"),
			getenv("POSTGRES_PORT", "5432"),
			getenv("POSTGRES_DB", "botkb"))
	}
	fmt.Printf("connection: %s\n", dsn)

	database, err := db.NewDatabase(db.Config{DSN: dsn, AppName: "dbstatus"})
	if err != nil {
		fail("database connection failed: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		fail("database ping failed: %v", err)
	}
	fmt.Println("database connection ok")

	stats, err := db.NewSearchRepository(database).SourceStats(context.Background())
	if err != nil {
		fail("could not read source stats: %v", err)
	}
	if len(stats) == 0 {
		fmt.Println("no sources ingested yet")
		return
	}
	fmt.Println("\ningested sources:")
	for _, s := range stats {
		fmt.Printf("  %-20s %6d chunks  updated %s\n", s.Source, s.Chunks, s.UpdatedAt.Format(time.RFC3339))
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
