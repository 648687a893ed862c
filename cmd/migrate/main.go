package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"civicwatch/config"
	"civicwatch/internal/domain"
	"civicwatch/pkg/database"
)

const usage = `
CivicWatch - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all migrations (SQL + GORM)
  status      Show database connection status

Flags:
  -migrations string   Path to migrations directory (default "migrations")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	database.Connect(cfg)

	switch flag.Arg(0) {
	case "up":
		if _, err := os.Stat(*migrationsDir); err == nil {
			if err := database.ApplyRawMigrations(*migrationsDir); err != nil {
				log.Fatalf("Failed to apply raw migrations: %v", err)
			}
		}
		if err := database.DB.AutoMigrate(
			&domain.User{},
			&domain.PaymentIntent{},
			&domain.Complaint{},
			&domain.RTIRequest{},
			&domain.APIKey{},
		); err != nil {
			log.Fatalf("Failed to apply GORM migrations: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		if err := database.HealthCheck(); err != nil {
			log.Fatalf("Database unhealthy: %v", err)
		}
		log.Println("Database connection healthy")
	default:
		fmt.Print(usage)
		os.Exit(1)
	}
}
