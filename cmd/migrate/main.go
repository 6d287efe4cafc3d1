// Package main implements the database migration utility for the campaign engine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/infrastructure/migrate"
)

const (
	defaultMigrationsPath = "./migrations"
	defaultMigrateSteps   = 1
	defaultConfigPath     = "config.yaml"
)

func main() {
	var (
		migrationsPath string
		configPath     string
		steps          int
	)

	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.StringVar(&configPath, "config", defaultConfigPath, "Config file used when DATABASE_URL is unset")
	flag.IntVar(&steps, "steps", defaultMigrateSteps, "Number of migrations to run")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("DATABASE_URL is unset and config could not be loaded: %v", err)
		}
		databaseURL = cfg.Database.GetURL()
	}

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("Please specify a command: up, down, or version")
	}
	command := args[0]

	runner := migrate.NewRunner(&migrate.Config{
		DatabaseURL:    databaseURL,
		MigrationsPath: migrationsPath,
	})

	switch command {
	case "up":
		if err := runner.Steps(steps); err != nil {
			log.Fatalf("Failed to run migrations up: %v", err)
		}
		reportVersion(runner, "Successfully migrated to version %d")

	case "down":
		if err := runner.Steps(-steps); err != nil {
			log.Fatalf("Failed to run migrations down: %v", err)
		}
		reportVersion(runner, "Successfully rolled back to version %d")

	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		if dirty {
			fmt.Printf("Current version: %d (dirty)\n", version)
		} else {
			fmt.Printf("Current version: %d\n", version)
		}

	default:
		log.Fatalf("Unknown command: %s. Use 'up', 'down', or 'version'", command)
	}
}

func reportVersion(runner *migrate.Runner, format string) {
	version, dirty, err := runner.Version()
	if err != nil {
		log.Printf("Error getting migration version: %v", err)
		return
	}
	if dirty {
		log.Printf("WARNING: Database is in dirty state at version %d", version)
		return
	}
	log.Printf(format, version)
}
