package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/orgball2608/reel-publisher-bot/internal/migrations"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/pressly/goose/v3"
)

const usage = "Usage: migrate [-dir internal/migrations] [up|down|status|reset|create <name>]"

func main() {
	dir := flag.String("dir", "internal/migrations", "directory of the migration files")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		log.Fatal(usage)
	}
	command := args[0]

	// create only writes a file
	if command == "create" {
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(nil, *dir, args[1], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Running migrations from: %s\n", *dir)

	switch command {
	case "up":
		if err := goose.Up(db, *dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, *dir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.Status(db, *dir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "reset":
		if err := goose.Reset(db, *dir); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
