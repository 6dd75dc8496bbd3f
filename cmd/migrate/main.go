package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "", "path to the migrations directory (defaults to the nearest migrations/ above the working directory)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	migrationsPath := *dir
	if migrationsPath == "" {
		found, err := locateMigrationsDir()
		if err != nil {
			log.Fatal(err)
		}
		migrationsPath = found
	}
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://"+absPath, dbURL)
	if err != nil {
		log.Fatal(err)
	}

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}
	if err := run(m, cmd); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, cmd string) error {
	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Println("Migration up successful")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		log.Println("Migration down successful")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Printf("Schema version %d (dirty: %t)", version, dirty)
	default:
		return fmt.Errorf("unknown command %q, expected up, down or version", cmd)
	}
	return nil
}

// locateMigrationsDir walks from the working directory toward the filesystem
// root and returns the first migrations/ directory it finds, so the binary
// works from the repo root as well as from cmd/migrate.
func locateMigrationsDir() (string, error) {
	current, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(current, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no migrations directory found above %s, pass -dir", current)
		}
		current = parent
	}
}
