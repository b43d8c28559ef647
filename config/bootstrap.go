package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

// EnsureDatabase connects to the maintenance database and creates the
// application database when it does not exist yet. Runs before GORM opens
// its pool, so a fresh Postgres instance boots without manual setup.
func EnsureDatabase() error {
	name := os.Getenv("DB_DATABASE")
	if name == "" {
		return fmt.Errorf("DB_DATABASE is not set")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"))

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping maintenance database: %w", err)
	}

	var exists bool
	err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %s: %w", name, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot be parameterized; the name comes from our own
	// environment, not from request input.
	if _, err := db.Exec(fmt.Sprintf(`CREATE DATABASE %q`, name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}

	fmt.Printf("Database %s created\n", name)
	return nil
}
