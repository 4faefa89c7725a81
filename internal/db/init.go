package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"embed"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var sqlFiles embed.FS

var (
	db       *sql.DB
	dbErr    error
	dbCreate sync.Once
)

// GetDB opens the database once, creating it if needed.
func GetDB() *sql.DB {
	dbCreate.Do(func() {
		path := filepath.Join(xdg.DataHome, "plaza-server", "plaza-server.sqlite")
		db, dbErr = Open(path)
		if dbErr != nil {
			log.Fatalf("error getting db: %v", dbErr)
		}
	})
	return db
}

// Open opens the sqlite database at the given path, creating the file and
// the schema if needed. Tests point this at a temp directory.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating db dir: %w", err)
	}
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging db: %w", err)
	}

	schema, _ := sqlFiles.ReadFile("schema.sql")
	if _, err = database.Exec(string(schema)); err != nil {
		return nil, fmt.Errorf("error creating tables: %w", err)
	}
	return database, nil
}
