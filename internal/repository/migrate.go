package repository

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

// goose keeps dialect and base FS in package globals
var gooseMu sync.Mutex

// Migrate applies the embedded migrations for dialect ("sqlite3" or "postgres").
func Migrate(db *sql.DB, dialect string) error {
	dir, ok := map[string]string{"sqlite3": "migrations/sqlite", "postgres": "migrations/postgres"}[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
