// Package sqlite is the embedded delivery journal backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/maxviazov/cricket-scoring-service/internal/repository"
)

// Store owns the sqlite handle. The journal is single-writer, so one connection
// is enough and also keeps ":memory:" databases alive across calls.
type Store struct {
	db         *sql.DB
	deliveries *deliveryRepository
	tx         *txManager
}

// Open opens (creating if needed) the database at path and applies migrations.
// An empty path or ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	if err := repository.Migrate(db, "sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, deliveries: &deliveryRepository{db: db}, tx: &txManager{db: db}}, nil
}

func (s *Store) Deliveries() repository.DeliveryRepository { return s.deliveries }
func (s *Store) Tx() repository.TxManager                  { return s.tx }
func (s *Store) Ping(ctx context.Context) error            { return s.db.PingContext(ctx) }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ repository.Store = (*Store)(nil)

// q is the query surface shared by *sql.DB and *sql.Tx.
type q interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func getQ(ctx context.Context, db *sql.DB) q {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return db
}

type txManager struct{ db *sql.DB }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	// already inside a transaction: join it
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return fn(ctx)
	}
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback()
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

var _ repository.TxManager = (*txManager)(nil)

// mapError translates sqlite constraint failures to repository errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return repository.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return repository.ErrConflict
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrAlreadyExists
	}
	return err
}
