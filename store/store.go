// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/updateshub/auth"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Store is the access layer over the blog tables. All queries are written
// with ? placeholders and rebound for the connected driver.
type Store struct {
	db  *sqlx.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// DB exposes the underlying connection (health checks, tests)
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Ping reports whether the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (s *Store) get(ctx context.Context, q queryer, dest interface{}, query string, args ...interface{}) error {
	return q.GetContext(ctx, dest, q.Rebind(query), args...)
}

func (s *Store) selectAll(ctx context.Context, q queryer, dest interface{}, query string, args ...interface{}) error {
	return q.SelectContext(ctx, dest, q.Rebind(query), args...)
}

func (s *Store) exec(ctx context.Context, q queryer, query string, args ...interface{}) (sql.Result, error) {
	return q.ExecContext(ctx, q.Rebind(query), args...)
}

// withTx runs fn in a transaction, committing only when fn succeeds
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// execAffecting runs a statement and returns ErrNotFound when no row changed
func (s *Store) execAffecting(ctx context.Context, q queryer, query string, args ...interface{}) error {
	res, err := s.exec(ctx, q, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func newID() (string, error) {
	return auth.GenerateID(12)
}

// isUniqueViolation recognises unique-constraint failures from both drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// round1 rounds an average to one decimal place
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
