// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names as registered by lib/pq and modernc.org/sqlite
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	// Queries are written with ? placeholders and rebound per driver.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to the database named by dbType ("sqlite" or "postgres"),
// verifies the connection and returns it ready for CreateSchema.
func Open(ctx context.Context, dbType, dsn string) (*sqlx.DB, error) {
	var driver string
	switch dbType {
	case "postgres":
		driver = DriverPostgres
	case "sqlite", "":
		driver = DriverSQLite
		dsn = SQLiteDSN(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if driver == DriverSQLite {
		// Single writer; also keeps :memory: databases on one connection.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// SQLiteDSN adds the pragmas the schema relies on: foreign keys for the
// cascading deletes and a busy timeout for concurrent writers.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
