package data

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	// DataFileName is the name of the local SQLite database file.
	DataFileName = "data.db"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	//go:embed sql/*
	f embed.FS

	errDBNotInitialized = errors.New("database not initialized")
)

// DB wraps the database handle with the name of the driver that opened
// it, so statements can be rewritten for dialects whose placeholder
// syntax differs from the default.
type DB struct {
	*sql.DB

	driver string
}

// Driver returns the name of the driver backing this handle.
func (d *DB) Driver() string {
	return d.driver
}

// rebind rewrites ? placeholders into the $1..$N form Postgres expects.
// SQLite statements pass through unchanged.
func (d *DB) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// driverFor selects the driver based on the target: Postgres connection
// URIs go to lib/pq, everything else is treated as a SQLite file path.
func driverFor(target string) string {
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Init ensures the schema exists in the given target. The DDL uses only
// IF NOT EXISTS statements so it is safe to run on every start.
func Init(target string) error {
	db, err := GetDB(target)
	if err != nil {
		return err
	}
	defer db.Close()

	slog.Debug("creating db schema...")
	b, err := f.ReadFile("sql/ddl.sql")
	if err != nil {
		return fmt.Errorf("failed to read the schema creation file: %w", err)
	}
	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}
	slog.Debug("db schema created", "driver", db.driver)

	return nil
}

// GetDB opens a database handle for the given target.
func GetDB(target string) (*DB, error) {
	if target == "" {
		return nil, errors.New("database target not specified")
	}
	driver := driverFor(target)
	conn, err := sql.Open(driver, target)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	return &DB{DB: conn, driver: driver}, nil
}
