package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies which relational backend a connection talks to. The
// SQL in this package and in the repositories is written to run on both,
// but schema DDL and error-code mapping differ per dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Open connects to the store named by databaseURL. Postgres URLs
// (postgres:// or postgresql://) go through the pgx stdlib driver;
// everything else is treated as a SQLite DSN (file path, file: URL,
// or :memory:).
func Open(databaseURL string) (*sql.DB, Dialect, error) {
	dialect := DialectSQLite
	driver := "sqlite"
	dsn := databaseURL

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialect = DialectPostgres
		driver = "pgx"
	} else {
		dsn = sqliteDSN(databaseURL)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectPostgres {
		// Connection pool limits to prevent "too many clients" errors from PostgreSQL
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// A single connection keeps in-memory databases coherent and avoids
		// SQLITE_BUSY on concurrent writes to file databases.
		db.SetMaxOpenConns(1)
	}

	return db, dialect, nil
}

// sqliteDSN normalizes a SQLite DSN and enables foreign key enforcement,
// which SQLite keeps off by default on every new connection.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" {
		dsn = "file::memory:"
	} else if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
