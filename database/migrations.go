package database

import (
	"database/sql"
	"fmt"
)

// RunMigrations creates or upgrades the schema. Every statement is additive
// and idempotent, so this is safe to run on each startup against an existing
// database. A failure here must be treated as fatal by the caller.
func RunMigrations(db *sql.DB, dialect Dialect) error {
	var usersSQL, predictionsSQL string

	if dialect == DialectPostgres {
		usersSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
		predictionsSQL = `
	CREATE TABLE IF NOT EXISTS predictions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		sepal_length DOUBLE PRECISION NOT NULL,
		sepal_width DOUBLE PRECISION NOT NULL,
		petal_length DOUBLE PRECISION NOT NULL,
		petal_width DOUBLE PRECISION NOT NULL,
		prediction_id INTEGER NOT NULL,
		label VARCHAR(64) NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	} else {
		usersSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
		predictionsSQL = `
	CREATE TABLE IF NOT EXISTS predictions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		sepal_length REAL NOT NULL,
		sepal_width REAL NOT NULL,
		petal_length REAL NOT NULL,
		petal_width REAL NOT NULL,
		prediction_id INTEGER NOT NULL,
		label TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`
	}

	if _, err := db.Exec(usersSQL); err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}
	if _, err := db.Exec(predictionsSQL); err != nil {
		return fmt.Errorf("failed to run predictions migration: %w", err)
	}

	// Column migrations for databases created before role/updated_at existed.
	if err := addColumnIfMissing(db, dialect, "users", "updated_at", "TEXT"); err != nil {
		return fmt.Errorf("failed to add users.updated_at: %w", err)
	}
	if err := addColumnIfMissing(db, dialect, "users", "role", "TEXT NOT NULL DEFAULT 'user'"); err != nil {
		return fmt.Errorf("failed to add users.role: %w", err)
	}

	// Backfill defaults so older rows satisfy the current invariants.
	if _, err := db.Exec(`UPDATE users SET updated_at = created_at WHERE updated_at IS NULL`); err != nil {
		return fmt.Errorf("failed to backfill users.updated_at: %w", err)
	}
	if _, err := db.Exec(`UPDATE users SET role = 'user' WHERE role IS NULL OR role = ''`); err != nil {
		return fmt.Errorf("failed to backfill users.role: %w", err)
	}

	return nil
}

func addColumnIfMissing(db *sql.DB, dialect Dialect, table, column, definition string) error {
	exists, err := columnExists(db, dialect, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

func columnExists(db *sql.DB, dialect Dialect, table, column string) (bool, error) {
	if dialect == DialectPostgres {
		var n int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM information_schema.columns WHERE table_name = $1 AND column_name = $2`,
			table, column,
		).Scan(&n)
		return n > 0, err
	}

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
