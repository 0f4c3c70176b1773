package db

import (
	"database/sql"
	"fmt"
)

// schema is the full local database schema: login sessions mapping a cookie
// JTI to the upstream bearer token, per-carrier saved listing filters, and a
// small key-value settings table (signing secret).
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    jti        TEXT PRIMARY KEY,
    api_token  TEXT NOT NULL,
    user_json  TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

CREATE TABLE IF NOT EXISTS filter_prefs (
    carrier_id        TEXT PRIMARY KEY,
    job_type          TEXT NOT NULL DEFAULT '',
    destination_state TEXT NOT NULL DEFAULT '',
    sort              TEXT NOT NULL DEFAULT '',
    updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the
// end.
var migrations []string

// Migrate ensures the schema and applies any pending migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
