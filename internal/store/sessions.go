package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
)

// Session is one login session: the cookie's JTI mapped to the upstream
// bearer token and a snapshot of the logged-in user.
type Session struct {
	JTI       string
	APIToken  string
	User      freight.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// CreateSession stores a new session row. Expired rows are swept
// opportunistically on every create.
func CreateSession(ctx context.Context, db *sql.DB, jti, apiToken string, user freight.User, expiresAt time.Time) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO sessions (jti, api_token, user_json, expires_at) VALUES (?, ?, ?, ?)`,
		jti, apiToken, string(userJSON), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	_, _ = db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now())

	return nil
}

// GetSession returns the session for a JTI, or nil if it does not exist or
// has expired. An expired-but-present row counts as logged out.
func GetSession(ctx context.Context, db *sql.DB, jti string) (*Session, error) {
	s := &Session{}
	var userJSON string
	err := db.QueryRowContext(ctx,
		`SELECT jti, api_token, user_json, created_at, expires_at FROM sessions WHERE jti = ?`, jti,
	).Scan(&s.JTI, &s.APIToken, &userJSON, &s.CreatedAt, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", err)
	}

	if time.Now().After(s.ExpiresAt) {
		return nil, nil
	}

	if err := json.Unmarshal([]byte(userJSON), &s.User); err != nil {
		return nil, fmt.Errorf("decoding session user: %w", err)
	}
	return s, nil
}

// DeleteSession revokes a session (logout).
func DeleteSession(ctx context.Context, db *sql.DB, jti string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE jti = ?`, jti)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
