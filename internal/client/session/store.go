// Package session holds the client's durable session state and the logic
// that builds and reconstructs authenticated sessions around it.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/careerai/careerai-go/internal/client/api"
)

// Storage keys. These four values are the whole persisted session record.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUserProfile  = "user_profile"
	keyDemoMode     = "demo_mode"
)

// Record is the persisted session state.
type Record struct {
	AccessToken  string
	RefreshToken string
	Profile      *api.Profile
	DemoMode     bool
}

// Store is a durable key-value session store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the session database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS session (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing session db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a complete session record.
func (s *Store) Save(ctx context.Context, rec Record) error {
	profileJSON := ""
	if rec.Profile != nil {
		encoded, err := json.Marshal(rec.Profile)
		if err != nil {
			return fmt.Errorf("encoding profile: %w", err)
		}
		profileJSON = string(encoded)
	}

	demoMode := "false"
	if rec.DemoMode {
		demoMode = "true"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		keyAccessToken:  rec.AccessToken,
		keyRefreshToken: rec.RefreshToken,
		keyUserProfile:  profileJSON,
		keyDemoMode:     demoMode,
	} {
		if err := setTx(ctx, tx, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load reads the persisted session record. A missing record comes back as a
// zero Record, not an error. A corrupted profile snapshot is dropped, not
// surfaced: the caller decides how to resynthesize it.
func (s *Store) Load(ctx context.Context) (Record, error) {
	rec := Record{}

	var err error
	if rec.AccessToken, err = s.get(ctx, keyAccessToken); err != nil {
		return Record{}, err
	}
	if rec.RefreshToken, err = s.get(ctx, keyRefreshToken); err != nil {
		return Record{}, err
	}

	demoMode, err := s.get(ctx, keyDemoMode)
	if err != nil {
		return Record{}, err
	}
	rec.DemoMode = demoMode == "true"

	profileJSON, err := s.get(ctx, keyUserProfile)
	if err != nil {
		return Record{}, err
	}
	if profileJSON != "" {
		var profile api.Profile
		if err := json.Unmarshal([]byte(profileJSON), &profile); err == nil {
			rec.Profile = &profile
		}
	}

	return rec, nil
}

// SetAccessToken replaces only the stored access token (used after refresh).
func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.set(ctx, keyAccessToken, token)
}

// SetProfile replaces only the cached profile snapshot.
func (s *Store) SetProfile(ctx context.Context, profile api.Profile) error {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return s.set(ctx, keyUserProfile, string(encoded))
}

// Clear wipes the entire session record atomically.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	return err
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing session[%s]: %w", key, err)
	}
	return nil
}

func setTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing session[%s]: %w", key, err)
	}
	return nil
}
