package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/careerai/careerai-go/internal/model"
)

// NewDB creates a MySQL connection pool for the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed", "error", err)
		return nil, err
	}

	return db, nil
}

// MySQLUserStore persists identities in MySQL.
type MySQLUserStore struct {
	db *sql.DB
}

// NewMySQLUserStore creates a MySQLUserStore.
func NewMySQLUserStore(db *sql.DB) *MySQLUserStore {
	return &MySQLUserStore{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role, phone, location, skills, resume_uploaded, profile_complete, created_at, updated_at`

// Create inserts a new identity, assigning it a fresh ID.
func (s *MySQLUserStore) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()

	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, role, phone, location, skills, resume_uploaded, profile_complete)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID, strings.ToLower(user.Email), user.PasswordHash,
		user.FirstName, user.LastName, user.Role,
		user.Phone, user.Location, strings.Join(user.Skills, ","),
		user.ResumeUploaded, user.ProfileComplete,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// GetByEmail retrieves an identity by email, case-insensitively.
func (s *MySQLUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, query, strings.ToLower(email)))
}

// GetByID retrieves an identity by ID.
func (s *MySQLUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// UpdatePassword replaces the stored password hash for the given email.
func (s *MySQLUserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE email = ?`

	result, err := s.db.ExecContext(ctx, query, passwordHash, strings.ToLower(email))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MySQLUserStore) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	var skills string
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role,
		&user.Phone, &user.Location, &skills,
		&user.ResumeUploaded, &user.ProfileComplete,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if skills != "" {
		user.Skills = strings.Split(skills, ",")
	}
	return user, nil
}

// isDuplicateEntryError checks for the MySQL duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
