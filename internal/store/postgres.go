/**
 * @description
 * PostgreSQL implementation of the UserStore. Uniqueness of phone and email
 * is enforced by partial unique indexes so that NULLs (phone-less Google
 * accounts, email-less registrations) never collide.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5/pgxpool: connection pool.
 * - github.com/jackc/pgx/v5/pgconn: unique-violation detection (23505).
 */
package store

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/silaibuddy/auth-service/internal/domain"
)

// PostgresUserStore is the durable implementation of UserStore.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

// NewPostgresUserStore creates a store backed by the given pool.
func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// EnsureSchema creates the users table and unique indexes if missing.
// Idempotent; called once at startup.
func (s *PostgresUserStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT,
            email TEXT,
            password_hash TEXT NOT NULL DEFAULT '',
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            google_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
        CREATE UNIQUE INDEX IF NOT EXISTS users_phone_key ON users (phone) WHERE phone IS NOT NULL;
        CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email) WHERE email IS NOT NULL;
    `)
	return err
}

// Create inserts a new user record.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (id, name, phone, email, password_hash, verified, google_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.Email,
		user.PasswordHash,
		user.Verified,
		user.GoogleID,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		log.Printf("Error inserting user into database: %v", err)
		return err
	}
	return nil
}

// FindByPhone returns the record for the given phone or domain.ErrNotFound.
func (s *PostgresUserStore) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.findBy(ctx, `SELECT id, name, phone, email, password_hash, verified, google_id, created_at
        FROM users WHERE phone = $1 LIMIT 1`, phone)
}

// FindByEmail returns the record for the given email or domain.ErrNotFound.
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findBy(ctx, `SELECT id, name, phone, email, password_hash, verified, google_id, created_at
        FROM users WHERE email = $1 LIMIT 1`, email)
}

func (s *PostgresUserStore) findBy(ctx context.Context, query, arg string) (*domain.User, error) {
	var u domain.User
	row := s.db.QueryRow(ctx, query, arg)
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Verified, &u.GoogleID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		log.Printf("Error fetching user: %v", err)
		return nil, err
	}
	return &u, nil
}

// SetVerified flips the verification flag for the account with the given phone.
func (s *PostgresUserStore) SetVerified(ctx context.Context, phone string, verified bool) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET verified = $1 WHERE phone = $2`, verified, phone)
	if err != nil {
		log.Printf("Error updating verification for %s: %v", phone, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
