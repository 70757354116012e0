/**
 * @description
 * Storage contract for credential records. Two implementations exist: a
 * PostgreSQL-backed store and an in-memory fallback used when the database
 * is unreachable at startup. Callers observe identical error behavior from
 * both; the backend is chosen once in main and injected into the service.
 */
package store

import (
	"context"

	"github.com/silaibuddy/auth-service/internal/domain"
)

// UserStore defines the credential store contract.
//
// Create fails with domain.ErrDuplicate when the phone, or the email when
// present, already belongs to another record. Passwords must be hashed by
// the caller before Create; the store never hashes.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerified(ctx context.Context, phone string, verified bool) error
}

var (
	_ UserStore = (*PostgresUserStore)(nil)
	_ UserStore = (*MemoryUserStore)(nil)
)
