/**
 * @description
 * In-memory implementation of the UserStore, selected when the database is
 * unreachable at startup. Data does not survive a restart. Access is guarded
 * by a RWMutex since requests are served concurrently.
 */
package store

import (
	"context"
	"sync"

	"github.com/silaibuddy/auth-service/internal/domain"
)

// MemoryUserStore keeps user records in process memory.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byPhone map[string]string
	byEmail map[string]string
}

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]*domain.User),
		byPhone: make(map[string]string),
		byEmail: make(map[string]string),
	}
}

// Create inserts a new user record, enforcing phone/email uniqueness by
// lookup before insert, mirroring the database's unique indexes.
func (s *MemoryUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Phone != nil {
		if _, exists := s.byPhone[*user.Phone]; exists {
			return domain.ErrDuplicate
		}
	}
	if user.Email != nil {
		if _, exists := s.byEmail[*user.Email]; exists {
			return domain.ErrDuplicate
		}
	}

	copied := *user
	s.byID[copied.ID] = &copied
	if copied.Phone != nil {
		s.byPhone[*copied.Phone] = copied.ID
	}
	if copied.Email != nil {
		s.byEmail[*copied.Email] = copied.ID
	}
	return nil
}

// FindByPhone returns the record for the given phone or domain.ErrNotFound.
func (s *MemoryUserStore) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPhone[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *s.byID[id]
	return &copied, nil
}

// FindByEmail returns the record for the given email or domain.ErrNotFound.
func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *s.byID[id]
	return &copied, nil
}

// SetVerified flips the verification flag for the account with the given phone.
func (s *MemoryUserStore) SetVerified(_ context.Context, phone string, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byPhone[phone]
	if !ok {
		return domain.ErrNotFound
	}
	s.byID[id].Verified = verified
	return nil
}
