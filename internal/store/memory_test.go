package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/silaibuddy/auth-service/internal/domain"
)

func newTestUser(phone, email string) *domain.User {
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         "Asha",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Now().UTC(),
	}
	if phone != "" {
		u.Phone = &phone
	}
	if email != "" {
		u.Email = &email
	}
	return u
}

func TestMemoryStoreCreateAndFind(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	user := newTestUser("9000000001", "a@x.com")
	if err := s.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := s.FindByPhone(ctx, "9000000001")
	if err != nil {
		t.Fatalf("FindByPhone returned error: %v", err)
	}
	if got.ID != user.ID || got.Verified {
		t.Fatalf("unexpected record: %+v", got)
	}

	got, err = s.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected the same record by email, got %+v", got)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if _, err := s.FindByPhone(ctx, "0000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.FindByEmail(ctx, "missing@x.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.SetVerified(ctx, "0000000000", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreDuplicatePhone(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if err := s.Create(ctx, newTestUser("9000000001", "a@x.com")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Same phone, different everything else.
	err := s.Create(ctx, newTestUser("9000000001", "b@x.com"))
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if err := s.Create(ctx, newTestUser("9000000001", "a@x.com")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err := s.Create(ctx, newTestUser("9000000002", "a@x.com"))
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryStoreAllowsPhonelessAccounts(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	// Two federated accounts without phones must not collide.
	if err := s.Create(ctx, newTestUser("", "a@x.com")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := s.Create(ctx, newTestUser("", "b@x.com")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
}

func TestMemoryStoreSetVerified(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if err := s.Create(ctx, newTestUser("9000000001", "a@x.com")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := s.SetVerified(ctx, "9000000001", true); err != nil {
		t.Fatalf("SetVerified returned error: %v", err)
	}

	got, err := s.FindByPhone(ctx, "9000000001")
	if err != nil {
		t.Fatalf("FindByPhone returned error: %v", err)
	}
	if !got.Verified {
		t.Fatal("expected record to be verified")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	if err := s.Create(ctx, newTestUser("9000000001", "a@x.com")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, _ := s.FindByPhone(ctx, "9000000001")
	got.Verified = true

	fresh, _ := s.FindByPhone(ctx, "9000000001")
	if fresh.Verified {
		t.Fatal("mutating a returned record must not affect the store")
	}
}
