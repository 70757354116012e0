/**
 * @description
 * Demo account seeding. A fresh deployment gets six pre-verified accounts
 * with known credentials so login works without manual signup. The same
 * dataset is applied to whichever backend was selected at startup; seeding
 * is idempotent (existing phones are skipped).
 */
package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/silaibuddy/auth-service/internal/auth"
	"github.com/silaibuddy/auth-service/internal/domain"
)

type seedUser struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

var seedUsers = []seedUser{
	{Name: "Demo User", Phone: "9876543210", Email: "demo@example.com", Password: "password123"},
	{Name: "Test User", Phone: "1234567890", Email: "test@example.com", Password: "demo"},
	{Name: "Sample User", Phone: "9999999999", Email: "sample@example.com", Password: "test123"},
	{Name: "Silai User", Phone: "8888888888", Email: "silai@example.com", Password: "silai123"},
	{Name: "Admin User", Phone: "7777777777", Email: "admin@example.com", Password: "admin"},
	{Name: "Regular User", Phone: "6666666666", Email: "user@example.com", Password: "user123"},
}

// SeedDemoUsers inserts the demo accounts into the given store, skipping any
// phone that already exists. Individual failures are logged, not fatal.
func SeedDemoUsers(ctx context.Context, s UserStore) {
	for _, su := range seedUsers {
		if _, err := s.FindByPhone(ctx, su.Phone); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("Seed: lookup failed for %s: %v", su.Phone, err)
			continue
		}

		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			log.Printf("Seed: hashing failed for %s: %v", su.Phone, err)
			continue
		}

		phone := su.Phone
		email := su.Email
		user := &domain.User{
			ID:           uuid.NewString(),
			Name:         su.Name,
			Phone:        &phone,
			Email:        &email,
			PasswordHash: hash,
			Verified:     true,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			log.Printf("Seed: failed to create user %s: %v", su.Phone, err)
			continue
		}
		log.Printf("Seed: created demo user %s (%s)", su.Name, su.Phone)
	}
}
