/**
 * @description
 * The auth orchestrator. Composes the credential store, password hasher,
 * OTP ledger, token issuer and Google verifier behind the six operations
 * the HTTP layer exposes. Dependencies point one way only: nothing below
 * this layer calls back into it.
 */
package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/silaibuddy/auth-service/internal/auth"
	"github.com/silaibuddy/auth-service/internal/domain"
	"github.com/silaibuddy/auth-service/internal/store"
	"github.com/silaibuddy/auth-service/pkg/rabbitmq"
)

const (
	authEventsExchange = "auth_events"
	otpRequestedKey    = "otp.requested"
	userRegisteredKey  = "user.registered"
)

// AuthService implements the register/login/OTP/google/whoami operations.
type AuthService struct {
	users    store.UserStore
	otp      *auth.OTPLedger
	tokens   *auth.TokenIssuer
	google   auth.GoogleVerifier
	producer rabbitmq.Publisher
}

// NewAuthService wires the orchestrator with its collaborators.
func NewAuthService(users store.UserStore, otp *auth.OTPLedger, tokens *auth.TokenIssuer, google auth.GoogleVerifier, producer rabbitmq.Publisher) *AuthService {
	return &AuthService{users: users, otp: otp, tokens: tokens, google: google, producer: producer}
}

// LoginResult is returned by Login and GoogleLogin.
type LoginResult struct {
	Token string
	User  domain.Profile
}

// OTPIssueResult is returned by SendOTP.
type OTPIssueResult struct {
	Code             string
	ExpiresInSeconds int
}

// Register creates an unverified account with a hashed password. No token is
// issued; OTP verification is expected to follow.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) error {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	phone := req.Phone
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Phone:        &phone,
		PasswordHash: hash,
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		lowered := strings.ToLower(email)
		user.Email = &lowered
	}

	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, userRegisteredKey, domain.UserRegisteredEvent{
		UserID: user.ID,
		Phone:  phone,
		Name:   user.Name,
	})
	return nil
}

// Login checks the password for the phone and issues a session token. Unknown
// phone and wrong password collapse to the same error so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueForPhone(req.Phone)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.PublicProfile()}, nil
}

// SendOTP issues a fresh code for an existing account and hands it to the
// delivery gateway via the event exchange. The code is also returned so the
// handler can echo it in demo mode.
func (s *AuthService) SendOTP(ctx context.Context, phone string) (*OTPIssueResult, error) {
	if _, err := s.users.FindByPhone(ctx, phone); err != nil {
		return nil, err
	}

	code, expiresIn, err := s.otp.Issue(phone)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, otpRequestedKey, domain.OTPRequestedEvent{
		Phone:            phone,
		Code:             code,
		ExpiresInSeconds: expiresIn,
	})
	return &OTPIssueResult{Code: code, ExpiresInSeconds: expiresIn}, nil
}

// VerifyOTP consumes a matching code, flips the account's verified flag and
// issues a session token. Ledger errors pass through untouched so the
// handler can report the distinct cause.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (string, error) {
	if err := s.otp.Verify(phone, code); err != nil {
		return "", err
	}

	if err := s.users.SetVerified(ctx, phone, true); err != nil {
		// The account existed when the OTP was issued. Log and continue;
		// the caller proved possession of the phone either way.
		log.Printf("Failed to mark %s verified: %v", phone, err)
	}

	return s.tokens.IssueForPhone(phone)
}

// GoogleLogin verifies the ID token assertion and finds or creates the local
// account by email. Calling it twice with the same assertion resolves to the
// same account.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	// An absent email claim must not become a present empty-string email:
	// accounts are found-or-created by email, so "" would alias every
	// email-less subject onto one record.
	if identity.Email == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	if errors.Is(err, domain.ErrNotFound) {
		email := identity.Email
		googleID := identity.Subject
		user = &domain.User{
			ID:        uuid.NewString(),
			Name:      identity.Name,
			Email:     &email,
			Verified:  identity.EmailVerified,
			GoogleID:  &googleID,
			CreatedAt: time.Now().UTC(),
		}
		if createErr := s.users.Create(ctx, user); createErr != nil {
			// Lost a race with a concurrent first login for the same email.
			if errors.Is(createErr, domain.ErrDuplicate) {
				user, err = s.users.FindByEmail(ctx, identity.Email)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, createErr
			}
		}
	} else if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueForGoogle(identity.Email, identity.Subject)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.PublicProfile()}, nil
}

// WhoAmI resolves a session token back to the sanitized account profile.
func (s *AuthService) WhoAmI(ctx context.Context, token string) (*domain.Profile, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	switch {
	case claims.Phone != "":
		user, err = s.users.FindByPhone(ctx, claims.Phone)
	case claims.Email != "":
		user, err = s.users.FindByEmail(ctx, claims.Email)
	default:
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	profile := user.PublicProfile()
	return &profile, nil
}

// publish sends an event best-effort. The auth flow never fails because the
// broker is down; the notification gateway is an optional collaborator.
func (s *AuthService) publish(ctx context.Context, routingKey string, body interface{}) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, authEventsExchange, routingKey, body); err != nil {
		log.Printf("Failed to publish %s event: %v", routingKey, err)
	}
}
