/**
 * @description
 * Session token issuance and verification. Tokens are HS256 JWTs signed with
 * a process-wide secret, valid for seven days, carrying the subject identity
 * (phone for password logins, email for Google logins). Tokens are stateless;
 * nothing is persisted and there is no revocation.
 *
 * @dependencies
 * - github.com/golang-jwt/jwt/v5: signing and parsing.
 */
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/silaibuddy/auth-service/internal/domain"
)

// SessionTTL is the fixed lifetime of an issued session token.
const SessionTTL = 7 * 24 * time.Hour

// SessionClaims are the claims carried by a session token.
type SessionClaims struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	GoogleID string `json:"googleId,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies session tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with the given secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// IssueForPhone mints a token whose subject is the account's phone number.
func (t *TokenIssuer) IssueForPhone(phone string) (string, error) {
	return t.issue(SessionClaims{Phone: phone, RegisteredClaims: t.registered(phone)})
}

// IssueForGoogle mints a token for a federated login, keyed on email and the
// Google subject id since the account may have no phone number.
func (t *TokenIssuer) IssueForGoogle(email, googleID string) (string, error) {
	return t.issue(SessionClaims{Email: email, GoogleID: googleID, RegisteredClaims: t.registered(email)})
}

func (t *TokenIssuer) registered(subject string) jwt.RegisteredClaims {
	now := t.now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}
}

func (t *TokenIssuer) issue(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a session token. Every failure mode (bad
// signature, malformed token, expiry) collapses to domain.ErrInvalidToken
// so callers cannot distinguish the cause.
func (t *TokenIssuer) Verify(tokenString string) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(t.now),
	)
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
