/**
 * @description
 * Core user model and the request/response shapes exchanged with clients.
 * Accounts are keyed by an internal UUID; phone and email are optional but
 * unique attributes so that password accounts (phone-keyed) and Google
 * accounts (email-keyed, possibly phone-less) share one shape.
 */
package domain

import "time"

// User represents an account record as held by the credential store.
// PasswordHash is never serialized into API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	GoogleID     *string   `json:"google_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the sanitized view of a user returned to clients.
type Profile struct {
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Verified bool    `json:"verified"`
}

// PublicProfile strips a user down to the fields safe to return to clients.
func (u *User) PublicProfile() Profile {
	return Profile{
		Name:     u.Name,
		Phone:    u.Phone,
		Email:    u.Email,
		Verified: u.Verified,
	}
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SendOTPRequest is the payload for POST /api/auth/send-otp.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// VerifyOTPRequest is the payload for POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// GoogleLoginRequest is the payload for POST /api/auth/google.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}
