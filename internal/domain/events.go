package domain

// Events published to the auth_events exchange for out-of-band delivery.
// The SMS/WhatsApp gateway consumes otp.requested; the code itself is only
// echoed in the HTTP response when the demo flag is on.

type OTPRequestedEvent struct {
	Phone            string `json:"phone"`
	Code             string `json:"code"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type UserRegisteredEvent struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
}
