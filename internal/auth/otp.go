/**
 * @description
 * One-time password ledger. Codes are uniform random 6-digit decimals
 * (leading zeros allowed) valid for five minutes, keyed by phone number.
 * A reissue overwrites the prior entry; a successful verification consumes
 * it. Expiry is checked lazily at verification time, there is no sweeper.
 */
package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/silaibuddy/auth-service/internal/domain"
)

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 5 * time.Minute

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPLedger stores live OTP codes in process memory.
type OTPLedger struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	now     func() time.Time
}

// NewOTPLedger creates an empty ledger.
func NewOTPLedger() *OTPLedger {
	return &OTPLedger{
		entries: make(map[string]otpEntry),
		now:     time.Now,
	}
}

// Issue generates a fresh code for the phone, replacing any live entry, and
// returns the code with its validity window in seconds.
func (l *OTPLedger) Issue(phone string) (string, int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", 0, err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	l.mu.Lock()
	l.entries[phone] = otpEntry{code: code, expiresAt: l.now().Add(OTPTTL)}
	l.mu.Unlock()

	return code, int(OTPTTL.Seconds()), nil
}

// Verify checks the code for the phone. On a match the entry is consumed so
// the same code cannot be replayed. A mismatch leaves the entry in place for
// retry within the window; an expired entry is purged and can never verify.
func (l *OTPLedger) Verify(phone, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[phone]
	if !ok {
		return domain.ErrOTPNotRequested
	}
	if l.now().After(entry.expiresAt) {
		delete(l.entries, phone)
		return domain.ErrOTPExpired
	}
	if entry.code != code {
		return domain.ErrOTPMismatch
	}
	delete(l.entries, phone)
	return nil
}
