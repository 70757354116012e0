package auth

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/silaibuddy/auth-service/internal/domain"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestIssueProducesSixDigitCode(t *testing.T) {
	ledger := NewOTPLedger()

	for i := 0; i < 50; i++ {
		code, expiresIn, err := ledger.Issue("9000000001")
		if err != nil {
			t.Fatalf("Issue returned error: %v", err)
		}
		if !sixDigits.MatchString(code) {
			t.Fatalf("expected a 6-digit code, got %q", code)
		}
		if expiresIn != 300 {
			t.Fatalf("expected 300s validity, got %d", expiresIn)
		}
	}
}

func TestVerifyWithoutIssue(t *testing.T) {
	ledger := NewOTPLedger()

	if err := ledger.Verify("9000000001", "123456"); !errors.Is(err, domain.ErrOTPNotRequested) {
		t.Fatalf("expected ErrOTPNotRequested, got %v", err)
	}
}

func TestVerifyMismatchLeavesEntryIntact(t *testing.T) {
	ledger := NewOTPLedger()

	code, _, err := ledger.Issue("9000000001")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := ledger.Verify("9000000001", wrong); !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}

	// The entry survives a mismatch; retry with the right code succeeds.
	if err := ledger.Verify("9000000001", code); err != nil {
		t.Fatalf("expected retry with correct code to succeed, got %v", err)
	}
}

func TestVerifyConsumesEntry(t *testing.T) {
	ledger := NewOTPLedger()

	code, _, err := ledger.Issue("9000000001")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := ledger.Verify("9000000001", code); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	if err := ledger.Verify("9000000001", code); !errors.Is(err, domain.ErrOTPNotRequested) {
		t.Fatalf("expected replay to fail with ErrOTPNotRequested, got %v", err)
	}
}

func TestVerifyAfterExpiry(t *testing.T) {
	ledger := NewOTPLedger()

	code, _, err := ledger.Issue("9000000001")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	ledger.now = func() time.Time { return time.Now().Add(OTPTTL + time.Second) }

	if err := ledger.Verify("9000000001", code); !errors.Is(err, domain.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired even with the correct code, got %v", err)
	}

	// The expired entry is purged; a further attempt sees no request.
	if err := ledger.Verify("9000000001", code); !errors.Is(err, domain.ErrOTPNotRequested) {
		t.Fatalf("expected ErrOTPNotRequested after purge, got %v", err)
	}
}

func TestReissueOverwritesPriorEntry(t *testing.T) {
	ledger := NewOTPLedger()

	first, _, err := ledger.Issue("9000000001")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	second, _, err := ledger.Issue("9000000001")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if first != second {
		if err := ledger.Verify("9000000001", first); !errors.Is(err, domain.ErrOTPMismatch) {
			t.Fatalf("expected the old code to mismatch, got %v", err)
		}
	}
	if err := ledger.Verify("9000000001", second); err != nil {
		t.Fatalf("expected the fresh code to verify, got %v", err)
	}
}
