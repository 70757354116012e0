/**
 * @description
 * Request shape validation for the auth endpoints. Messages are the exact
 * strings surfaced to clients in the error body.
 */
package api

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/silaibuddy/auth-service/internal/domain"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

func validatePhone(phone string) *domain.ValidationError {
	if !phonePattern.MatchString(phone) {
		return domain.NewValidationError("Phone must be 10 digits")
	}
	return nil
}

func validateRegisterRequest(req *domain.RegisterRequest) *domain.ValidationError {
	if strings.TrimSpace(req.Name) == "" {
		return domain.NewValidationError("Name is required")
	}
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	if req.Email != "" {
		// mail.ParseAddress also accepts display-name forms like
		// "Asha <a@x.com>"; only a bare address is a valid input here.
		addr, err := mail.ParseAddress(req.Email)
		if err != nil || addr.Address != req.Email {
			return domain.NewValidationError("Invalid email")
		}
	}
	if len(req.Password) < 6 {
		return domain.NewValidationError("Password must be at least 6 chars")
	}
	return nil
}

func validateLoginRequest(req *domain.LoginRequest) *domain.ValidationError {
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	if req.Password == "" {
		return domain.NewValidationError("Password is required")
	}
	return nil
}

func validateVerifyOTPRequest(req *domain.VerifyOTPRequest) *domain.ValidationError {
	if err := validatePhone(req.Phone); err != nil {
		return err
	}
	if !codePattern.MatchString(req.Code) {
		return domain.NewValidationError("Code must be 6 digits")
	}
	return nil
}
