/**
 * @description
 * HTTP handlers for the auth endpoints. Handlers decode and validate the
 * request shape, delegate to the auth service, and translate the error
 * taxonomy into status codes. Every error body is {"error": message};
 * backend failures never leak details to the caller.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/silaibuddy/auth-service/internal/app"
	"github.com/silaibuddy/auth-service/internal/domain"
)

// Handler holds the auth service and response policy for all endpoints.
type Handler struct {
	svc *app.AuthService
	// exposeOTPCode echoes generated codes in send-otp responses. Demo
	// behavior; off in production where the gateway delivers out-of-band.
	exposeOTPCode bool
	storageMode   string
}

// NewHandler creates the endpoint handler set.
func NewHandler(svc *app.AuthService, exposeOTPCode bool, storageMode string) *Handler {
	return &Handler{svc: svc, exposeOTPCode: exposeOTPCode, storageMode: storageMode}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response body: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HandleRegister creates an unverified account.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validateRegisterRequest(&req); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	if err := h.svc.Register(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			respondError(w, http.StatusConflict, "User already exists")
			return
		}
		log.Printf("Register failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Registered. Please verify OTP."})
}

// HandleLogin checks credentials and issues a session token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validateLoginRequest(&req); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid phone or password")
			return
		}
		log.Printf("Login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

type sendOTPResponse struct {
	Message          string `json:"message"`
	Code             string `json:"code,omitempty"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}

// HandleSendOTP issues a fresh code for an existing account.
func (h *Handler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validatePhone(req.Phone); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	result, err := h.svc.SendOTP(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found. Please sign up.")
			return
		}
		log.Printf("Send OTP failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := sendOTPResponse{Message: "OTP generated", ExpiresInSeconds: result.ExpiresInSeconds}
	if h.exposeOTPCode {
		resp.Code = result.Code
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleVerifyOTP consumes a code and issues a session token.
func (h *Handler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if verr := validateVerifyOTPRequest(&req); verr != nil {
		respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	token, err := h.svc.VerifyOTP(r.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotRequested):
			respondError(w, http.StatusBadRequest, "No OTP requested")
		case errors.Is(err, domain.ErrOTPExpired):
			respondError(w, http.StatusBadRequest, "OTP expired")
		case errors.Is(err, domain.ErrOTPMismatch):
			respondError(w, http.StatusBadRequest, "Invalid OTP")
		default:
			log.Printf("Verify OTP failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Phone verified",
		"token":   token,
	})
}

// HandleGoogleLogin verifies a Google ID token and finds or creates the account.
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IDToken == "" {
		respondError(w, http.StatusBadRequest, "Missing token")
		return
	}

	result, err := h.svc.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		log.Printf("Google login failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Auth failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Google login success",
		"token":   result.Token,
		"user":    result.User,
	})
}

// HandleWhoAmI resolves the bearer token to the account profile.
func (h *Handler) HandleWhoAmI(w http.ResponseWriter, r *http.Request) {
	token, ok := TokenFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	profile, err := h.svc.WhoAmI(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidToken):
			respondError(w, http.StatusUnauthorized, "Invalid token")
		case errors.Is(err, domain.ErrNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("WhoAmI failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
}

// HandlePing is a liveness probe kept for client compatibility.
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "ping"})
}

// HandleHealth reports service health and the selected storage backend.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"storage": h.storageMode,
	})
}
