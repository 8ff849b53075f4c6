package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrAPIKeyRequired = errors.New("API key required")
	ErrInvalidAPIKey  = errors.New("invalid API key")
)

// AuthError represents an authentication error response.
type AuthError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	CorrID    string `json:"corrId"`
	Retryable bool   `json:"retryable"`
}

// Middleware checks the presented API key against cfg.APIKeyHash. With no
// hash configured every request passes as an anonymous actor.
func Middleware(cfg Config, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled() {
				ctx := ContextWithActor(r.Context(), &Actor{ActorType: "anonymous"})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			corrID := correlationID(r)
			rawKey := extractAPIKey(r)
			if rawKey == "" {
				rawKey = r.Header.Get("X-API-Key")
			}
			if rawKey == "" {
				writeAuthError(w, http.StatusUnauthorized, "AUTH_REQUIRED", ErrAPIKeyRequired.Error(), corrID, false)
				return
			}
			if !strings.HasPrefix(rawKey, KeyPrefix) {
				writeAuthError(w, http.StatusUnauthorized, "INVALID_KEY", "Invalid API key format", corrID, false)
				return
			}
			if !VerifyKey(rawKey, cfg.APIKeyHash) {
				logger.Warn("rejected API key",
					slog.String("correlationId", corrID),
					slog.String("keyPrefix", ExtractKeyPrefix(rawKey)),
					slog.String("ip", clientHost(r)),
				)
				writeAuthError(w, http.StatusUnauthorized, "INVALID_KEY", ErrInvalidAPIKey.Error(), corrID, false)
				return
			}

			actor := &Actor{KeyPrefix: ExtractKeyPrefix(rawKey), ActorType: "api_key"}
			logger.Debug("authenticated request",
				slog.String("correlationId", corrID),
				slog.String("keyPrefix", actor.KeyPrefix),
			)
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// extractAPIKey supports "Bearer <key>", "ApiKey <key>" or the bare key.
func extractAPIKey(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	if key, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return key
	}
	if key, ok := strings.CutPrefix(auth, "ApiKey "); ok {
		return key
	}
	return auth
}

func writeAuthError(w http.ResponseWriter, status int, code, message, corrID string, retryable bool) {
	w.Header().Set("Content-Type", "application/json")
	if corrID != "" {
		w.Header().Set("X-Correlation-Id", corrID)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(AuthError{
		Code:      code,
		Message:   message,
		CorrID:    corrID,
		Retryable: retryable,
	})
}

func correlationID(r *http.Request) string {
	if id := r.Header.Get("X-Correlation-Id"); id != "" {
		return id
	}
	return uuid.NewString()
}

// clientHost is the peer address of r. Forwarding headers are honored only
// when a trusted proxy middleware has already rewritten RemoteAddr.
func clientHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
