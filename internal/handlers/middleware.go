package handlers

import (
	"net/http"
	"strings"
	"time"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/handlers/response"
	"gitlab.com/pagetest.net/internal/static/errs"
)

type MiddlewareProvider struct {
	tokens  primary.TokenService
	enabled bool
	logger  primary.Logger
}

// New returns a provider whose JWT guard only checks tokens when enabled.
func New(tokens primary.TokenService, enabled bool, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		tokens:  tokens,
		enabled: enabled,
		logger:  logger,
	}
}

func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	if !m.enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, errs.MissingToken)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			unauthorized(w, errs.InvalidToken)
			return
		}

		valid, err := m.tokens.VerifyTokenHMAC(r.Context(), tokenString)
		if err != nil || !valid {
			m.logger.Warn("Rejected bearer token", "path", r.URL.Path, "error", err)
			unauthorized(w, errs.InvalidToken)
			return
		}

		if claims, err := m.tokens.DecodeTokenPayload(r.Context(), tokenString); err == nil {
			m.logger.Debug("Authorized request", "path", r.URL.Path, "subject", claims.Subject)
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, err error) {
	response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusUnauthorized})
}

// RequestLogger logs every request with its status and latency.
func (m *MiddlewareProvider) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r)
		m.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Now().Sub(started))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
