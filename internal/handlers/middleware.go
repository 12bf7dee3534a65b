package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkowal/todoapi/internal/services"
)

// AuthHeader carries the bearer token on every authenticated request and the
// freshly minted token on register/login responses.
const AuthHeader = "x-auth"

// Authenticate resolves the x-auth header to an account. Absent, malformed,
// badly signed, and revoked tokens all end the request with an empty 401.
// One attempt per request, no side effects on failure.
func Authenticate(accounts *services.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AuthHeader)
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			account, err := accounts.FindByToken(r.Context(), token)
			if errors.Is(err, services.ErrInvalidToken) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account, token)))
		})
	}
}

// RequestLogger emits one structured log line per request.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
