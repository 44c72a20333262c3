package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/moonman369/Crowd-Funding-Contract/internal/auth"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxAccount
)

// requestID reuses a well-formed incoming request id or assigns a new one.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRequestID, id)))
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.InfoContext(r.Context(), "http request",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// requireAccount authenticates the bearer token and stores the caller
// address in the request context.
func (h *Handler) requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeProblem(w, r, http.StatusUnauthorized, codeUnauthenticated, "missing authorization header")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			h.writeProblem(w, r, http.StatusUnauthorized, codeUnauthenticated, "invalid authorization format")
			return
		}

		account, err := auth.ParseJWT(h.secret, tokenStr, h.svc.Custody())
		if errors.Is(err, domain.ErrCustodyAccount) {
			h.writeError(w, r, domain.ErrCustodyAccount)
			return
		}
		if err != nil {
			h.logger.DebugContext(r.Context(), "jwt parse error", slog.Any("error", err))
			h.writeProblem(w, r, http.StatusUnauthorized, codeUnauthenticated, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxAccount, account)))
	})
}

// RequestID returns the id assigned to the current request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

// Account returns the authenticated caller. It is the null address outside
// authenticated routes.
func Account(ctx context.Context) domain.Address {
	account, _ := ctx.Value(ctxAccount).(domain.Address)
	return account
}
