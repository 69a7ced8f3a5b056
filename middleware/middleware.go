// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/admin-gate/auth"
	"github.com/danielhkuo/admin-gate/models"
)

const (
	SharedSecretHeader = "X-Shared-Secret"
	RequestIDHeader    = "X-Request-ID"

	// Detail returned when the shared secret is missing or wrong
	InvalidSecretDetail = "Forbidden: Invalid shared secret."

	maxBodyBytes = 1 << 20
)

// ErrTrailingData is returned when a request body continues after its JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON body")

type contextKey string

// RequestIDKey is the context key holding the request id set by WithLogging.
const RequestIDKey contextKey = "request_id"

// RequestIDLogKey holds the same id under a plain string key, which is
// what the gorm logger looks up when tagging SQL log lines.
const RequestIDLogKey = "request_id"

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// WithLogging wraps a handler with request logging.
// It also tags the request with an id (reusing X-Request-ID if the caller sent one).
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, reqID)
		ctx := context.WithValue(r.Context(), RequestIDKey, reqID)
		ctx = context.WithValue(ctx, RequestIDLogKey, reqID)
		r = r.WithContext(ctx)

		// Log request
		slog.Debug("request started",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", GetClientIP(r),
		)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// Recover turns a panic in next into a 500 JSON response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				slog.Error("handler panicked",
					"request_id", RequestID(r.Context()),
					"panic", v,
					"stack", string(debug.Stack()),
				)
				ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequireSharedSecret rejects every request whose X-Shared-Secret header
// does not match secret. The expected value is never written to the
// response or the log.
func RequireSharedSecret(secret string) func(http.Handler) http.Handler {
	if secret == "" {
		panic("middleware: RequireSharedSecret called with empty secret")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.ValidateSharedSecret(r.Header.Get(SharedSecretHeader), secret); err != nil {
				slog.Warn("shared secret rejected",
					"request_id", RequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"remote", GetClientIP(r),
				)
				ErrorResponse(w, http.StatusForbidden, InvalidSecretDetail)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response of the form {"detail": ...}
func ErrorResponse(w http.ResponseWriter, statusCode int, detail string) {
	JSONResponse(w, statusCode, models.ErrorResponse{Detail: detail})
}

// ParseJSONBody parses the request body into the given struct.
// The body must hold exactly one JSON value; bodies over 1 MiB are cut
// off and fail to decode.
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// CORS allows cross-origin requests from the frontend.
// An empty origin echoes the caller's Origin header; only a configured
// origin is allowed to send credentials.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := allowedOrigin
			if origin == "" {
				origin = r.Header.Get("Origin")
			}
			if origin == "" {
				origin = "*"
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SharedSecretHeader+", "+RequestIDHeader)
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
			if allowedOrigin != "" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For (load balancers)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take first IP in chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' || xff[i] == ' ' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP (nginx)
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr
	// Strip port if present
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
