// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Shared Secret Gate

RequireSharedSecret guards every route behind it:

	protected := middleware.RequireSharedSecret(cfg.SharedSecret)(mux)

Requests whose X-Shared-Secret header is missing or wrong get 403 with

	{"detail": "Forbidden: Invalid shared secret."}

and never reach the wrapped handler. The comparison is constant time (see
auth.ValidateSharedSecret) and the expected value is never written to the
response or the log. Passing an empty secret panics.

# Request Logging

Wrap handlers with request logging:

	handler := middleware.WithLogging(mux.ServeHTTP)

Each request gets an id (the caller's X-Request-ID, or a fresh UUID), which
is echoed in the response header, stored in the context (RequestID), and
attached to every log line including the SQL statements gorm logs.
Completion is logged with status and duration_ms.

# Panic Recovery

Recover converts a handler panic into a 500 JSON response and logs the
stack.

# CORS Middleware

Enable cross-origin requests for frontend access:

	handler := middleware.CORS(cfg.CORSOrigin)(mux)

An empty origin echoes the request's Origin without allowing credentials;
a configured origin also gets Access-Control-Allow-Credentials. Preflight
OPTIONS requests are answered directly, before the secret gate.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusForbidden, "Not authorized")

Parse JSON request bodies (capped at 1 MiB):

	var req models.CheckAdminRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used when logging rejected requests.
*/
package middleware
