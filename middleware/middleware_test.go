// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/admin-gate/models"
)

const testSecret = "s3cr3t-value-for-tests"

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("downstream"))
	})
}

func TestRequireSharedSecret(t *testing.T) {
	testCases := []struct {
		name       string
		header     *string
		wantStatus int
		wantCalled bool
	}{
		{"missing header", nil, http.StatusForbidden, false},
		{"empty header", ptr(""), http.StatusForbidden, false},
		{"wrong secret", ptr("not-the-secret"), http.StatusForbidden, false},
		{"secret prefix", ptr(testSecret[:5]), http.StatusForbidden, false},
		{"secret with suffix", ptr(testSecret + "x"), http.StatusForbidden, false},
		{"different case", ptr(strings.ToUpper(testSecret)), http.StatusForbidden, false},
		{"correct secret", ptr(testSecret), http.StatusOK, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := RequireSharedSecret(testSecret)(okHandler(&called))

			req := httptest.NewRequest("POST", "/check-admin", strings.NewReader(`{"email":"ada@example.com"}`))
			if tc.header != nil {
				req.Header.Set(SharedSecretHeader, *tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if called != tc.wantCalled {
				t.Errorf("Expected downstream called=%v, got %v", tc.wantCalled, called)
			}
			if strings.Contains(w.Body.String(), testSecret) {
				t.Error("Response body leaks the configured secret")
			}
			for k, vals := range w.Header() {
				for _, v := range vals {
					if strings.Contains(v, testSecret) {
						t.Errorf("Response header %s leaks the configured secret", k)
					}
				}
			}

			if !tc.wantCalled {
				var resp models.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode error response: %v", err)
				}
				if resp.Detail != InvalidSecretDetail {
					t.Errorf("Expected detail '%s', got '%s'", InvalidSecretDetail, resp.Detail)
				}
			}
		})
	}
}

func TestRequireSharedSecret_ForwardsRequestUnchanged(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	})

	req := httptest.NewRequest("POST", "/check-admin", strings.NewReader(`{"email":"ada@example.com"}`))
	req.Header.Set(SharedSecretHeader, testSecret)
	w := httptest.NewRecorder()

	RequireSharedSecret(testSecret)(next).ServeHTTP(w, req)

	if gotMethod != "POST" || gotPath != "/check-admin" {
		t.Errorf("Expected POST /check-admin, got %s %s", gotMethod, gotPath)
	}
	if gotBody != `{"email":"ada@example.com"}` {
		t.Errorf("Expected body to reach downstream intact, got '%s'", gotBody)
	}
}

func TestRequireSharedSecret_EmptySecretPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for empty secret")
		}
	}()
	RequireSharedSecret("")
}

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		if RequestID(r.Context()) == "" {
			t.Error("Expected request id in context")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	// Wrap with logging middleware
	wrappedHandler := WithLogging(testHandler)

	// Create test request and recorder
	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	// Execute
	wrappedHandler(w, req)

	// Verify handler was called
	if !handlerCalled {
		t.Error("Expected handler to be called")
	}

	// Verify response was written correctly
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected X-Request-ID response header")
	}
}

func TestWithLogging_ReusesRequestID(t *testing.T) {
	var seen string
	var seenLogKey interface{}
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		seenLogKey = r.Context().Value(RequestIDLogKey)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()

	handler(w, req)

	if seen != "req-123" {
		t.Errorf("Expected request id 'req-123' in context, got '%s'", seen)
	}
	if seenLogKey != "req-123" {
		t.Errorf("Expected request id under the plain string key, got '%v'", seenLogKey)
	}
	if w.Header().Get(RequestIDHeader) != "req-123" {
		t.Errorf("Expected X-Request-ID 'req-123', got '%s'", w.Header().Get(RequestIDHeader))
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	// Test that logging doesn't interfere with various response codes
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, `{"id":1}`},
		{"Forbidden", http.StatusForbidden, `{"detail":"Not authorized"}`},
		{"Unprocessable", http.StatusUnprocessableEntity, `{"detail":"Invalid request body"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/check-admin", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestRecover(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("Panic value leaked into response")
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "admin response",
			statusCode: http.StatusOK,
			data:       models.AdminResponse{ID: 1, Name: "Ada", Email: "ada@example.com"},
			expected:   `{"id":1,"name":"Ada","email":"ada@example.com"}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusForbidden,
			data:       models.ErrorResponse{Detail: "Not authorized"},
			expected:   `{"detail":"Not authorized"}`,
		},
		{
			name:       "health response",
			statusCode: http.StatusServiceUnavailable,
			data:       models.HealthResponse{Status: models.StatusUnavailable},
			expected:   `{"status":"unavailable"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			// Check status code
			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			// Check Content-Type header
			contentType := w.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
			}

			// Check body (trim newline added by Encode)
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusForbidden, InvalidSecretDetail)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
	expected := `{"detail":"Forbidden: Invalid shared secret."}`
	if body := strings.TrimSpace(w.Body.String()); body != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, body)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ada@example.com"}`))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Email != "ada@example.com" {
			t.Errorf("Expected email 'ada@example.com', got '%s'", parsed.Email)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("trailing data after the JSON value", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ada@example.com"} junk`))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); !errors.Is(err, ErrTrailingData) {
			t.Errorf("Expected ErrTrailingData, got: %v", err)
		}
	})

	t.Run("two JSON values", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ada@example.com"}{"email":"eve@example.com"}`))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); !errors.Is(err, ErrTrailingData) {
			t.Errorf("Expected ErrTrailingData, got: %v", err)
		}
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("{\"email\":\"ada@example.com\"}\n  "))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		body := `{"email":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.CheckAdminRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for body over the limit")
		}
	})
}

func TestCORS(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/check-admin", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		CORS("")(nextHandler).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), SharedSecretHeader) {
			t.Error("Expected X-Shared-Secret in allowed headers")
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("Credentials must not be allowed for an echoed origin")
		}
	})

	t.Run("configured origin wins", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		CORS("https://admin.example.com")(nextHandler).ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "https://admin.example.com" {
			t.Errorf("Expected configured origin, got '%s'", w.Header().Get("Access-Control-Allow-Origin"))
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("Expected credentials to be allowed for the configured origin")
		}
		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
	})

	t.Run("request without origin defaults to wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		CORS("")(nextHandler).ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Error("Credentials must not be allowed with a wildcard origin")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For chained IPs",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100, 10.0.0.1"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Real-IP takes precedence over RemoteAddr",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "RemoteAddr with port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr

			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if result := GetClientIP(req); result != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, result)
			}
		})
	}
}

func ptr(s string) *string { return &s }
