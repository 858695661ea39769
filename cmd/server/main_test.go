package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	called := false
	handler := corsMiddleware("https://ledger.example.com", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("preflight", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/sharedledger.v1.AuthService/Login", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status: expected 200, got %d", rec.Code)
		}
		if called {
			t.Error("preflight should not reach the handler")
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ledger.example.com" {
			t.Errorf("allow origin: got %q", got)
		}
	})

	t.Run("request", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sharedledger.v1.AuthService/Login", nil))
		if !called {
			t.Error("expected handler to be called")
		}
	})
}
