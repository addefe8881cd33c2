package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Error("expected claims on request context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(claims.Sub))
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := MintToken(testSecret, "user-42", "u@example.com", "", time.Hour)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	handler := RequireAuth(testSecret)(protectedHandler(t))

	r := httptest.NewRequest("GET", "/api/stocks/data", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "user-42" {
		t.Errorf("expected handler to see user-42, got %s", w.Body.String())
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	handler := RequireAuth(testSecret)(protectedHandler(t))

	r := httptest.NewRequest("GET", "/api/stocks/data", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if body["status"] != "fail" {
		t.Errorf("expected fail status, got %s", body["status"])
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	handler := RequireAuth(testSecret)(protectedHandler(t))

	r := httptest.NewRequest("GET", "/api/stocks/data", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
