package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quantlab/stockdash/internal/auth"
	"github.com/quantlab/stockdash/internal/common"
)

func newAuthHandler(store *fakeUserStore) *AuthHandler {
	return NewAuthHandler(common.NewSilentLogger(), store, testSecret, time.Hour)
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegister_CreatesUserAndSession(t *testing.T) {
	store := newFakeUserStore()
	h := newAuthHandler(store)

	body := `{"email":"New@Example.com","password":"secret1","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	if resp["status"] != "success" {
		t.Errorf("expected success, got %v", resp["status"])
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Error("expected a session token in response")
	}
	if _, err := auth.ValidateToken(token, testSecret); err != nil {
		t.Errorf("returned token does not validate: %v", err)
	}

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value != token {
		t.Error("expected session cookie carrying the token")
	}

	// Email is normalized and the stored password is a hash, not the input.
	stored, err := store.GetByEmail(req.Context(), "new@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Password == "secret1" {
		t.Error("password stored in plaintext")
	}
	if !auth.CheckPassword(stored.Password, "secret1") {
		t.Error("stored hash does not verify against original password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "taken@example.com", "secret1")
	h := newAuthHandler(store)

	body := `{"email":"taken@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Email is already in use" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing email", `{"password":"secret1"}`, "Please provide email and password"},
		{"missing password", `{"email":"a@b.com"}`, "Please provide email and password"},
		{"short password", `{"email":"a@b.com","password":"abc"}`, "Password must be at least 6 characters long"},
		{"malformed body", `{not json`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAuthHandler(newFakeUserStore())
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleRegister(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["message"] != tt.message {
				t.Errorf("expected %q, got %v", tt.message, resp["message"])
			}
		})
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "user@example.com", "secret1")
	h := newAuthHandler(store)

	body := `{"email":"user@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if token, _ := resp["token"].(string); token == "" {
		t.Error("expected a session token")
	}
	if sessionCookie(rec) == nil {
		t.Error("expected session cookie to be set")
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	store := newFakeUserStore()
	seedUser(t, store, "user@example.com", "secret1")
	h := newAuthHandler(store)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"user@example.com","password":"wrong!"}`},
		{"unknown email", `{"email":"ghost@example.com","password":"secret1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.HandleLogin(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["message"] != "Incorrect email or password" {
				t.Errorf("unexpected message: %v", resp["message"])
			}
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newAuthHandler(newFakeUserStore())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(rec)
	if cookie == nil {
		t.Fatal("expected session cookie in response")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("expected expired cookie, got MaxAge %d", cookie.MaxAge)
	}
}

func TestMe(t *testing.T) {
	store := newFakeUserStore()
	user := seedUser(t, store, "user@example.com", "secret1")
	h := newAuthHandler(store)

	rec := doAuthed(t, h.HandleMe, user, http.MethodGet, "/api/auth/me", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := dataField(t, decodeBody(t, rec))
	me, _ := data["user"].(map[string]interface{})
	if me["email"] != "user@example.com" {
		t.Errorf("unexpected user payload: %v", data["user"])
	}
	if _, exposed := me["Password"]; exposed {
		t.Error("password hash leaked in response")
	}
}

func TestMe_RequiresToken(t *testing.T) {
	store := newFakeUserStore()
	h := newAuthHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	auth.RequireAuth(testSecret)(http.HandlerFunc(h.HandleMe)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMe_DeletedUser(t *testing.T) {
	store := newFakeUserStore()
	user := seedUser(t, store, "user@example.com", "secret1")
	h := newAuthHandler(store)

	if err := store.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rec := doAuthed(t, h.HandleMe, user, http.MethodGet, "/api/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "The user belonging to this session no longer exists" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}
