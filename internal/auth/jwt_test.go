package auth

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-key")

func TestMintAndValidateToken(t *testing.T) {
	token, err := MintToken(testSecret, "user-1", "user@example.com", "Test User", time.Hour)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	claims, err := ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.Sub != "user-1" {
		t.Errorf("expected sub user-1, got %s", claims.Sub)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email claim, got %s", claims.Email)
	}
	if claims.Iss != "stockdash" {
		t.Errorf("expected issuer stockdash, got %s", claims.Iss)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := MintToken(testSecret, "user-1", "user@example.com", "", time.Hour)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	if _, err := ValidateToken(token, []byte("other-secret")); err == nil {
		t.Error("expected signature validation to fail with wrong secret")
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := MintToken(testSecret, "user-1", "user@example.com", "", time.Hour)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + ".eyJzdWIiOiJhZG1pbiJ9." + parts[2]

	if _, err := ValidateToken(tampered, testSecret); err == nil {
		t.Error("expected validation to fail for tampered payload")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := MintToken(testSecret, "user-1", "user@example.com", "", -time.Minute)
	if err != nil {
		t.Fatalf("MintToken: %v", err)
	}

	if _, err := ValidateToken(token, testSecret); err == nil {
		t.Error("expected validation to fail for expired token")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := ValidateToken(token, testSecret); err == nil {
			t.Errorf("expected error for malformed token %q", token)
		}
	}
}

func TestTokenFromRequest_Sources(t *testing.T) {
	token, _ := MintToken(testSecret, "user-1", "user@example.com", "", time.Hour)

	r := httptest.NewRequest("GET", "/", nil)
	if got := TokenFromRequest(r); got != "" {
		t.Errorf("expected empty token without credentials, got %q", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	if got := TokenFromRequest(r); got != token {
		t.Error("expected token from Authorization header")
	}

	r = httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	SetSessionCookie(w, token, time.Hour)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	if got := TokenFromRequest(r); got != token {
		t.Error("expected token from session cookie")
	}
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Name != SessionCookieName || cookies[0].MaxAge != -1 {
		t.Errorf("expected expired session cookie, got %+v", cookies[0])
	}
}
