package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginRoundTrip(t *testing.T) {
	iss := &Issuer{Secret: []byte("s3cret"), TTL: time.Hour}
	u, tok, err := iss.Login("")
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Admin User" || u.Role != "admin" {
		t.Fatalf("user = %+v", u)
	}
	c, err := iss.ParseToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Admin User" || c.Subject != "1" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestParseRejectsOtherSecret(t *testing.T) {
	a := &Issuer{Secret: []byte("a")}
	b := &Issuer{Secret: []byte("b")}
	_, tok, _ := a.Login("kasir")
	if _, err := b.ParseToken(tok); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestEmptySecret(t *testing.T) {
	if _, _, err := (&Issuer{}).Login("x"); err != ErrEmptySecret {
		t.Fatalf("err = %v", err)
	}
}

func TestRequire(t *testing.T) {
	iss := &Issuer{Secret: []byte("s3cret")}
	var seen *Claims
	h := iss.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}

	_, tok, _ := iss.Login("chef")
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || seen == nil || seen.Name != "chef" {
		t.Fatalf("with token: %d, claims=%+v", rec.Code, seen)
	}
}
