package auth

import (
	"testing"
	"time"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestTokenIssueValidate(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	tok, err := ts.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	sub, ok := ts.Validate(tok)
	if !ok {
		t.Fatal("freshly issued token did not validate")
	}
	if sub != "user@example.com" {
		t.Fatalf("subject = %q, want user@example.com", sub)
	}
}

func TestTokenExpired(t *testing.T) {
	ts := NewTokenService(testSecret, -time.Minute)
	tok, err := ts.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := ts.Validate(tok); ok {
		t.Fatal("expired token validated")
	}
}

func TestTokenInvalid(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	tok, err := ts.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := map[string]string{
		"tampered":  tok[:len(tok)-2] + "xx",
		"garbage":   "not.a.jwt",
		"empty":     "",
		"no-claims": "eyJhbGciOiJub25lIn0..",
	}
	for name, bad := range cases {
		if _, ok := ts.Validate(bad); ok {
			t.Errorf("%s token validated", name)
		}
	}

	// токен, подписанный другим ключом
	other := NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	foreign, err := other.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := ts.Validate(foreign); ok {
		t.Fatal("token signed with another secret validated")
	}
}
