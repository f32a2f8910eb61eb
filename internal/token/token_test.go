package token

import (
	"strings"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)

	tok, err := m.Issue(42, true)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Errorf("IsAdmin = false, want true")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", -time.Minute)

	tok, err := m.Issue(1, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := m.Verify(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewManager("right-secret", time.Hour).Issue(1, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewManager("wrong-secret", time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected error for wrong secret, got nil")
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)
	tok, err := m.Issue(1, false)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := m.Verify(tampered); err == nil {
		t.Fatalf("expected error for tampered signature, got nil")
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)
	if _, err := m.Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestDefaultTTL(t *testing.T) {
	t.Parallel()

	m := NewManager("s", 0)
	if m.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", m.ttl, DefaultTTL)
	}
}
