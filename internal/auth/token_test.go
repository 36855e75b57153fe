package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"stayhub/internal/auth"
	"stayhub/internal/domain"
)

func TestIssueVerify_Roundtrip(t *testing.T) {
	tk := auth.NewTokens("test-secret", time.Hour)

	raw, err := tk.Issue(domain.User{ID: 7, Email: "a@x.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tk.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "a@x.com" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_Expired(t *testing.T) {
	tk := auth.NewTokens("test-secret", -time.Minute)

	raw, err := tk.Issue(domain.User{ID: 1, Email: "a@x.com", Name: "A"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := tk.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := auth.NewTokens("secret-one", time.Hour).Issue(domain.User{ID: 1})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := auth.NewTokens("secret-two", time.Hour).Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	tk := auth.NewTokens("test-secret", time.Hour)
	raw, err := tk.Issue(domain.User{ID: 1, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// flip a character in the payload segment
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape")
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tk.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	tk := auth.NewTokens("test-secret", time.Hour)
	if _, err := tk.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
