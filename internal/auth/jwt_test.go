package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice@x.com", "employee", 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := VerifyToken(testSecret, token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if claims.Subject != "alice@x.com" {
		t.Errorf("subject = %q; want %q", claims.Subject, "alice@x.com")
	}
	if claims.Role != "employee" {
		t.Errorf("role = %q; want %q", claims.Role, "employee")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice@x.com", "employee", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := VerifyToken(testSecret, token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestVerifyTokenTampered(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice@x.com", "employee", 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	// Flip one character of the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token structure: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := VerifyToken(testSecret, tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "alice@x.com", "employee", 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := VerifyToken("another-secret", token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	testCases := []string{"", "garbage", "a.b", "a.b.c"}

	for _, tc := range testCases {
		if _, err := VerifyToken(testSecret, tc); err == nil {
			t.Errorf("VerifyToken(%q) succeeded; want error", tc)
		}
	}
}
