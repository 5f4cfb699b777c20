package utils

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Str0ngPW!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPassword("Str0ngPW!", hash) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	testCases := []string{"", "not-a-hash", "$2b$garbage", "plaintext"}

	for _, tc := range testCases {
		if VerifyPassword("password", tc) {
			t.Errorf("VerifyPassword(%q) = true; want false", tc)
		}
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if first == second {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Errorf("len = %d; want 16", len(s))
	}
}

func TestGenerateTempPassword(t *testing.T) {
	first, err := GenerateTempPassword(10)
	if err != nil {
		t.Fatalf("GenerateTempPassword: %v", err)
	}
	if len(first) != 10 {
		t.Errorf("len = %d; want 10", len(first))
	}
	for _, r := range first {
		if !strings.ContainsRune(chars, r) {
			t.Errorf("unexpected character %q", r)
		}
	}

	second, err := GenerateTempPassword(10)
	if err != nil {
		t.Fatalf("GenerateTempPassword: %v", err)
	}
	if first == second {
		t.Error("expected distinct temporary passwords")
	}
}
