package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	digest, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "pw1" || strings.Contains(digest, "pw1") {
		t.Fatal("digest must not contain the plaintext secret")
	}

	if err := ComparePassword(digest, "pw1"); err != nil {
		t.Errorf("expected matching secret to verify, got %v", err)
	}
	if err := ComparePassword(digest, "wrong"); err == nil {
		t.Error("expected mismatched secret to fail")
	}
}

func TestHashPasswordProducesUniqueDigests(t *testing.T) {
	first, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("expected distinct salts to produce distinct digests")
	}
}

func TestHashPasswordRejectsInvalidCost(t *testing.T) {
	if _, err := HashPassword("pw1", bcrypt.MaxCost+1); err == nil {
		t.Error("expected error for out-of-range cost")
	}
}
