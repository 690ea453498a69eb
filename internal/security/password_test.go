package security_test

import (
	"testing"

	"github.com/stackmart/shophub/internal/security"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := security.HashPassword("abc123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "abc123456" {
		t.Fatal("hash equals plaintext")
	}

	if !security.VerifyPassword("abc123456", hash) {
		t.Fatal("correct password rejected")
	}

	if security.VerifyPassword("wrong999pass", hash) {
		t.Fatal("wrong password accepted")
	}
}

// bcrypt salts every hash, so two hashes of the same input differ while
// both still verify.
func TestHashesAreSalted(t *testing.T) {
	h1, err := security.HashPassword("abc123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	h2, err := security.HashPassword("abc123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if h1 == h2 {
		t.Fatal("expected distinct salted hashes")
	}

	if !security.VerifyPassword("abc123456", h1) || !security.VerifyPassword("abc123456", h2) {
		t.Fatal("salted hash failed verification")
	}
}
