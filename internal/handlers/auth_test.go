package handlers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordMatchesBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !passwordMatches(string(hash), "secret1") {
		t.Fatal("expected bcrypt comparison to succeed")
	}
	if passwordMatches(string(hash), "wrong") {
		t.Fatal("expected bcrypt comparison to fail for wrong password")
	}
}

func TestPasswordMatchesLegacyPlaintext(t *testing.T) {
	if !passwordMatches("secret1", "secret1") {
		t.Fatal("expected plaintext comparison to succeed for legacy rows")
	}
	if passwordMatches("secret1", "wrong") {
		t.Fatal("expected plaintext comparison to fail for wrong password")
	}
}
