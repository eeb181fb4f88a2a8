package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("Password123!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Password123!" {
		t.Fatalf("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "Password123!") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "password123!") {
		t.Fatalf("wrong password accepted")
	}
	if VerifyPassword("not-a-bcrypt-hash", "Password123!") {
		t.Fatalf("malformed hash accepted")
	}
}
