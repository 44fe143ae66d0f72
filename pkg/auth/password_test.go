package auth

import "testing"

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPasswordHash("s3cret", hash) {
		t.Error("correct password must verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password must not verify")
	}
}
