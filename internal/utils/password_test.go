package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3nh4-forte")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "s3nh4-forte" {
		t.Fatal("password stored in plain text")
	}
	if !CheckPassword(hashed, "s3nh4-forte") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hashed, "errada") {
		t.Error("wrong password accepted")
	}
}
