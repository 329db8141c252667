package crypto

import (
	"strings"
	"testing"
)

func TestPasswordRoundtrip(t *testing.T) {
	encoded := HashPassword("hunter2")
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
	if !VerifyPassword(encoded, "hunter2") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(encoded, "hunter3") {
		t.Fatal("wrong password accepted")
	}
	if VerifyPassword(encoded, "") {
		t.Fatal("empty password accepted")
	}
}

func TestPasswordHashesDiffer(t *testing.T) {
	a := HashPassword("same")
	b := HashPassword("same")
	if a == b {
		t.Fatal("two hashes of the same password share a salt")
	}
	if !VerifyPassword(a, "same") || !VerifyPassword(b, "same") {
		t.Fatal("fresh hashes did not verify")
	}
}

func TestVerifyPasswordMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$salt",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=99$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA",
	} {
		if VerifyPassword(encoded, "anything") {
			t.Errorf("malformed encoding accepted: %q", encoded)
		}
	}
}
