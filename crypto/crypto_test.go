package crypto

import (
	"testing"

	"local/islanders/log"
	"local/islanders/simple"
)

func init() {
	log.Init("/tmp", log.ErrorLevel)
}

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt(t *testing.T) {
	for _, plain := range []string{"", "x", "a longer message with spaces"} {
		c := Encrypt(plain, testKey)
		got, err := Decrypt(c, testKey)
		if err != nil {
			t.Fatalf("Decrypt(%q): %s", plain, err)
		}
		if got != plain {
			t.Fatalf("roundtrip: got %q want %q", got, plain)
		}
	}
}

func TestDecryptTampered(t *testing.T) {
	c := Encrypt("secret", testKey)
	c[len(c)-1] ^= 0xff
	if _, err := Decrypt(c, testKey); err == nil {
		t.Fatal("tampered ciphertext decrypted")
	}
	if _, err := Decrypt([]byte("short"), testKey); err == nil {
		t.Fatal("truncated ciphertext decrypted")
	}
}

func TestCookieRoundtrip(t *testing.T) {
	cfg := simple.Config{ConfigKeys: map[string][]byte{"cookie": testKey}}

	v := NewCookieValue("G123", cfg)
	id, ok := ReadCookie(v, "1.2.3.4", "/ws/lobby", cfg)
	if !ok {
		t.Fatal("fresh cookie rejected")
	}
	if id != "G123" {
		t.Fatalf("got id %q want G123", id)
	}

	if _, ok := ReadCookie("not-base64!!!", "1.2.3.4", "/", cfg); ok {
		t.Fatal("garbage cookie accepted")
	}

	// A cookie minted under another key must not read back.
	other := simple.Config{ConfigKeys: map[string][]byte{"cookie": []byte("ffffffffffffffff0123456789abcdef")}}
	if _, ok := ReadCookie(NewCookieValue("G5", other), "1.2.3.4", "/", cfg); ok {
		t.Fatal("cookie from another key accepted")
	}
}
