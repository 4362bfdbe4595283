package security

import (
	"strings"
	"testing"
)

func TestArgon2HasherRoundTrip(t *testing.T) {
	hasher, err := NewArgon2Hasher(Argon2Config{})
	if err != nil {
		t.Fatalf("NewArgon2Hasher: %v", err)
	}

	encoded, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if encoded == "secret1" {
		t.Fatal("encoded hash equals plaintext")
	}
	if !strings.HasPrefix(encoded, "argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", encoded)
	}

	ok, err := hasher.Verify("secret1", encoded)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = hasher.Verify("not-the-password", encoded)
	if err != nil {
		t.Fatalf("Verify mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch to fail verification")
	}
}

func TestArgon2HasherSaltsDiffer(t *testing.T) {
	hasher, err := NewArgon2Hasher(DefaultArgon2Config())
	if err != nil {
		t.Fatalf("NewArgon2Hasher: %v", err)
	}

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash first: %v", err)
	}
	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash second: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestArgon2HasherEmptyInputs(t *testing.T) {
	hasher, err := NewArgon2Hasher(Argon2Config{})
	if err != nil {
		t.Fatalf("NewArgon2Hasher: %v", err)
	}

	ok, err := hasher.Verify("", "whatever")
	if err != nil || ok {
		t.Fatalf("empty password: ok=%v err=%v", ok, err)
	}

	ok, err = hasher.Verify("secret1", "")
	if err != nil || ok {
		t.Fatalf("empty hash: ok=%v err=%v", ok, err)
	}
}

func TestArgon2HasherRejectsInvalidConfig(t *testing.T) {
	_, err := NewArgon2Hasher(Argon2Config{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if err == nil {
		t.Fatal("expected low-memory configuration to be rejected")
	}
}

func TestArgon2HasherRejectsMalformedHash(t *testing.T) {
	hasher, err := NewArgon2Hasher(Argon2Config{})
	if err != nil {
		t.Fatalf("NewArgon2Hasher: %v", err)
	}

	if _, err := hasher.Verify("secret1", "not-an-encoded-hash"); err == nil {
		t.Fatal("expected malformed hash to error")
	}
}
