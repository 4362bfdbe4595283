package security

import (
	"strings"
	"testing"
)

func TestGenerateResetTokenLength(t *testing.T) {
	token, err := GenerateResetToken(ResetTokenLength)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if len(token) != ResetTokenLength {
		t.Fatalf("expected %d characters, got %d", ResetTokenLength, len(token))
	}
}

func TestGenerateResetTokenAlphabet(t *testing.T) {
	token, err := GenerateResetToken(ResetTokenLength)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token contains character outside alphabet: %q", r)
		}
	}
}

func TestGenerateResetTokenUnique(t *testing.T) {
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		token, err := GenerateResetToken(ResetTokenLength)
		if err != nil {
			t.Fatalf("GenerateResetToken: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatal("generated duplicate token")
		}
		seen[token] = struct{}{}
	}
}

func TestGenerateResetTokenRejectsNonPositiveLength(t *testing.T) {
	if _, err := GenerateResetToken(0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := GenerateResetToken(-3); err == nil {
		t.Fatal("expected error for negative length")
	}
}
