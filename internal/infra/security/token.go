package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ResetTokenLength is the fixed length of password reset tokens. The
// token travels verbatim as a URL query parameter, so the alphabet is
// restricted to URL-safe alphanumerics.
const ResetTokenLength = 45

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateResetToken returns a cryptographically random alphanumeric
// string of the given length.
func GenerateResetToken(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("token length must be positive")
	}

	max := big.NewInt(int64(len(tokenAlphabet)))
	out := make([]byte, length)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		out[i] = tokenAlphabet[idx.Int64()]
	}

	return string(out), nil
}
