package port

// PasswordHasher hashes and verifies credentials using the configured
// one-way algorithm.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, encoded string) (bool, error)
}
