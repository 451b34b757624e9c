package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a process-wide cost factor. Hashing is
// intentionally CPU-expensive and may dominate request latency.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost. Costs outside the
// bcrypt range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return PasswordHasher{cost: cost}
}

// Hash derives a salted one-way hash from plaintext.
func (h PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. The comparison is
// constant-time; a malformed hash yields false, never an error.
func (PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
