package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an operator's plaintext password with bcrypt at the
// default cost. Operator accounts are provisioned out of band, so hashing
// happens rarely and the default cost is acceptable.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
