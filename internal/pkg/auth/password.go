// internal/pkg/auth/password.go
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN hashes an operator PIN with bcrypt at the given cost
func HashPIN(pin string, cost int) (string, error) {
	if len(pin) < 4 {
		return "", fmt.Errorf("PIN must be at least 4 characters")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// VerifyPIN compares a PIN against its bcrypt hash
func VerifyPIN(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
