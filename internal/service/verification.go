package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// generateVerificationCode returns a random 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// hashVerificationCode hashes a code for storage; codes are never kept
// in clear text.
func hashVerificationCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash verification code: %w", err)
	}
	return string(hash), nil
}

func verificationCodeMatches(hash *string, code string) bool {
	if hash == nil || code == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(code)) == nil
}
