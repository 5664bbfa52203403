package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberPrefix keeps generated account numbers distinguishable from
// internal UUIDs at a glance.
const accountNumberPrefix = "ACC"

const accountNumberDigits = 10

// GenerateAccountNumber produces a candidate account number of the form
// "ACC" followed by ten random digits. Uniqueness is enforced by the store's
// unique constraint; callers retry on collision.
func GenerateAccountNumber() (string, error) {
	digits := make([]byte, accountNumberDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return accountNumberPrefix + string(digits), nil
}
