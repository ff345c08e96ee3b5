package scoreservice

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	tokenLength   = 16
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// generateToken returns a random 16-character alphanumeric token (~95 bits).
// Collisions are not defended against beyond the unique constraint at insert
// time; Submit retries with a fresh token on the astronomically rare hit.
func generateToken() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	token := make([]byte, tokenLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate token: %w", err)
		}
		token[i] = tokenAlphabet[n.Int64()]
	}
	return string(token), nil
}
