package crypto

import (
	"crypto/rand"
	"math/big"
)

const TokenLength = 40

// GenerateToken creates an opaque bearer token handed out at login. Tokens
// are stored server-side, so revocation is a row delete.
func GenerateToken() string {
	return secureRandomString(TokenLength)
}

func secureRandomString(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[n.Int64()]
	}
	return string(result)
}
