package util

import (
	"crypto/rand"
	"encoding/hex"
)

// Nonce returns a random string of digits lowercase hex characters.
func Nonce(digits int) string {
	if digits <= 0 {
		return ""
	}
	buf := make([]byte, (digits+1)/2)
	// crypto/rand.Read never returns an error
	rand.Read(buf)
	return hex.EncodeToString(buf)[:digits]
}
