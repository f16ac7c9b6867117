package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the hex SHA-256 digest of the password. The scheme is
// intentionally kept compatible with the hashes already stored for this event;
// it is not a general-purpose password hash.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func CheckPasswordHash(password, hash string) bool {
	return HashPassword(password) == hash
}
