package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// HashIterations is the PBKDF2 iteration count for new hashes
	HashIterations = 120000
	// SaltLength is the salt size in bytes
	SaltLength = 16
	// KeyLength is the derived key size in bytes
	KeyLength = 32

	hashScheme = "pbkdf2"
)

var randomRead = rand.Read

// HashPasscode hashes a dealer passcode using PBKDF2-HMAC-SHA256.
// The stored format is "pbkdf2$<iterations>$<saltB64>$<hashB64>".
func HashPasscode(passcode string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := randomRead(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passcode), salt, HashIterations, KeyLength, sha256.New)

	return strings.Join([]string{
		hashScheme,
		strconv.Itoa(HashIterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, "$"), nil
}

// VerifyPasscode re-derives the hash with the stored salt and iteration count
// and compares in constant time. Any malformed stored value verifies false.
func VerifyPasscode(passcode, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 4 || parts[0] != hashScheme {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	expected, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(expected) == 0 {
		return false
	}

	key := pbkdf2.Key([]byte(passcode), salt, iterations, len(expected), sha256.New)
	return hmac.Equal(key, expected)
}

// GenerateRandomToken generates a random token of the given byte length,
// hex encoded
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateResetToken generates a 64-character passcode reset token
func GenerateResetToken() (string, error) {
	return GenerateRandomToken(32) // 32 bytes = 64 hex characters
}

// GeneratePasscode generates a short one-time passcode for new dealers
func GeneratePasscode() (string, error) {
	return GenerateRandomToken(4) // 4 bytes = 8 hex characters
}
