// Package auth implements API-key credentials for agents.
//
// A key looks like "ar_<key id>_<secret>". The key id is stored in the clear
// so the owning agent can be looked up; the secret is stored only as an
// Argon2id hash with a per-key salt. The plaintext key is shown exactly once,
// at connect or rotation time.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const keyPrefix = "ar"

// Argon2id parameters
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Key is a freshly generated credential. Plaintext exists only in memory.
type Key struct {
	Plaintext string // full bearer value, returned to the caller once
	KeyID     string // stored in the clear for lookup
	Hash      string // base64 Argon2id hash of the secret
	Salt      string // base64 per-key salt
}

// Generate creates a new API key
func Generate() (*Key, error) {
	idBytes := make([]byte, 6)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key id: %w", err)
	}

	secretBytes := make([]byte, 24)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key secret: %w", err)
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	keyID := hex.EncodeToString(idBytes)
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)
	hash := hashSecret(secret, salt)

	return &Key{
		Plaintext: fmt.Sprintf("%s_%s_%s", keyPrefix, keyID, secret),
		KeyID:     keyID,
		Hash:      base64.StdEncoding.EncodeToString(hash),
		Salt:      base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// Parse splits a bearer value into key id and secret
func Parse(bearer string) (keyID, secret string, err error) {
	parts := strings.SplitN(bearer, "_", 3)
	if len(parts) != 3 || parts[0] != keyPrefix || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("malformed API key")
	}
	return parts[1], parts[2], nil
}

// Verify checks a presented secret against the stored hash and salt.
// Comparison is constant-time.
func Verify(secret, storedHash, storedSalt string) bool {
	salt, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil {
		return false
	}

	got := hashSecret(secret, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

func hashSecret(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}
