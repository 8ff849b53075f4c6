package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// HashAlgorithm represents supported hashing algorithms.
type HashAlgorithm string

const (
	AlgorithmBcrypt HashAlgorithm = "bcrypt"
	AlgorithmArgon2 HashAlgorithm = "argon2"
)

// ErrInvalidKey indicates the key format is invalid.
var ErrInvalidKey = errors.New("invalid API key format")

// KeyPrefix is prepended to all API keys for easy identification.
const KeyPrefix = "fin_"

// GenerateAPIKey generates a new API key with the format fin_<random>.
// It returns the raw key (shown once) and its short prefix for logs.
func GenerateAPIKey() (rawKey, prefix string, err error) {
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random key: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(keyBytes)
	return KeyPrefix + encoded, encoded[:8], nil
}

// HashKey hashes an API key using the configured algorithm.
func HashKey(rawKey string, cfg Config) (string, error) {
	keyData, ok := strings.CutPrefix(rawKey, KeyPrefix)
	if !ok || keyData == "" {
		return "", ErrInvalidKey
	}

	switch HashAlgorithm(cfg.APIKeyHashAlgorithm) {
	case AlgorithmArgon2:
		return hashArgon2(keyData, cfg)
	default:
		return hashBcrypt(keyData, cfg.BcryptCost)
	}
}

// VerifyKey verifies a raw key against a stored hash. The algorithm is
// detected from the hash itself.
func VerifyKey(rawKey, storedHash string) bool {
	keyData, ok := strings.CutPrefix(rawKey, KeyPrefix)
	if !ok {
		return false
	}

	switch {
	case strings.HasPrefix(storedHash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(keyData)) == nil
	case strings.HasPrefix(storedHash, "$argon2"):
		return verifyArgon2(keyData, storedHash)
	}
	return false
}

// ExtractKeyPrefix extracts the prefix from a raw key for identification.
func ExtractKeyPrefix(rawKey string) string {
	keyData, ok := strings.CutPrefix(rawKey, KeyPrefix)
	if !ok || len(keyData) < 8 {
		return ""
	}
	return keyData[:8]
}

func hashBcrypt(data string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(data), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(hash), nil
}

// hashArgon2 encodes as $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>.
func hashArgon2(data string, cfg Config) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(data), salt, cfg.Argon2Time, cfg.Argon2Memory, cfg.Argon2Threads, 32)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, cfg.Argon2Memory, cfg.Argon2Time, cfg.Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyArgon2(data, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(data), salt, iterations, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1
}
