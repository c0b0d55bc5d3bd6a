package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required key length for AES-256.
	KeySize = 32

	// saltInfo provides HKDF domain separation for this package's keys.
	saltInfo = "accesskit-session-keys-v1"
)

// ValidateKey checks that the key has the correct length.
func ValidateKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKey
	}
	return nil
}

// GenerateKey creates a new random 32-byte key from the CSPRNG. The source
// is safe for concurrent use, so keys generated under concurrent session
// creation remain unpredictable.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeriveKey derives a per-context key from the master key with HKDF-SHA256.
// The context string (typically a session id) acts as the salt, so distinct
// sessions get independent keys from the same master.
func DeriveKey(masterKey []byte, context string) ([]byte, error) {
	if err := ValidateKey(masterKey); err != nil {
		return nil, err
	}

	hkdfReader := hkdf.New(sha256.New, masterKey, []byte(context), []byte(saltInfo))

	derivedKey := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdfReader, derivedKey); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return derivedKey, nil
}
