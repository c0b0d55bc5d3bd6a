package secrets

import "errors"

var (
	// ErrInvalidKey indicates a key of the wrong length.
	ErrInvalidKey = errors.New("invalid key: must be 32 bytes")

	// ErrEncryptionFailed indicates cipher construction or sealing failed.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed indicates opening failed. It covers truncated
	// input and tag verification failure without distinguishing them.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyDerivationFailed indicates HKDF expansion failed.
	ErrKeyDerivationFailed = errors.New("key derivation failed")
)
