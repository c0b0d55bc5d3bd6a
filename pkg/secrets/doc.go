// Package secrets provides authenticated encryption for session payloads.
//
// Per-session keys are derived from a master key with HKDF-SHA256, using the
// session id as derivation context so every session encrypts under its own
// key. Payloads are sealed with AES-256-GCM; the random nonce is prepended to
// the ciphertext+tag output.
//
// Decryption fails closed with a single error for truncated input and tag
// verification failure, without distinguishing the cause.
//
// Basic usage:
//
//	master, _ := secrets.GenerateKey()
//	key, _ := secrets.DeriveKey(master, sessionID)
//
//	ciphertext, _ := secrets.Encrypt(key, []byte("payload"))
//	plaintext, _ := secrets.Decrypt(key, ciphertext)
package secrets
