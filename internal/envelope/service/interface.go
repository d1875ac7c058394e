// Package service implements the envelope decryption stage: AEAD ciphers
// (AES-256-GCM, ChaCha20-Poly1305) and the decryptor that binds tag
// verification to decryption of a fetched object.
package service

import (
	envelopeDomain "github.com/archivebot/decrypt-s3-object/internal/envelope/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext
	// (with the authentication tag appended) and the generated nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext (with the authentication tag appended)
	// using the provided nonce and AAD. Tag verification is part of the
	// operation; no plaintext is returned when it fails.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length the cipher requires.
	NonceSize() int

	// Overhead returns the authentication tag length the cipher produces.
	Overhead() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg envelopeDomain.Algorithm) (AEAD, error)
}
