// Package kms implements the key-unwrap stage: recovering the plaintext data
// key by sending the wrapped key to the managed key service. The plaintext
// key only ever exists in process memory and is never logged.
package kms

import (
	"context"

	"github.com/archivebot/decrypt-s3-object/internal/errors"
)

// KeyService defines the narrow interface the decrypt pipeline needs from
// the managed key service.
type KeyService interface {
	// Unwrap decrypts the wrapped data key. The encryption context must
	// match the one used at wrap time; keyID is optional and, when set,
	// pins the unwrap to that master key.
	Unwrap(
		ctx context.Context,
		wrappedKey []byte,
		keyID string,
		encryptionContext map[string]string,
	) ([]byte, error)
}

// Unwrap error definitions.
//
// All kinds are terminal configuration or authorization problems except
// ErrKeyServiceUnavailable, which is transient. Retry policy belongs to the
// operator, not this package.
var (
	// ErrKeyNotFound indicates the referenced master key is unknown to the
	// key service.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "master key not found")

	// ErrKeyAccessDenied indicates the caller lacks decrypt permission on
	// the master key.
	ErrKeyAccessDenied = errors.Wrap(errors.ErrAccessDenied, "key service access denied")

	// ErrWrappedKeyMalformed indicates the wrapped key is not a valid
	// ciphertext for the master key, or was wrapped under a different key
	// or encryption context.
	ErrWrappedKeyMalformed = errors.Wrap(errors.ErrInvalidInput, "wrapped key malformed")

	// ErrKeyServiceUnavailable indicates the key service could not be
	// reached or failed internally.
	ErrKeyServiceUnavailable = errors.Wrap(errors.ErrUnavailable, "key service unavailable")
)
