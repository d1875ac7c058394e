package domain

import (
	"github.com/archivebot/decrypt-s3-object/internal/errors"
)

// Envelope decryption error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so the CLI can classify failures without inspecting crypto internals.
var (
	// ErrMalformedEnvelope indicates the object metadata is missing a
	// required attribute or an attribute has an invalid shape (bad base64,
	// wrong nonce or tag length, tag bits not a multiple of 8). Raised
	// before any key-unwrap or cipher call.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope metadata")

	// ErrUnsupportedAlgorithm indicates the metadata references a content
	// cipher this tool does not implement.
	//
	// Supported: AES/GCM/NoPadding (AES-256-GCM), ChaCha20-Poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the data key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates authenticated decryption failed.
	//
	// A wrong key, corrupted ciphertext and a tampered tag are
	// cryptographically indistinguishable, so they are deliberately
	// reported as this single error to avoid acting as an oracle.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
