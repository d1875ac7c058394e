package domain

// Algorithm represents the content cipher used to encrypt the object payload.
//
// Both supported algorithms provide Authenticated Encryption with Associated
// Data (AEAD): the authentication tag is verified as part of decryption and
// plaintext is never released on a failed tag check.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	//
	// The archival producer's default content cipher. 256-bit key,
	// 12-byte nonce, 16-byte authentication tag appended to the payload.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	//
	// Same key, nonce and tag sizes as AESGCM; preferred on platforms
	// without AES hardware acceleration.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Key, nonce and tag sizes shared by both supported algorithms.
const (
	// KeySize is the required data key length in bytes (256-bit keys).
	KeySize = 32

	// NonceSize is the required nonce length in bytes (96-bit nonces).
	NonceSize = 12

	// TagSize is the authentication tag length in bytes (128-bit tags).
	TagSize = 16
)

// Object metadata attribute names, as attached by the archival producer.
// These follow the S3 client-side encryption metadata layout; the object
// store strips the user-metadata prefix, so keys arrive in this bare form.
const (
	// MetaIV is the base64-encoded nonce.
	MetaIV = "x-amz-iv"

	// MetaWrappedKey is the base64-encoded data key wrapped by the key service.
	MetaWrappedKey = "x-amz-key-v2"

	// MetaTagLength is the authentication tag length in bits.
	MetaTagLength = "x-amz-tag-len"

	// MetaMaterialDescription is a flat JSON object that doubles as the key
	// service encryption context and may name the wrapping master key.
	MetaMaterialDescription = "x-amz-matdesc"

	// MetaContentAlgorithm optionally names the content cipher.
	// Absent means AES-GCM.
	MetaContentAlgorithm = "x-amz-cek-alg"
)

// Wire identifiers accepted in the content algorithm attribute.
const (
	contentAlgAESGCM   = "AES/GCM/NoPadding"
	contentAlgChaCha20 = "ChaCha20-Poly1305"
)

// MatDescKeyID is the material description entry naming the master key that
// wrapped the data key. Optional; when absent the key service resolves the
// key from the wrapped blob itself.
const MatDescKeyID = "kms_cmk_id"

// ParseContentAlgorithm maps the metadata cipher identifier to an Algorithm.
// An empty identifier selects AES-GCM, matching objects written before the
// producer recorded the cipher. Returns ErrUnsupportedAlgorithm for anything
// unrecognized.
func ParseContentAlgorithm(identifier string) (Algorithm, error) {
	switch identifier {
	case "", contentAlgAESGCM:
		return AESGCM, nil
	case contentAlgChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
