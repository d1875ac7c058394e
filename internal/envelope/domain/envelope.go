// Package domain defines the envelope metadata contract between the archival
// producer and this tool: the wrapped data key, nonce, tag length and
// material description carried as sidecar attributes on each stored object.
package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/jellydator/validation"

	appvalidation "github.com/archivebot/decrypt-s3-object/internal/validation"
)

// Envelope holds the parsed, validated encryption material for one object.
// Constructed only through ParseEnvelope so malformed metadata is rejected
// before it can reach the key service or a cipher.
type Envelope struct {
	// IV is the decoded nonce, exactly NonceSize bytes.
	IV []byte

	// WrappedKey is the decoded data key, still encrypted under the master key.
	WrappedKey []byte

	// TagLength is the authentication tag length in bytes.
	TagLength int

	// MaterialDescription is the producer's material description, passed to
	// the key service as the encryption context during unwrap.
	MaterialDescription map[string]string

	// KeyID is the master-key reference from the material description,
	// empty when the producer did not record one.
	KeyID string

	// Algorithm is the content cipher used for the payload.
	Algorithm Algorithm
}

// rawEnvelope carries the untyped metadata attributes through validation.
type rawEnvelope struct {
	IV         string
	WrappedKey string
	TagBits    string
	MatDesc    string
	ContentAlg string
}

func (r rawEnvelope) validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IV,
			validation.Required.Error("missing required metadata: "+MetaIV),
			appvalidation.Base64,
		),
		validation.Field(&r.WrappedKey,
			validation.Required.Error("missing required metadata: "+MetaWrappedKey),
			appvalidation.Base64,
		),
		validation.Field(&r.TagBits,
			validation.Required.Error("missing required metadata: "+MetaTagLength),
		),
		validation.Field(&r.MatDesc,
			validation.Required.Error("missing required metadata: "+MetaMaterialDescription),
			appvalidation.FlatJSONObject,
		),
	)
}

// ParseEnvelope builds a validated Envelope from raw object metadata.
//
// Every failure wraps ErrMalformedEnvelope except an unrecognized content
// cipher, which wraps ErrUnsupportedAlgorithm. No network or cryptographic
// call happens here; this is the fail-fast boundary for untrusted metadata.
func ParseEnvelope(meta map[string]string) (*Envelope, error) {
	raw := rawEnvelope{
		IV:         meta[MetaIV],
		WrappedKey: meta[MetaWrappedKey],
		TagBits:    meta[MetaTagLength],
		MatDesc:    meta[MetaMaterialDescription],
		ContentAlg: meta[MetaContentAlgorithm],
	}

	if err := raw.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEnvelope, err.Error())
	}

	algorithm, err := ParseContentAlgorithm(raw.ContentAlg)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, raw.ContentAlg)
	}

	tagBits, err := strconv.Atoi(raw.TagBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a number", ErrMalformedEnvelope, MetaTagLength)
	}
	if tagBits <= 0 || tagBits%8 != 0 {
		return nil, fmt.Errorf("%w: %s not a multiple of 8", ErrMalformedEnvelope, MetaTagLength)
	}
	tagLength := tagBits / 8
	if tagLength != TagSize {
		return nil, fmt.Errorf(
			"%w: tag length must be %d bytes, got %d",
			ErrMalformedEnvelope, TagSize, tagLength,
		)
	}

	// Base64 shape already validated; decode cannot fail here.
	iv, _ := base64.StdEncoding.DecodeString(raw.IV)
	if len(iv) != NonceSize {
		return nil, fmt.Errorf(
			"%w: nonce must be %d bytes, got %d",
			ErrMalformedEnvelope, NonceSize, len(iv),
		)
	}

	wrappedKey, _ := base64.StdEncoding.DecodeString(raw.WrappedKey)
	if len(wrappedKey) == 0 {
		return nil, fmt.Errorf("%w: wrapped key is empty", ErrMalformedEnvelope)
	}

	var matDesc map[string]string
	if err := json.Unmarshal([]byte(raw.MatDesc), &matDesc); err != nil {
		return nil, fmt.Errorf("%w: invalid material description", ErrMalformedEnvelope)
	}

	return &Envelope{
		IV:                  iv,
		WrappedKey:          wrappedKey,
		TagLength:           tagLength,
		MaterialDescription: matDesc,
		KeyID:               matDesc[MatDescKeyID],
		Algorithm:           algorithm,
	}, nil
}

// EncryptedObject is one fetched object: the raw body (ciphertext with the
// authentication tag appended) and its parsed envelope. Constructed per
// invocation and discarded after decryption completes or fails.
type EncryptedObject struct {
	Body     []byte
	Envelope *Envelope
}

// Split separates the body into ciphertext and trailing authentication tag.
// An empty ciphertext is valid; a body shorter than the tag is not.
func (o *EncryptedObject) Split() (ciphertext, tag []byte, err error) {
	if len(o.Body) < o.Envelope.TagLength {
		return nil, nil, fmt.Errorf(
			"%w: object too small to contain an authentication tag",
			ErrMalformedEnvelope,
		)
	}
	boundary := len(o.Body) - o.Envelope.TagLength
	return o.Body[:boundary], o.Body[boundary:], nil
}
