package service

import (
	"fmt"

	envelopeDomain "github.com/archivebot/decrypt-s3-object/internal/envelope/domain"
)

// Decryptor recovers plaintext from a fetched object using an unwrapped data
// key. It is stateless: the same object and key always yield byte-identical
// plaintext or the identical error.
type Decryptor struct {
	aeadManager AEADManager
}

// NewDecryptor creates a Decryptor backed by the given AEADManager.
func NewDecryptor(aeadManager AEADManager) *Decryptor {
	return &Decryptor{aeadManager: aeadManager}
}

// Decrypt performs authenticated decryption of the object body.
//
// Structural checks (key size, nonce length, tag length, body long enough to
// carry a tag) run before the cipher is invoked and report
// ErrMalformedEnvelope or ErrInvalidKeySize. The cipher call itself verifies
// the authentication tag as part of decryption; any failure there, whether a
// wrong key, corrupted ciphertext or a forged tag, is reported as the single
// ErrDecryptionFailed. The caller owns dataKey and is responsible for
// zeroing it after use.
func (d *Decryptor) Decrypt(
	obj *envelopeDomain.EncryptedObject,
	dataKey []byte,
) ([]byte, error) {
	aead, err := d.aeadManager.CreateCipher(dataKey, obj.Envelope.Algorithm)
	if err != nil {
		return nil, err
	}

	if len(obj.Envelope.IV) != aead.NonceSize() {
		return nil, fmt.Errorf(
			"%w: nonce must be %d bytes, got %d",
			envelopeDomain.ErrMalformedEnvelope, aead.NonceSize(), len(obj.Envelope.IV),
		)
	}
	if obj.Envelope.TagLength != aead.Overhead() {
		return nil, fmt.Errorf(
			"%w: tag length must be %d bytes, got %d",
			envelopeDomain.ErrMalformedEnvelope, aead.Overhead(), obj.Envelope.TagLength,
		)
	}

	ciphertext, tag, err := obj.Split()
	if err != nil {
		return nil, err
	}

	// The AEAD expects the tag appended to the ciphertext, which is exactly
	// how the producer lays out the object body.
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Decrypt(sealed, obj.Envelope.IV, nil)
	if err != nil {
		return nil, envelopeDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
