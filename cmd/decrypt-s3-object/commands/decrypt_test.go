package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/archivebot/decrypt-s3-object/internal/envelope/domain"
	envelopeService "github.com/archivebot/decrypt-s3-object/internal/envelope/service"
	apperrors "github.com/archivebot/decrypt-s3-object/internal/errors"
	"github.com/archivebot/decrypt-s3-object/internal/store"
)

type fakeObjectStore struct {
	body     []byte
	metadata map[string]string
	err      error

	calls     int
	gotBucket string
	gotKey    string
}

func (f *fakeObjectStore) Fetch(
	_ context.Context,
	bucket, key string,
) ([]byte, map[string]string, error) {
	f.calls++
	f.gotBucket = bucket
	f.gotKey = key
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.body, f.metadata, nil
}

type fakeKeyService struct {
	dataKey []byte
	err     error

	calls      int
	gotWrapped []byte
	gotKeyID   string
	gotContext map[string]string
}

func (f *fakeKeyService) Unwrap(
	_ context.Context,
	wrappedKey []byte,
	keyID string,
	encryptionContext map[string]string,
) ([]byte, error) {
	f.calls++
	f.gotWrapped = wrappedKey
	f.gotKeyID = keyID
	f.gotContext = encryptionContext
	if f.err != nil {
		return nil, f.err
	}
	// The caller zeroes the returned key; hand out a copy so the fixture
	// key stays intact for repeated calls.
	return append([]byte{}, f.dataKey...), nil
}

// fixture holds a complete encrypted object plus the fakes that serve it.
type fixture struct {
	objectStore *fakeObjectStore
	keyService  *fakeKeyService
	dataKey     []byte
	plaintext   []byte
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dataKey := make([]byte, envelopeDomain.KeySize)
	_, err := rand.Read(dataKey)
	require.NoError(t, err)

	plaintext := []byte("hello world")
	aead, err := envelopeService.NewAEADManager().CreateCipher(dataKey, envelopeDomain.AESGCM)
	require.NoError(t, err)
	body, nonce, err := aead.Encrypt(plaintext, nil)
	require.NoError(t, err)

	wrappedKey := bytes.Repeat([]byte{0x0F}, 48)
	metadata := map[string]string{
		envelopeDomain.MetaIV:                  base64.StdEncoding.EncodeToString(nonce),
		envelopeDomain.MetaWrappedKey:          base64.StdEncoding.EncodeToString(wrappedKey),
		envelopeDomain.MetaTagLength:           "128",
		envelopeDomain.MetaMaterialDescription: `{"kms_cmk_id":"alias/archive-bot"}`,
	}

	return &fixture{
		objectStore: &fakeObjectStore{body: body, metadata: metadata},
		keyService:  &fakeKeyService{dataKey: dataKey},
		dataKey:     dataKey,
		plaintext:   plaintext,
	}
}

func TestRunDecrypt(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	decryptor := envelopeService.NewDecryptor(envelopeService.NewAEADManager())

	t.Run("success writes plaintext to output file", func(t *testing.T) {
		f := newFixture(t)
		outputPath := filepath.Join(t.TempDir(), "decrypted.txt")

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", outputPath,
		)
		require.NoError(t, err)

		got, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello world"), got)

		assert.Equal(t, "test-bucket", f.objectStore.gotBucket)
		assert.Equal(t, "data/1234", f.objectStore.gotKey)
		assert.Equal(t, "alias/archive-bot", f.keyService.gotKeyID)
		assert.Equal(t, map[string]string{"kms_cmk_id": "alias/archive-bot"}, f.keyService.gotContext)
	})

	t.Run("no temp files remain after success", func(t *testing.T) {
		f := newFixture(t)
		dir := t.TempDir()

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", filepath.Join(dir, "out.bin"),
		)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.bin", entries[0].Name())
	})

	t.Run("corrupted tag leaves no output file", func(t *testing.T) {
		f := newFixture(t)
		f.objectStore.body[len(f.objectStore.body)-1] ^= 0x01
		dir := t.TempDir()
		outputPath := filepath.Join(dir, "decrypted.txt")

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", outputPath,
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, envelopeDomain.ErrDecryptionFailed)

		_, statErr := os.Stat(outputPath)
		assert.True(t, os.IsNotExist(statErr))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing metadata fails before key unwrap", func(t *testing.T) {
		f := newFixture(t)
		delete(f.objectStore.metadata, envelopeDomain.MetaWrappedKey)
		outputPath := filepath.Join(t.TempDir(), "decrypted.txt")

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", outputPath,
		)
		assert.ErrorIs(t, err, envelopeDomain.ErrMalformedEnvelope)
		assert.Equal(t, 0, f.keyService.calls)
	})

	t.Run("fetch error propagates", func(t *testing.T) {
		f := newFixture(t)
		f.objectStore.err = store.ErrObjectNotFound

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", filepath.Join(t.TempDir(), "out"),
		)
		assert.ErrorIs(t, err, store.ErrObjectNotFound)
		assert.Equal(t, 0, f.keyService.calls)
	})

	t.Run("unwrap error propagates and leaves no output", func(t *testing.T) {
		f := newFixture(t)
		f.keyService.err = apperrors.ErrAccessDenied
		outputPath := filepath.Join(t.TempDir(), "decrypted.txt")

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", outputPath,
		)
		assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

		_, statErr := os.Stat(outputPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing output directory fails before any fetch", func(t *testing.T) {
		f := newFixture(t)
		outputPath := filepath.Join(t.TempDir(), "missing", "decrypted.txt")

		err := RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", outputPath,
		)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, 0, f.objectStore.calls)
	})

	t.Run("empty ciphertext decrypts to empty file", func(t *testing.T) {
		f := newFixture(t)

		// Re-seal an empty plaintext under the fixture key.
		aead, err := envelopeService.NewAEADManager().CreateCipher(f.dataKey, envelopeDomain.AESGCM)
		require.NoError(t, err)
		body, nonce, err := aead.Encrypt([]byte{}, nil)
		require.NoError(t, err)
		f.objectStore.body = body
		f.objectStore.metadata[envelopeDomain.MetaIV] = base64.StdEncoding.EncodeToString(nonce)

		outputPath := filepath.Join(t.TempDir(), "decrypted.txt")
		err = RunDecrypt(
			ctx, f.objectStore, f.keyService, decryptor, logger,
			"test-bucket", "data/1234", outputPath,
		)
		require.NoError(t, err)

		got, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
