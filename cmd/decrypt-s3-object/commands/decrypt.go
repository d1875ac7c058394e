// Package commands contains the CLI command implementations for the application.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	envelopeDomain "github.com/archivebot/decrypt-s3-object/internal/envelope/domain"
	envelopeService "github.com/archivebot/decrypt-s3-object/internal/envelope/service"
	"github.com/archivebot/decrypt-s3-object/internal/errors"
	"github.com/archivebot/decrypt-s3-object/internal/kms"
	"github.com/archivebot/decrypt-s3-object/internal/store"
)

// RunDecrypt decrypts one archived object: fetch the body and metadata,
// parse and validate the envelope, unwrap the data key, decrypt, and write
// the plaintext to outputPath. Strictly sequential; every failure is
// terminal for the invocation and no partial output file is left behind.
func RunDecrypt(
	ctx context.Context,
	objectStore store.ObjectStore,
	keyService kms.KeyService,
	decryptor *envelopeService.Decryptor,
	logger *slog.Logger,
	bucket, key, outputPath string,
) error {
	outputDir := filepath.Dir(outputPath)
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		return errors.Wrap(
			errors.ErrInvalidInput,
			fmt.Sprintf("output directory does not exist: %s", outputDir),
		)
	}

	body, metadata, err := objectStore.Fetch(ctx, bucket, key)
	if err != nil {
		return fmt.Errorf("failed to fetch object: %w", err)
	}
	logger.Debug(
		"fetched object",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.Int("size", len(body)),
	)

	envelope, err := envelopeDomain.ParseEnvelope(metadata)
	if err != nil {
		return fmt.Errorf("failed to parse object metadata: %w", err)
	}

	dataKey, err := keyService.Unwrap(
		ctx,
		envelope.WrappedKey,
		envelope.KeyID,
		envelope.MaterialDescription,
	)
	if err != nil {
		return fmt.Errorf("failed to unwrap data key: %w", err)
	}
	defer envelopeDomain.Zero(dataKey)

	obj := &envelopeDomain.EncryptedObject{Body: body, Envelope: envelope}
	plaintext, err := decryptor.Decrypt(obj, dataKey)
	if err != nil {
		return fmt.Errorf("failed to decrypt object: %w", err)
	}

	if err := writeOutput(outputPath, plaintext); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info(
		"decrypted object",
		slog.String("bucket", bucket),
		slog.String("key", key),
		slog.String("output", outputPath),
		slog.Int("bytes", len(plaintext)),
	)
	return nil
}

// writeOutput writes plaintext to a temporary file in the destination
// directory and renames it into place, so the output path either holds the
// complete plaintext or nothing at all.
func writeOutput(path string, plaintext []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".decrypt-*")
	if err != nil {
		return errors.Wrap(err, "cannot create output file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(plaintext); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "cannot write output")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "cannot write output")
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "cannot move output into place")
	}
	return nil
}
