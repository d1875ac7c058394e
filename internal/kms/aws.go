package kms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awskms "github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/aws/smithy-go"

	envelopeDomain "github.com/archivebot/decrypt-s3-object/internal/envelope/domain"
	"github.com/archivebot/decrypt-s3-object/internal/errors"
)

// KMSClient abstracts the AWS KMS client for testing.
type KMSClient interface {
	Decrypt(
		ctx context.Context,
		params *awskms.DecryptInput,
		optFns ...func(*awskms.Options),
	) (*awskms.DecryptOutput, error)
}

// AWSKeyService implements KeyService on AWS KMS.
type AWSKeyService struct {
	client KMSClient
}

// NewAWSKeyService creates a KMS-backed key service using the given client.
func NewAWSKeyService(client KMSClient) *AWSKeyService {
	return &AWSKeyService{client: client}
}

// Unwrap decrypts the wrapped data key with a single KMS Decrypt call, bound
// to the producer's material description as the encryption context. When the
// material description names the master key, the unwrap is pinned to it;
// otherwise KMS resolves the key from the ciphertext blob.
//
// The recovered key must be exactly the content cipher's key size; anything
// else means the producer wrapped a key this tool cannot use.
func (k *AWSKeyService) Unwrap(
	ctx context.Context,
	wrappedKey []byte,
	keyID string,
	encryptionContext map[string]string,
) ([]byte, error) {
	if len(wrappedKey) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "wrapped key must not be empty")
	}

	input := &awskms.DecryptInput{
		CiphertextBlob:    wrappedKey,
		EncryptionContext: encryptionContext,
	}
	if keyID != "" {
		input.KeyId = aws.String(keyID)
	}

	out, err := k.client.Decrypt(ctx, input)
	if err != nil {
		return nil, classifyUnwrapError(err)
	}

	if len(out.Plaintext) != envelopeDomain.KeySize {
		envelopeDomain.Zero(out.Plaintext)
		return nil, fmt.Errorf(
			"%w: unwrapped key must be %d bytes, got %d",
			ErrWrappedKeyMalformed, envelopeDomain.KeySize, len(out.Plaintext),
		)
	}

	return out.Plaintext, nil
}

// classifyUnwrapError maps KMS failures onto the unwrap error taxonomy.
func classifyUnwrapError(err error) error {
	var notFound *kmstypes.NotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, err)
	}

	var invalidCiphertext *kmstypes.InvalidCiphertextException
	var incorrectKey *kmstypes.IncorrectKeyException
	if errors.As(err, &invalidCiphertext) || errors.As(err, &incorrectKey) {
		return fmt.Errorf("%w: %v", ErrWrappedKeyMalformed, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDeniedException" {
		return fmt.Errorf("%w: %v", ErrKeyAccessDenied, err)
	}

	return fmt.Errorf("%w: %v", ErrKeyServiceUnavailable, err)
}
