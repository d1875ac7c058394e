package store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/archivebot/decrypt-s3-object/internal/errors"
)

// S3Client abstracts the S3 client for testing.
type S3Client interface {
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

// S3ObjectStore implements ObjectStore on Amazon S3. The SDK strips the
// user-metadata prefix from attribute names, so the metadata map carries the
// bare envelope keys the producer wrote.
type S3ObjectStore struct {
	client S3Client
}

// NewS3ObjectStore creates an S3-backed object store using the given client.
func NewS3ObjectStore(client S3Client) *S3ObjectStore {
	return &S3ObjectStore{client: client}
}

// Fetch retrieves the object body and user metadata with a single GetObject
// call. Errors are classified into the package's three fetch kinds.
func (s *S3ObjectStore) Fetch(
	ctx context.Context,
	bucket, key string,
) ([]byte, map[string]string, error) {
	if bucket == "" || key == "" {
		return nil, nil, errors.Wrap(errors.ErrInvalidInput, "bucket and key must not be empty")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, nil, classifyFetchError(err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading object body: %v", ErrStoreUnavailable, err)
	}

	return body, out.Metadata, nil
}

// classifyFetchError maps S3 failures onto the fetch error taxonomy.
func classifyFetchError(err error) error {
	var noSuchKey *s3types.NoSuchKey
	var noSuchBucket *s3types.NoSuchBucket
	if errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("%w: %v", ErrObjectNotFound, err)
		case "AccessDenied":
			return fmt.Errorf("%w: %v", ErrStoreAccessDenied, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
