package storage

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of the S3 client used by S3ObjectStorage
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3ObjectStorage implements ObjectStorage against Amazon S3
type S3ObjectStorage struct {
	client S3API
}

// NewS3ObjectStorage creates a new S3ObjectStorage
func NewS3ObjectStorage(client S3API) *S3ObjectStorage {
	return &S3ObjectStorage{client: client}
}

// HeadObject implements ObjectStorage.HeadObject
func (s *S3ObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*ObjectMetadata, error) {
	if bucket == "" || key == "" {
		return nil, NewStorageError("HeadObject", bucket, key, ErrInvalidKey)
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, NewStorageError("HeadObject", bucket, key, classifyS3Error(err))
	}

	meta := &ObjectMetadata{
		Bucket:      bucket,
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
		ETag:        aws.ToString(out.ETag),
	}
	if out.LastModified != nil {
		meta.LastModified = *out.LastModified
	}
	return meta, nil
}

// classifyS3Error maps S3 API errors onto the package sentinels, keeping the
// original error in the chain
func classifyS3Error(err error) error {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return errors.Join(ErrFileNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return errors.Join(ErrFileNotFound, err)
		case "Forbidden", "AccessDenied":
			return errors.Join(ErrPermissionDenied, err)
		}
	}
	return err
}
