package properties

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ObjectGetter is the subset of the S3 API used to fetch properties objects.
type ObjectGetter interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// S3Source reads a properties document from an S3 object, for pipelines that
// keep environment profiles outside the repository.
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
	logger *zap.Logger
}

// NewS3Source creates a source for s3://bucket/key.
func NewS3Source(client ObjectGetter, bucket, key string, logger *zap.Logger) *S3Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Source{client: client, bucket: bucket, key: key, logger: logger}
}

// Name returns the name of this source.
func (s *S3Source) Name() string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, s.key)
}

// Validate has nothing to check ahead of the read; a missing object is
// reported by Read.
func (s *S3Source) Validate(ctx context.Context) error {
	return nil
}

// Read downloads the object.
func (s *S3Source) Read(ctx context.Context) ([]byte, error) {
	s.logger.Debug("reading properties object", zap.String("bucket", s.bucket), zap.String("key", s.key))

	resp, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == s3.ErrCodeNoSuchBucket) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", s.Name())
		}
		return nil, errors.Wrapf(err, "failed to get %s", s.Name())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.Name())
	}
	return data, nil
}
