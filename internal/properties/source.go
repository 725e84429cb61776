package properties

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Source is a location a properties document can be read from.
type Source interface {
	// Name returns a human-readable name for this source, used in errors and logs.
	Name() string

	// Validate performs the checks that can be done without reading the
	// content, e.g. that the file exists.
	Validate(ctx context.Context) error

	// Read returns the raw document content.
	Read(ctx context.Context) ([]byte, error)
}

const s3Scheme = "s3://"

type sourceOptions struct {
	fs       afero.Fs
	s3Client ObjectGetter
	logger   *zap.Logger
}

// SourceOption configures NewSource.
type SourceOption func(*sourceOptions)

// WithFs sets the filesystem used for file locations.
func WithFs(fs afero.Fs) SourceOption {
	return func(o *sourceOptions) { o.fs = fs }
}

// WithS3Client sets the client used for s3:// locations. Without it a client
// is created from the default AWS session.
func WithS3Client(client ObjectGetter) SourceOption {
	return func(o *sourceOptions) { o.s3Client = client }
}

// WithLogger sets the logger used by the created source.
func WithLogger(logger *zap.Logger) SourceOption {
	return func(o *sourceOptions) { o.logger = logger }
}

// NewSource picks a source for location: s3://bucket/key locations are read
// from S3, anything else from the filesystem.
func NewSource(location string, opts ...SourceOption) (Source, error) {
	o := sourceOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if !strings.HasPrefix(location, s3Scheme) {
		if o.fs == nil {
			o.fs = afero.NewOsFs()
		}
		return NewFileSource(o.fs, location, o.logger), nil
	}

	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}
	if o.s3Client == nil {
		sess, err := session.NewSession()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS session")
		}
		o.s3Client = s3.New(sess)
	}
	return NewS3Source(o.s3Client, bucket, key, o.logger), nil
}

func parseS3Location(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", errors.Errorf("invalid S3 location %q: expected s3://bucket/key", location)
	}
	return bucket, key, nil
}

// Load validates the source, reads it and parses the content.
func Load(ctx context.Context, src Source) (*Document, error) {
	if err := src.Validate(ctx); err != nil {
		return nil, err
	}
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return parse(data, src.Name())
}

// LoadFile reads and parses the properties file at path on the local filesystem.
func LoadFile(path string) (*Document, error) {
	return Load(context.Background(), NewFileSource(afero.NewOsFs(), path, nil))
}
