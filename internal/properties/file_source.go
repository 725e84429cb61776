package properties

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileSource reads a properties document from a filesystem.
type FileSource struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// NewFileSource creates a source for path on fs.
func NewFileSource(fs afero.Fs, path string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{fs: fs, path: path, logger: logger}
}

// Name returns the name of this source.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Validate checks that the file exists and is not a directory.
func (s *FileSource) Validate(ctx context.Context) error {
	info, err := s.fs.Stat(s.path)
	if os.IsNotExist(err) {
		return errors.Wrapf(ErrFileNotFound, "%s", s.path)
	} else if err != nil {
		return errors.Wrapf(err, "error accessing properties file %s", s.path)
	}
	if info.IsDir() {
		return errors.Errorf("properties path %s is a directory", s.path)
	}
	return nil
}

// Read returns the file content.
func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	s.logger.Debug("reading properties file", zap.String("path", s.path))

	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrFileNotFound, "%s", s.path)
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read properties file %s", s.path)
	}
	return data, nil
}
