package properties

import "github.com/pkg/errors"

var (
	// ErrFileNotFound is returned when the properties file (or S3 object) does not exist.
	ErrFileNotFound = errors.New("properties file not found")
	// ErrMalformed is returned when the content cannot be parsed as properties.
	ErrMalformed = errors.New("malformed properties")
)
