package authorizer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ParameterGetter is the subset of the SSM client used to read the allow
// list.
type ParameterGetter interface {
	GetParameterWithContext(ctx aws.Context, input *ssm.GetParameterInput, opts ...request.Option) (*ssm.GetParameterOutput, error)
}

const maxParameterRetries = 4

// allowListDocument is the JSON stored in the parameter.
type allowListDocument struct {
	Issuers   []string `json:"issuers"`
	Subjects  []string `json:"subjects"`
	SourceIPs []string `json:"sourceIps"`
}

// ParameterSource reads allow lists from SSM Parameter Store.
type ParameterSource struct {
	client     ParameterGetter
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

// ParameterSourceOption configures a ParameterSource.
type ParameterSourceOption func(*ParameterSource)

// WithBackOff replaces the retry policy.
func WithBackOff(newBackOff func() backoff.BackOff) ParameterSourceOption {
	return func(s *ParameterSource) { s.newBackOff = newBackOff }
}

// WithParameterLogger sets the logger.
func WithParameterLogger(logger *zap.Logger) ParameterSourceOption {
	return func(s *ParameterSource) { s.logger = logger }
}

// NewParameterSource creates a ParameterSource retrying with exponential
// backoff.
func NewParameterSource(client ParameterGetter, opts ...ParameterSourceOption) *ParameterSource {
	s := &ParameterSource{
		client: client,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 10 * time.Second
			return backoff.WithMaxRetries(b, maxParameterRetries)
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch reads and decodes the allow list stored in parameter name. Missing
// parameters and undecodable values are not retried.
func (s *ParameterSource) Fetch(ctx context.Context, name string) (AllowList, error) {
	var value string
	operation := func() error {
		out, err := s.client.GetParameterWithContext(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			var aerr awserr.Error
			if errors.As(err, &aerr) && aerr.Code() == ssm.ErrCodeParameterNotFound {
				return backoff.Permanent(errors.Wrapf(err, "allow list parameter %s not found", name))
			}
			return err
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			return backoff.Permanent(errors.Errorf("allow list parameter %s has no value", name))
		}
		value = *out.Parameter.Value
		return nil
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("failed to read allow list parameter, retrying",
			zap.String("parameter", name), zap.Duration("wait", wait), zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(s.newBackOff(), ctx), notify); err != nil {
		return AllowList{}, errors.Wrapf(err, "failed to read allow list parameter %s", name)
	}

	var doc allowListDocument
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return AllowList{}, errors.Wrapf(err, "allow list parameter %s is not valid JSON", name)
	}
	return NewAllowList(doc.Issuers, doc.Subjects, doc.SourceIPs), nil
}
