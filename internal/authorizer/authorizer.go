// Package authorizer decides whether an API Gateway request presenting a
// mutual TLS client certificate may proceed.
//
// The certificate itself has already been verified by the gateway; only the
// extracted issuer and subject distinguished names and the caller's source IP
// are checked, by exact match, against an AllowList. Every failure denies:
// absent fields, malformed events and internal errors are logged and turned
// into {"isAuthorized": false}. Nothing is ever returned to the gateway as an
// error.
package authorizer

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request is the identity extracted from one inbound request. A nil field
// was absent from the event.
type Request struct {
	IssuerDN  *string
	SubjectDN *string
	SourceIP  *string
}

// Decision is the authorizer result.
type Decision struct {
	IsAuthorized bool `json:"isAuthorized"`
}

var deny = Decision{IsAuthorized: false}

// check names the predicate that failed.
type check string

const (
	checkNone      check = ""
	checkIssuer    check = "issuer"
	checkSubject   check = "subject"
	checkSourceIP  check = "source_ip"
	checkMalformed check = "malformed_event"
	checkPanic     check = "internal_error"
)

// evaluate returns the first failing check, or checkNone.
func evaluate(req Request, allow AllowList) check {
	switch {
	case req.IssuerDN == nil || !allow.hasIssuer(*req.IssuerDN):
		return checkIssuer
	case req.SubjectDN == nil || !allow.hasSubject(*req.SubjectDN):
		return checkSubject
	case req.SourceIP == nil || !allow.hasSourceIP(*req.SourceIP):
		return checkSourceIP
	}
	return checkNone
}

// Authorize allows req only when its issuer, subject and source IP are all
// present and in allow.
func Authorize(req Request, allow AllowList) Decision {
	return Decision{IsAuthorized: evaluate(req, allow) == checkNone}
}

// Authorizer applies an AllowList and logs every decision.
type Authorizer struct {
	allow  AllowList
	logger *zap.Logger
}

// New creates an Authorizer. A nil logger discards logs.
func New(allow AllowList, logger *zap.Logger) *Authorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authorizer{allow: allow, logger: logger}
}

// Authorize decides req and logs the outcome, including the failed check on
// deny.
func (a *Authorizer) Authorize(ctx context.Context, req Request) Decision {
	failed := evaluate(req, a.allow)
	decision := Decision{IsAuthorized: failed == checkNone}

	fields := []zap.Field{
		zap.String("request_id", requestID(ctx)),
		zap.Bool("is_authorized", decision.IsAuthorized),
		zap.Stringp("issuer_dn", req.IssuerDN),
		zap.Stringp("subject_dn", req.SubjectDN),
		zap.Stringp("source_ip", req.SourceIP),
	}
	if decision.IsAuthorized {
		a.logger.Info("request authorized", fields...)
	} else {
		a.logger.Warn("request denied", append(fields, zap.String("failed_check", string(failed)))...)
	}
	return decision
}

// requestID returns the Lambda request id, or a fresh id outside Lambda.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
