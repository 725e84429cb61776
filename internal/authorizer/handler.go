package authorizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RequestFromEvent extracts the client certificate DNs and the source IP
// from an API Gateway HTTP API authorizer event. Missing or empty values are
// returned as nil fields. Only a structurally invalid event is an error.
func RequestFromEvent(raw json.RawMessage) (Request, error) {
	var event events.APIGatewayV2CustomAuthorizerV2Request
	if err := json.Unmarshal(raw, &event); err != nil {
		return Request{}, errors.Wrap(err, "failed to decode authorizer event")
	}

	cert := event.RequestContext.Authentication.ClientCert
	return Request{
		IssuerDN:  optional(cert.IssuerDN),
		SubjectDN: optional(cert.SubjectDN),
		SourceIP:  optional(event.RequestContext.HTTP.SourceIP),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// HandleRequest is the Lambda entrypoint. It always returns a well formed
// response and a nil error; anything unexpected is a deny.
func (a *Authorizer) HandleRequest(ctx context.Context, raw json.RawMessage) (resp events.APIGatewayV2CustomAuthorizerSimpleResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("authorizer failed, denying request",
				zap.String("request_id", requestID(ctx)),
				zap.String("failed_check", string(checkPanic)),
				zap.String("panic", fmt.Sprint(r)))
			resp, err = simpleResponse(deny), nil
		}
	}()

	a.logger.Debug("authorizer event", zap.ByteString("event", raw))

	req, perr := RequestFromEvent(raw)
	if perr != nil {
		a.logger.Warn("request denied",
			zap.String("request_id", requestID(ctx)),
			zap.Bool("is_authorized", false),
			zap.String("failed_check", string(checkMalformed)),
			zap.Error(perr))
		return simpleResponse(deny), nil
	}

	return simpleResponse(a.Authorize(ctx, req)), nil
}

func simpleResponse(d Decision) events.APIGatewayV2CustomAuthorizerSimpleResponse {
	return events.APIGatewayV2CustomAuthorizerSimpleResponse{IsAuthorized: d.IsAuthorized}
}
