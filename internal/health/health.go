// Package health answers the iDMZ gateway health route.
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// Status is the fixed body returned while the gateway is reachable.
const Status = "idmzhealth=SUCCESS"

// HandleRequest returns 200 with Status encoded as a JSON string. The
// request is not inspected.
func HandleRequest(_ context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	body, err := json.Marshal(Status)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, errors.Wrap(err, "failed to encode health status")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       string(body),
	}, nil
}
