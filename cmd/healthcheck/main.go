package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/trufnetwork/idmz-gateway/internal/health"
)

func main() {
	lambda.Start(health.HandleRequest)
}
