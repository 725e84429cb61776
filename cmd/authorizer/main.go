package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"go.uber.org/zap"

	"github.com/trufnetwork/idmz-gateway/internal/authorizer"
	"github.com/trufnetwork/idmz-gateway/internal/logging"
)

func main() {
	cfg, err := authorizer.LoadConfig()
	if err != nil {
		zap.L().Fatal("failed to load authorizer configuration", zap.Error(err))
	}

	logger := logging.Must(cfg.LogLevel, zap.String("function", "idmz-authorizer"))
	zap.ReplaceGlobals(logger)

	var params *authorizer.ParameterSource
	if cfg.AllowListParameter != "" {
		sess := session.Must(session.NewSession())
		params = authorizer.NewParameterSource(ssm.New(sess), authorizer.WithParameterLogger(logger))
	}

	allow, err := cfg.AllowList(context.Background(), params, logger)
	if err != nil {
		logger.Fatal("failed to build allow list", zap.Error(err))
	}

	lambda.Start(authorizer.New(allow, logger).HandleRequest)
}

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}
