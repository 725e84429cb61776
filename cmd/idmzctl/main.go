package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/trufnetwork/idmz-gateway/app"
	"github.com/trufnetwork/idmz-gateway/internal/logging"
)

func main() {
	if err := app.RootCmd().Execute(); err != nil {
		zap.L().Fatal("Failed to execute root command", zap.Error(err))
	}
	os.Exit(0)
}

func init() {
	zap.ReplaceGlobals(logging.Must(os.Getenv("LOG_LEVEL")))
}
