package main

import (
	"log"
	"os"

	"github.com/AnotherFullstackDev/stepkit/cmd/stepkit/steps"
	"github.com/AnotherFullstackDev/stepkit/internal/lib"
)

func main() {
	logger, err := lib.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("error configuring logger: %v", err)
	}

	if err := steps.NewRootCmd(logger).Execute(); err != nil {
		logger.Error("step failed", "error", err)
		os.Exit(1)
	}
}
