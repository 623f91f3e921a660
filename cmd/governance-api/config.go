// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/nats-io/nats.go"

	"github.com/boardsuite/board-governance-service/internal/logging"
	"github.com/boardsuite/board-governance-service/pkg/utils"
)

// flags are the command line flags for the governance service.
type flags struct {
	Debug bool
}

// environment are the environment variables for the governance service.
type environment struct {
	NatsURL            string
	SkipEtagValidation bool
}

// parseFlags parses command line flags for the governance service
func parseFlags() flags {
	var debug = flag.Bool("d", false, "enable debug logging")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
	}
}

// parseEnv parses environment variables for the governance service
func parseEnv() environment {
	natsURL := utils.CoalesceString(os.Getenv("NATS_URL"), nats.DefaultURL)

	skipEtagValidation := os.Getenv("SKIP_ETAG_VALIDATION") == "true"

	return environment{
		NatsURL:            natsURL,
		SkipEtagValidation: skipEtagValidation,
	}
}
