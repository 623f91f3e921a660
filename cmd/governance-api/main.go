// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

// Package main is the board governance service that manages board meeting
// lifecycles, agendas, attendance, conflict-of-interest recusals, and
// minutes compilation over NATS.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/boardsuite/board-governance-service/internal/handlers"
	"github.com/boardsuite/board-governance-service/internal/infrastructure/messaging"
	"github.com/boardsuite/board-governance-service/internal/infrastructure/store"
	"github.com/boardsuite/board-governance-service/internal/logging"
	"github.com/boardsuite/board-governance-service/internal/service"
)

func main() {
	env := parseEnv()
	parseFlags()

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(env, &gracefulCloseWG)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		SkipEtagValidation: env.SkipEtagValidation,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	catalog := store.NewBuiltinCatalog()
	catalogService := service.NewCatalogService(
		catalog,
		repos.Template,
		messageBuilder,
		serviceConfig,
	)
	agendaService := service.NewAgendaService(catalogService)
	conflictService := service.NewConflictService()
	attendanceService := service.NewAttendanceService()
	minutesService := service.NewMinutesService()
	lifecycleService := service.NewLifecycleService(
		repos.Meeting,
		messageBuilder,
		attendanceService,
		minutesService,
		serviceConfig,
	)

	// Initialize handlers
	governanceHandler := handlers.NewGovernanceHandler(
		agendaService,
		conflictService,
		lifecycleService,
	)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, governanceHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	slog.Info("governance service ready", "ready", governanceHandler.HandlerReady())

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(natsConn, &gracefulCloseWG, cancel)
}
