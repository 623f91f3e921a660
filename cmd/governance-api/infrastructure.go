// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/internal/handlers"
	"github.com/boardsuite/board-governance-service/internal/infrastructure/store"
	"github.com/boardsuite/board-governance-service/internal/logging"
)

const (
	natsConnTimeout = 10 * time.Second
	shutdownTimeout = 25 * time.Second
)

// repositories bundles the KV-backed repositories used by the services.
type repositories struct {
	Meeting  *store.NatsMeetingRepository
	Template *store.NatsTemplateRepository
}

// setupNATS connects to the NATS server and registers the graceful-close
// hook.
func setupNATS(env environment, gracefulCloseWG *sync.WaitGroup) (*nats.Conn, error) {
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Name("governance-api"),
		nats.Timeout(natsConnTimeout),
		nats.DrainTimeout(natsConnTimeout),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.Info("NATS connection established", "nats_url", env.NatsURL)
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.Error("NATS async error", logging.ErrKey, err, "subject", s.Subject)
				return
			}
			slog.Error("NATS async error", logging.ErrKey, err)
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			slog.Info("NATS connection closed")
			gracefulCloseWG.Done()
		}),
	)
	if err != nil {
		return nil, err
	}

	// Account for the closed handler in the graceful shutdown.
	gracefulCloseWG.Add(1)

	return natsConn, nil
}

// gracefulShutdown drains the NATS connection and waits for the close
// handlers to finish, bailing out after shutdownTimeout.
func gracefulShutdown(natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down governance service")
	cancel()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.Error("error draining NATS connection", logging.ErrKey, err)
		}
	}

	closed := make(chan struct{})
	go func() {
		gracefulCloseWG.Wait()
		close(closed)
	}()

	select {
	case <-closed:
		slog.Info("graceful shutdown complete")
	case <-time.After(shutdownTimeout):
		slog.Warn("graceful shutdown timed out")
	}
}

// getKeyValueStores binds (creating if needed) the JetStream KV buckets and
// wraps them in repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	meetingsKV, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: store.KVStoreNameMeetings,
	})
	if err != nil {
		return nil, err
	}

	templatesKV, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: store.KVStoreNameAgendaTemplates,
	})
	if err != nil {
		return nil, err
	}

	return &repositories{
		Meeting:  store.NewNatsMeetingRepository(meetingsKV),
		Template: store.NewNatsTemplateRepository(templatesKV),
	}, nil
}

// natsMessage adapts *nats.Msg to the domain.Message interface.
type natsMessage struct {
	msg *nats.Msg
}

func (m *natsMessage) Subject() string {
	return m.msg.Subject
}

func (m *natsMessage) Data() []byte {
	return m.msg.Data
}

func (m *natsMessage) Respond(data []byte) error {
	return m.msg.Respond(data)
}

func (m *natsMessage) HasReply() bool {
	return m.msg.Reply != ""
}

// queueName is the NATS queue group for the governance service.
const queueName = "governance-api-queue"

// createNatsSubscriptions subscribes the handler to the service's inbound
// subjects.
func createNatsSubscriptions(ctx context.Context, handler *handlers.GovernanceHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.MeetingGetTitleSubject,
		models.MeetingTransitionSubject,
		models.ExpandTemplateSubject,
		models.ResolveConflictsSubject,
	}

	for _, subject := range subjects {
		_, err := natsConn.QueueSubscribe(subject, queueName, func(msg *nats.Msg) {
			var domainMsg domain.Message = &natsMessage{msg: msg}
			handler.HandleMessage(ctx, domainMsg)
		})
		if err != nil {
			slog.ErrorContext(ctx, "error subscribing to NATS subject", logging.ErrKey, err, "subject", subject)
			return err
		}
		slog.InfoContext(ctx, "subscribed to NATS subject", "subject", subject, "queue", queueName)
	}

	return nil
}
