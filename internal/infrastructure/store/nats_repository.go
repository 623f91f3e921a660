// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name for the store package.
const tracerName = "github.com/boardsuite/board-governance-service/internal/infrastructure/store"

// NATS Key-Value store bucket names.
const (
	// KVStoreNameMeetings is the name of the KV store for meetings.
	KVStoreNameMeetings = "meetings"

	// KVStoreNameAgendaTemplates is the name of the KV store for
	// tenant-custom agenda templates.
	KVStoreNameAgendaTemplates = "agenda-templates"
)

// INatsKeyValue is the NATS KV interface needed by the repositories.
type INatsKeyValue interface {
	ListKeys(context.Context, ...jetstream.WatchOpt) (jetstream.KeyLister, error)
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(context.Context, string, []byte) (uint64, error)
	Update(context.Context, string, []byte, uint64) (uint64, error)
	Delete(context.Context, string, ...jetstream.KVDeleteOpt) error
}

// startKVSpan opens a client span around a single NATS KV operation.
func startKVSpan(ctx context.Context, operation, entity, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := []attribute.KeyValue{
		attribute.String("db.system", "nats"),
		attribute.String("db.operation", operation),
		attribute.String("db.nats.entity", entity),
	}
	if key != "" {
		spanAttrs = append(spanAttrs, attribute.String("db.nats.key", key))
	}
	spanAttrs = append(spanAttrs, attrs...)

	return otel.Tracer(tracerName).Start(ctx, "nats.kv."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(spanAttrs...),
	)
}

// endKVSpan records the operation outcome on the span and ends it.
func endKVSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
