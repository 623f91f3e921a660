// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/boardsuite/board-governance-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// MeetingIndexSender handles indexing operations for meetings.
type MeetingIndexSender interface {
	SendIndexMeeting(ctx context.Context, action models.MessageAction, data models.Meeting) error
	SendDeleteIndexMeeting(ctx context.Context, data string) error
}

// TemplateIndexSender handles indexing operations for tenant-custom agenda
// templates.
type TemplateIndexSender interface {
	SendIndexAgendaTemplate(ctx context.Context, action models.MessageAction, data models.CustomAgendaTemplate) error
	SendDeleteIndexAgendaTemplate(ctx context.Context, data string) error
}

// GovernanceEventSender handles meeting lifecycle event publishing. The
// surrounding application consumes these for notifications and rendering;
// the engine never sends email or renders documents itself.
type GovernanceEventSender interface {
	SendMeetingTransitioned(ctx context.Context, data models.MeetingTransitionedMessage) error
	SendMinutesCompiled(ctx context.Context, data models.MinutesCompiledMessage) error
}

// MessageBuilder is the main interface that composes all messaging
// capabilities used by the services.
type MessageBuilder interface {
	MeetingIndexSender
	TemplateIndexSender
	GovernanceEventSender
}
