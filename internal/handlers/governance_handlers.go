// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/internal/logging"
	"github.com/boardsuite/board-governance-service/internal/service"
)

// GovernanceHandler handles governance-related NATS messages.
type GovernanceHandler struct {
	agendaService    *service.AgendaService
	conflictService  *service.ConflictService
	lifecycleService *service.LifecycleService
}

// NewGovernanceHandler creates a new GovernanceHandler.
func NewGovernanceHandler(
	agendaService *service.AgendaService,
	conflictService *service.ConflictService,
	lifecycleService *service.LifecycleService,
) *GovernanceHandler {
	return &GovernanceHandler{
		agendaService:    agendaService,
		conflictService:  conflictService,
		lifecycleService: lifecycleService,
	}
}

func (h *GovernanceHandler) HandlerReady() bool {
	return h.agendaService.ServiceReady() &&
		h.conflictService.ServiceReady() &&
		h.lifecycleService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (h *GovernanceHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	var response []byte
	var err error

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.MeetingGetTitleSubject:   h.HandleMeetingGetTitle,
		models.MeetingTransitionSubject: h.HandleMeetingTransition,
		models.ExpandTemplateSubject:    h.HandleExpandTemplate,
		models.ResolveConflictsSubject:  h.HandleResolveConflicts,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		if msg.HasReply() {
			err = msg.Respond(nil)
			if err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	response, err = handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		if msg.HasReply() {
			err = msg.Respond(nil)
			if err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	if msg.HasReply() {
		err = msg.Respond(response)
		if err != nil {
			slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			return
		}
		slog.DebugContext(ctx, "responded to NATS message", "response", response)
	} else {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
	}
}

// HandleMeetingGetTitle replies with the title of the meeting whose UID is
// the message payload.
func (h *GovernanceHandler) HandleMeetingGetTitle(ctx context.Context, msg domain.Message) ([]byte, error) {
	meetingUID := string(msg.Data())
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	if _, err := uuid.Parse(meetingUID); err != nil {
		slog.WarnContext(ctx, "invalid meeting UID", logging.ErrKey, err)
		return nil, domain.ErrValidationFailed
	}

	meeting, err := h.lifecycleService.MeetingRepository.Get(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			slog.WarnContext(ctx, "meeting not found", logging.ErrKey, err)
			return nil, err
		}
		slog.ErrorContext(ctx, "error getting meeting from store", logging.ErrKey, err)
		return nil, err
	}

	return []byte(meeting.Title), nil
}

// HandleMeetingTransition applies a lifecycle event to a meeting and
// replies with the transition result.
func (h *GovernanceHandler) HandleMeetingTransition(ctx context.Context, msg domain.Message) ([]byte, error) {
	var command models.TransitionCommand
	if err := json.Unmarshal(msg.Data(), &command); err != nil {
		slog.WarnContext(ctx, "invalid transition command payload", logging.ErrKey, err)
		return nil, domain.ErrUnmarshal
	}

	result, err := h.lifecycleService.Transition(ctx, command.MeetingUID, command.Event)
	if err != nil {
		return nil, err
	}

	response, err := json.Marshal(result)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling transition result", logging.ErrKey, err)
		return nil, fmt.Errorf("error marshalling transition result: %w", err)
	}

	return response, nil
}

// HandleExpandTemplate expands an agenda template into agenda items and
// replies with the item list.
func (h *GovernanceHandler) HandleExpandTemplate(ctx context.Context, msg domain.Message) ([]byte, error) {
	var command models.ExpandTemplateCommand
	if err := json.Unmarshal(msg.Data(), &command); err != nil {
		slog.WarnContext(ctx, "invalid expand template command payload", logging.ErrKey, err)
		return nil, domain.ErrUnmarshal
	}

	items := h.agendaService.ExpandTemplate(ctx, command.TenantUID, command.TemplateUID, command.Locale)

	response, err := json.Marshal(items)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling agenda items", logging.ErrKey, err)
		return nil, fmt.Errorf("error marshalling agenda items: %w", err)
	}

	return response, nil
}

// HandleResolveConflicts recomputes recusals for the given items and
// declarations and replies with the updated items.
func (h *GovernanceHandler) HandleResolveConflicts(ctx context.Context, msg domain.Message) ([]byte, error) {
	var command models.ResolveConflictsCommand
	if err := json.Unmarshal(msg.Data(), &command); err != nil {
		slog.WarnContext(ctx, "invalid resolve conflicts command payload", logging.ErrKey, err)
		return nil, domain.ErrUnmarshal
	}

	resolved := h.conflictService.ResolveConflicts(ctx, command.Items, command.Declarations)

	response, err := json.Marshal(resolved)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling resolved items", logging.ErrKey, err)
		return nil, fmt.Errorf("error marshalling resolved items: %w", err)
	}

	return response, nil
}
