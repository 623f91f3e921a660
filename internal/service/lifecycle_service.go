// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/internal/logging"
	"github.com/boardsuite/board-governance-service/pkg/concurrent"
	"github.com/boardsuite/board-governance-service/pkg/constants"
	"github.com/boardsuite/board-governance-service/pkg/utils"
)

// LifecycleService owns the meeting status and the legal timestamps. It is
// the only component allowed to mutate status. Transitions run as a
// revision-checked read-modify-write against the repository, so at most one
// transition can be applied per meeting at a time.
type LifecycleService struct {
	MeetingRepository domain.MeetingRepository
	MessageBuilder    domain.MessageBuilder
	AttendanceService *AttendanceService
	MinutesService    *MinutesService
	Config            ServiceConfig
}

// NewLifecycleService creates a new LifecycleService.
func NewLifecycleService(
	meetingRepository domain.MeetingRepository,
	messageBuilder domain.MessageBuilder,
	attendanceService *AttendanceService,
	minutesService *MinutesService,
	config ServiceConfig,
) *LifecycleService {
	return &LifecycleService{
		MeetingRepository: meetingRepository,
		MessageBuilder:    messageBuilder,
		AttendanceService: attendanceService,
		MinutesService:    minutesService,
		Config:            config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *LifecycleService) ServiceReady() bool {
	return s.MeetingRepository != nil &&
		s.MessageBuilder != nil &&
		s.AttendanceService != nil &&
		s.MinutesService != nil
}

// CanEditAgenda reports whether agenda items and attendees may still be
// edited. Once the meeting starts the agenda is read-only regardless of the
// lock flag.
func (s *LifecycleService) CanEditAgenda(meeting *models.Meeting) bool {
	if meeting == nil {
		return false
	}
	if meeting.Status != models.StatusDraft && meeting.Status != models.StatusScheduled {
		return false
	}
	return !meeting.AgendaLocked
}

// Apply runs one lifecycle event against the in-memory aggregate. Pure
// aside from the clock: no storage, no messaging. Transition persists and
// publishes.
func (s *LifecycleService) Apply(meeting *models.Meeting, event models.MeetingEvent, now time.Time) ([]models.ComplianceWarning, error) {
	if meeting == nil {
		return nil, domain.NewValidationError("meeting is required")
	}

	switch {
	case meeting.Status == models.StatusDraft && event == models.EventSchedule:
		return nil, s.applySchedule(meeting)

	case meeting.Status == models.StatusScheduled && event == models.EventStart:
		return s.applyStart(meeting, now), nil

	case meeting.Status == models.StatusActive && event == models.EventEnd:
		return s.applyEnd(meeting, now)

	case event == models.EventCancel &&
		(meeting.Status == models.StatusDraft || meeting.Status == models.StatusScheduled || meeting.Status == models.StatusActive):
		meeting.Status = models.StatusCancelled
		return nil, nil
	}

	return nil, &domain.InvalidTransitionError{From: meeting.Status, Event: event}
}

func (s *LifecycleService) applySchedule(meeting *models.Meeting) error {
	if !meeting.ScheduledStart.Before(meeting.ScheduledEnd) {
		return domain.NewValidationError("scheduled_start must be before scheduled_end")
	}
	if meeting.ScheduledEnd.Sub(meeting.ScheduledStart) > constants.MaxMeetingDurationMinutes*time.Minute {
		return domain.NewValidationError(fmt.Sprintf("scheduled duration exceeds the %d minute maximum", constants.MaxMeetingDurationMinutes))
	}
	voting := len(meeting.VotingAttendees())
	if meeting.QuorumRequired < constants.MinQuorumRequired {
		return domain.NewValidationError(fmt.Sprintf("quorum_required must be at least %d", constants.MinQuorumRequired))
	}
	if meeting.QuorumRequired > voting {
		return domain.NewValidationError(fmt.Sprintf("quorum_required %d exceeds the %d attendees with voting rights", meeting.QuorumRequired, voting))
	}

	meeting.Status = models.StatusScheduled
	return nil
}

func (s *LifecycleService) applyStart(meeting *models.Meeting, now time.Time) []models.ComplianceWarning {
	meeting.ActualStart = utils.TimePtr(now)
	meeting.AgendaLocked = true
	meeting.Status = models.StatusActive

	// Lacking quorum does not block the start: meetings may proceed
	// informally, the shortfall is surfaced as a warning.
	var warnings []models.ComplianceWarning
	if !s.AttendanceService.MeetingQuorum(meeting).Met {
		warnings = append(warnings, models.WarningQuorumNotMet)
	}
	return warnings
}

func (s *LifecycleService) applyEnd(meeting *models.Meeting, now time.Time) ([]models.ComplianceWarning, error) {
	meeting.ActualEnd = utils.TimePtr(now)
	meeting.Status = models.StatusCompleted

	minutes, warnings, err := s.MinutesService.Compile(meeting)
	if err != nil {
		return nil, err
	}
	meeting.Minutes = minutes

	return warnings, nil
}

// Transition loads the meeting, applies the lifecycle event and stores the
// result under the revision read at load time. A concurrent transition on
// the same meeting loses with ErrRevisionMismatch and must be retried by
// the caller against fresh state.
func (s *LifecycleService) Transition(ctx context.Context, meetingUID string, event models.MeetingEvent) (*models.TransitionResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.ErrServiceUnavailable
	}

	if !event.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("event %q is not a valid lifecycle event", event))
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("event", string(event)))

	meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			slog.WarnContext(ctx, "meeting not found", logging.ErrKey, err)
			return nil, domain.ErrMeetingNotFound
		}
		slog.ErrorContext(ctx, "error getting meeting from store", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	// Duplicate "end meeting" calls are a no-op producing the existing
	// record, never a second compilation.
	if event == models.EventEnd && meeting.Status == models.StatusCompleted && meeting.Minutes != nil {
		slog.DebugContext(ctx, "meeting already completed, returning existing minutes")
		return &models.TransitionResult{Meeting: meeting}, nil
	}

	from := meeting.Status
	warnings, err := s.Apply(meeting, event, time.Now().UTC())
	if err != nil {
		var invalidErr *domain.InvalidTransitionError
		if errors.As(err, &invalidErr) {
			slog.WarnContext(ctx, "invalid lifecycle transition", logging.ErrKey, err)
		}
		return nil, err
	}

	meeting.UpdatedAt = utils.TimePtr(time.Now().UTC())

	err = s.saveMeeting(ctx, meeting, revision)
	if err != nil {
		if errors.Is(err, domain.ErrRevisionMismatch) {
			slog.WarnContext(ctx, "concurrent transition lost the revision race", logging.ErrKey, err)
			return nil, domain.ErrRevisionMismatch
		}
		slog.ErrorContext(ctx, "error updating meeting in store", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	if err := s.publishTransition(ctx, meeting, from, event, warnings); err != nil {
		slog.ErrorContext(ctx, "failed to send NATS messages for transitioned meeting", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	slog.DebugContext(ctx, "meeting transitioned", "from", from, "to", meeting.Status, "warnings", warnings)

	return &models.TransitionResult{Meeting: meeting, Warnings: warnings}, nil
}

// saveMeeting persists the mutated aggregate. With SkipEtagValidation set
// the write is unconditional (last write wins) instead of revision-checked;
// that mode is only meant for local development.
func (s *LifecycleService) saveMeeting(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	if s.Config.SkipEtagValidation {
		return s.MeetingRepository.Create(ctx, meeting)
	}
	return s.MeetingRepository.Update(ctx, meeting, revision)
}

func (s *LifecycleService) publishTransition(ctx context.Context, meeting *models.Meeting, from models.MeetingStatus, event models.MeetingEvent, warnings []models.ComplianceWarning) error {
	messages := []func() error{
		func() error {
			return s.MessageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting)
		},
		func() error {
			return s.MessageBuilder.SendMeetingTransitioned(ctx, models.MeetingTransitionedMessage{
				MeetingUID: meeting.UID,
				From:       from,
				To:         meeting.Status,
				Event:      event,
				Warnings:   warnings,
			})
		},
	}

	if meeting.Status == models.StatusCompleted && meeting.Minutes != nil {
		messages = append(messages, func() error {
			return s.MessageBuilder.SendMinutesCompiled(ctx, models.MinutesCompiledMessage{
				MeetingUID: meeting.UID,
				Minutes:    meeting.Minutes,
				Warnings:   warnings,
			})
		})
	}

	pool := concurrent.NewWorkerPool(len(messages))
	return pool.Run(ctx, messages...)
}

// RecordDecision records the outcome of a decision agenda item while the
// meeting is active. When the recusal-adjusted quorum for the item is not
// met the decision is stored with the quorum_not_met flag rather than being
// silently accepted as binding.
func (s *LifecycleService) RecordDecision(ctx context.Context, meetingUID, itemUID string, decision models.Decision) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.ErrServiceUnavailable
	}

	if !decision.Outcome.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("outcome %q is not a valid decision outcome", decision.Outcome))
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("agenda_item_uid", itemUID))

	meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			slog.WarnContext(ctx, "meeting not found", logging.ErrKey, err)
			return nil, domain.ErrMeetingNotFound
		}
		slog.ErrorContext(ctx, "error getting meeting from store", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	if meeting.Status != models.StatusActive {
		return nil, domain.NewValidationError(fmt.Sprintf("decisions can only be recorded while the meeting is active, not %s", meeting.Status))
	}

	item := meeting.AgendaItemByUID(itemUID)
	if item == nil {
		return nil, domain.ErrAgendaItemNotFound
	}

	if !s.AttendanceService.ItemQuorum(meeting, item).Met {
		decision.QuorumNotMet = true
		slog.WarnContext(ctx, "decision recorded without recusal-adjusted quorum")
	}
	decision.RecordedAt = utils.TimePtr(time.Now().UTC())

	item.Decision = &decision
	item.IsCompleted = true
	meeting.UpdatedAt = utils.TimePtr(time.Now().UTC())

	err = s.saveMeeting(ctx, meeting, revision)
	if err != nil {
		if errors.Is(err, domain.ErrRevisionMismatch) {
			slog.WarnContext(ctx, "concurrent update lost the revision race", logging.ErrKey, err)
			return nil, domain.ErrRevisionMismatch
		}
		slog.ErrorContext(ctx, "error updating meeting in store", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	if err := s.MessageBuilder.SendIndexMeeting(ctx, models.ActionUpdated, *meeting); err != nil {
		slog.ErrorContext(ctx, "error sending meeting index message", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	slog.DebugContext(ctx, "recorded decision", "outcome", decision.Outcome, "quorum_not_met", decision.QuorumNotMet)

	return meeting, nil
}

// CompileMinutes re-derives or returns the minutes for a meeting without
// mutating it. Exposed for inspection; the authoritative compilation happens
// inside the end transition.
func (s *LifecycleService) CompileMinutes(ctx context.Context, meetingUID string) (*models.Minutes, []models.ComplianceWarning, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, nil, domain.ErrServiceUnavailable
	}

	meeting, err := s.MeetingRepository.Get(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			return nil, nil, domain.ErrMeetingNotFound
		}
		slog.ErrorContext(ctx, "error getting meeting from store", logging.ErrKey, err)
		return nil, nil, domain.ErrInternal
	}

	return s.MinutesService.Compile(meeting)
}
