// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/mocks"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/pkg/constants"
	"github.com/boardsuite/board-governance-service/pkg/utils"
)

// mustParseTime is a helper function for tests
func mustParseTime(timeStr string) time.Time {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		panic(err)
	}
	return t
}

// setupLifecycleServiceForTesting creates a LifecycleService with mock
// dependencies for testing
func setupLifecycleServiceForTesting() (*LifecycleService, *mocks.MockMeetingRepository, *mocks.MockMessageBuilder) {
	mockMeetingRepo := new(mocks.MockMeetingRepository)
	mockBuilder := new(mocks.MockMessageBuilder)

	service := NewLifecycleService(
		mockMeetingRepo,
		mockBuilder,
		NewAttendanceService(),
		NewMinutesService(),
		ServiceConfig{},
	)

	return service, mockMeetingRepo, mockBuilder
}

func schedulableMeetingForTesting() *models.Meeting {
	meeting := boardMeetingForTesting(models.StatusDraft)
	meeting.ScheduledStart = mustParseTime("2026-03-10T09:00:00Z")
	meeting.ScheduledEnd = mustParseTime("2026-03-10T10:30:00Z")
	return meeting
}

func TestLifecycleService_ServiceReady(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *LifecycleService
		expected bool
	}{
		{
			name: "service ready with all dependencies",
			setup: func() *LifecycleService {
				service, _, _ := setupLifecycleServiceForTesting()
				return service
			},
			expected: true,
		},
		{
			name: "service not ready - missing meeting repository",
			setup: func() *LifecycleService {
				service, _, _ := setupLifecycleServiceForTesting()
				service.MeetingRepository = nil
				return service
			},
			expected: false,
		},
		{
			name: "service not ready - missing message builder",
			setup: func() *LifecycleService {
				service, _, _ := setupLifecycleServiceForTesting()
				service.MessageBuilder = nil
				return service
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.setup().ServiceReady())
		})
	}
}

func TestLifecycleService_CanEditAgenda(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()

	tests := []struct {
		name     string
		meeting  *models.Meeting
		expected bool
	}{
		{name: "nil meeting", meeting: nil, expected: false},
		{name: "draft", meeting: &models.Meeting{Status: models.StatusDraft}, expected: true},
		{name: "scheduled", meeting: &models.Meeting{Status: models.StatusScheduled}, expected: true},
		{name: "scheduled but locked", meeting: &models.Meeting{Status: models.StatusScheduled, AgendaLocked: true}, expected: false},
		{name: "active", meeting: &models.Meeting{Status: models.StatusActive}, expected: false},
		{name: "completed", meeting: &models.Meeting{Status: models.StatusCompleted}, expected: false},
		{name: "cancelled", meeting: &models.Meeting{Status: models.StatusCancelled}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.CanEditAgenda(tt.meeting))
		})
	}
}

func TestLifecycleService_Apply_InvalidTransitions(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()
	now := mustParseTime("2026-03-10T09:00:00Z")

	tests := []struct {
		name   string
		status models.MeetingStatus
		event  models.MeetingEvent
	}{
		{name: "draft cannot start", status: models.StatusDraft, event: models.EventStart},
		{name: "draft cannot end", status: models.StatusDraft, event: models.EventEnd},
		{name: "scheduled cannot end", status: models.StatusScheduled, event: models.EventEnd},
		{name: "scheduled cannot be rescheduled", status: models.StatusScheduled, event: models.EventSchedule},
		{name: "active cannot start twice", status: models.StatusActive, event: models.EventStart},
		{name: "completed cannot restart", status: models.StatusCompleted, event: models.EventStart},
		{name: "completed cannot cancel", status: models.StatusCompleted, event: models.EventCancel},
		{name: "cancelled cannot schedule", status: models.StatusCancelled, event: models.EventSchedule},
		{name: "cancelled cannot cancel twice", status: models.StatusCancelled, event: models.EventCancel},
		{name: "unknown status cannot cancel", status: models.MeetingStatus("archived"), event: models.EventCancel},
		{name: "empty status cannot cancel", status: models.MeetingStatus(""), event: models.EventCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meeting := schedulableMeetingForTesting()
			meeting.Status = tt.status

			warnings, err := service.Apply(meeting, tt.event, now)

			assert.Nil(t, warnings)
			var invalidErr *domain.InvalidTransitionError
			assert.ErrorAs(t, err, &invalidErr)
			assert.Equal(t, tt.status, invalidErr.From)
			assert.Equal(t, tt.event, invalidErr.Event)
			assert.Equal(t, tt.status, meeting.Status, "a refused event must not change state")
		})
	}
}

func TestLifecycleService_Apply_NilMeeting(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()

	warnings, err := service.Apply(nil, models.EventCancel, mustParseTime("2026-03-10T09:00:00Z"))

	assert.Nil(t, warnings)
	assert.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestLifecycleService_Apply_Schedule(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()
	now := mustParseTime("2026-03-09T12:00:00Z")

	t.Run("valid schedule", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()

		warnings, err := service.Apply(meeting, models.EventSchedule, now)

		assert.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, models.StatusScheduled, meeting.Status)
	})

	t.Run("start must precede end", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()
		meeting.ScheduledEnd = meeting.ScheduledStart

		_, err := service.Apply(meeting, models.EventSchedule, now)

		assert.Error(t, err)
		assert.Equal(t, models.StatusDraft, meeting.Status)
	})

	t.Run("duration cannot exceed the maximum", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()
		meeting.ScheduledEnd = meeting.ScheduledStart.Add(time.Duration(constants.MaxMeetingDurationMinutes+1) * time.Minute)

		_, err := service.Apply(meeting, models.EventSchedule, now)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		assert.Equal(t, models.StatusDraft, meeting.Status)
	})

	t.Run("quorum must be positive", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()
		meeting.QuorumRequired = 0

		_, err := service.Apply(meeting, models.EventSchedule, now)

		assert.Error(t, err)
	})

	t.Run("quorum cannot exceed voting attendees", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()
		meeting.QuorumRequired = 5 // only 4 attendees hold votes

		_, err := service.Apply(meeting, models.EventSchedule, now)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestLifecycleService_Apply_Start(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()
	now := mustParseTime("2026-03-10T09:02:00Z")

	t.Run("start stamps the clock and locks the agenda", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()
		meeting.Status = models.StatusScheduled
		for _, memberID := range []string{"member-1", "member-2", "member-3"} {
			meeting.AttendeeByMemberID(memberID).AttendanceStatus = models.AttendancePresent
		}

		warnings, err := service.Apply(meeting, models.EventStart, now)

		assert.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, models.StatusActive, meeting.Status)
		assert.True(t, meeting.AgendaLocked)
		assert.NotNil(t, meeting.ActualStart)
		assert.Equal(t, now, *meeting.ActualStart)
	})

	t.Run("starting without quorum warns but proceeds", func(t *testing.T) {
		meeting := schedulableMeetingForTesting()
		meeting.Status = models.StatusScheduled
		meeting.AttendeeByMemberID("member-1").AttendanceStatus = models.AttendancePresent

		warnings, err := service.Apply(meeting, models.EventStart, now)

		assert.NoError(t, err)
		assert.Contains(t, warnings, models.WarningQuorumNotMet)
		assert.Equal(t, models.StatusActive, meeting.Status)
	})
}

func TestLifecycleService_Apply_End(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()
	now := mustParseTime("2026-03-10T10:31:00Z")

	meeting := schedulableMeetingForTesting()
	meeting.Status = models.StatusActive
	meeting.ActualStart = utils.TimePtr(mustParseTime("2026-03-10T09:02:00Z"))
	meeting.AgendaItems = []models.AgendaItem{
		{UID: "item-1", OrderIndex: 0, Title: "Opening of the Meeting", EstimatedDuration: 5},
	}

	warnings, err := service.Apply(meeting, models.EventEnd, now)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, meeting.Status)
	assert.NotNil(t, meeting.ActualEnd)
	assert.Equal(t, now, *meeting.ActualEnd)
	assert.NotNil(t, meeting.Minutes, "ending must compile minutes")
	assert.Equal(t, models.ItemMinutesPopulated, meeting.Minutes.ItemMinutesState)
	// The adjuster exists, the chair exists: no signatory warnings.
	assert.Empty(t, warnings)
}

func TestLifecycleService_Apply_Cancel(t *testing.T) {
	service, _, _ := setupLifecycleServiceForTesting()
	now := mustParseTime("2026-03-10T09:00:00Z")

	for _, status := range []models.MeetingStatus{models.StatusDraft, models.StatusScheduled, models.StatusActive} {
		t.Run(string(status), func(t *testing.T) {
			meeting := schedulableMeetingForTesting()
			meeting.Status = status

			warnings, err := service.Apply(meeting, models.EventCancel, now)

			assert.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, models.StatusCancelled, meeting.Status)
			assert.Nil(t, meeting.Minutes, "cancellation never compiles minutes")
		})
	}
}

func TestLifecycleService_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("persists under the loaded revision and publishes", func(t *testing.T) {
		service, mockRepo, mockBuilder := setupLifecycleServiceForTesting()
		meeting := schedulableMeetingForTesting()

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(42), nil)
		mockRepo.On("Update", mock.Anything, meeting, uint64(42)).Return(nil)
		mockBuilder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.AnythingOfType("models.Meeting")).Return(nil)
		mockBuilder.On("SendMeetingTransitioned", mock.Anything, mock.MatchedBy(func(msg models.MeetingTransitionedMessage) bool {
			return msg.MeetingUID == "meeting-1" &&
				msg.From == models.StatusDraft &&
				msg.To == models.StatusScheduled &&
				msg.Event == models.EventSchedule
		})).Return(nil)

		result, err := service.Transition(ctx, "meeting-1", models.EventSchedule)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusScheduled, result.Meeting.Status)
		assert.NotNil(t, result.Meeting.UpdatedAt)
		mockRepo.AssertExpectations(t)
		mockBuilder.AssertExpectations(t)
	})

	t.Run("end publishes the compiled minutes", func(t *testing.T) {
		service, mockRepo, mockBuilder := setupLifecycleServiceForTesting()
		meeting := schedulableMeetingForTesting()
		meeting.Status = models.StatusActive

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(7), nil)
		mockRepo.On("Update", mock.Anything, meeting, uint64(7)).Return(nil)
		mockBuilder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.AnythingOfType("models.Meeting")).Return(nil)
		mockBuilder.On("SendMeetingTransitioned", mock.Anything, mock.AnythingOfType("models.MeetingTransitionedMessage")).Return(nil)
		mockBuilder.On("SendMinutesCompiled", mock.Anything, mock.MatchedBy(func(msg models.MinutesCompiledMessage) bool {
			return msg.MeetingUID == "meeting-1" && msg.Minutes != nil
		})).Return(nil)

		result, err := service.Transition(ctx, "meeting-1", models.EventEnd)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, result.Meeting.Status)
		assert.NotNil(t, result.Meeting.Minutes)
		mockBuilder.AssertExpectations(t)
	})

	t.Run("duplicate end is a no-op returning the existing minutes", func(t *testing.T) {
		service, mockRepo, mockBuilder := setupLifecycleServiceForTesting()
		existing := &models.Minutes{UID: "minutes-1", MeetingUID: "meeting-1", ItemMinutesState: models.ItemMinutesEmpty}
		meeting := schedulableMeetingForTesting()
		meeting.Status = models.StatusCompleted
		meeting.Minutes = existing

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(9), nil)

		result, err := service.Transition(ctx, "meeting-1", models.EventEnd)

		assert.NoError(t, err)
		assert.Same(t, existing, result.Meeting.Minutes)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		mockBuilder.AssertNotCalled(t, "SendMinutesCompiled", mock.Anything, mock.Anything)
	})

	t.Run("meeting not found", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		mockRepo.On("GetWithRevision", mock.Anything, "missing").Return(nil, uint64(0), domain.ErrMeetingNotFound)

		result, err := service.Transition(ctx, "missing", models.EventStart)

		assert.ErrorIs(t, err, domain.ErrMeetingNotFound)
		assert.Nil(t, result)
	})

	t.Run("losing the revision race surfaces the mismatch", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		meeting := schedulableMeetingForTesting()

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(3), nil)
		mockRepo.On("Update", mock.Anything, meeting, uint64(3)).Return(domain.ErrRevisionMismatch)

		result, err := service.Transition(ctx, "meeting-1", models.EventSchedule)

		assert.ErrorIs(t, err, domain.ErrRevisionMismatch)
		assert.Nil(t, result)
	})

	t.Run("invalid event name", func(t *testing.T) {
		service, _, _ := setupLifecycleServiceForTesting()

		result, err := service.Transition(ctx, "meeting-1", models.MeetingEvent("explode"))

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("skipping etag validation writes without a revision check", func(t *testing.T) {
		service, mockRepo, mockBuilder := setupLifecycleServiceForTesting()
		service.Config = ServiceConfig{SkipEtagValidation: true}
		meeting := schedulableMeetingForTesting()

		// The loaded revision is stale; the write must not depend on it.
		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(2), nil)
		mockRepo.On("Create", mock.Anything, meeting).Return(nil)
		mockBuilder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.AnythingOfType("models.Meeting")).Return(nil)
		mockBuilder.On("SendMeetingTransitioned", mock.Anything, mock.AnythingOfType("models.MeetingTransitionedMessage")).Return(nil)

		result, err := service.Transition(ctx, "meeting-1", models.EventSchedule)

		assert.NoError(t, err)
		assert.Equal(t, models.StatusScheduled, result.Meeting.Status)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid transition is not persisted", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		meeting := schedulableMeetingForTesting()

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(4), nil)

		result, err := service.Transition(ctx, "meeting-1", models.EventStart)

		var invalidErr *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &invalidErr)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLifecycleService_RecordDecision(t *testing.T) {
	ctx := context.Background()

	activeMeeting := func() *models.Meeting {
		meeting := schedulableMeetingForTesting()
		meeting.Status = models.StatusActive
		for _, memberID := range []string{"member-1", "member-2", "member-3"} {
			meeting.AttendeeByMemberID(memberID).AttendanceStatus = models.AttendancePresent
		}
		meeting.AgendaItems = []models.AgendaItem{
			{UID: "item-1", OrderIndex: 0, Title: "Budget Approval", Type: models.ItemTypeDecision, EstimatedDuration: 30},
			{UID: "item-2", OrderIndex: 1, Title: "Contract Renewal", Type: models.ItemTypeDecision, EstimatedDuration: 15,
				RecusedMemberIDs: []string{"member-2"}},
		}
		return meeting
	}

	t.Run("records a decision with quorum", func(t *testing.T) {
		service, mockRepo, mockBuilder := setupLifecycleServiceForTesting()
		meeting := activeMeeting()

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(5), nil)
		mockRepo.On("Update", mock.Anything, meeting, uint64(5)).Return(nil)
		mockBuilder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.AnythingOfType("models.Meeting")).Return(nil)

		updated, err := service.RecordDecision(ctx, "meeting-1", "item-1", models.Decision{
			Outcome: models.OutcomeApproved,
			Motion:  "Adopt the 2026 budget",
			Votes:   models.VoteTally{For: 3},
		})

		assert.NoError(t, err)
		item := updated.AgendaItemByUID("item-1")
		assert.NotNil(t, item.Decision)
		assert.False(t, item.Decision.QuorumNotMet)
		assert.NotNil(t, item.Decision.RecordedAt)
		assert.True(t, item.IsCompleted)
	})

	t.Run("recusals drop the item below quorum and stamp the decision", func(t *testing.T) {
		service, mockRepo, mockBuilder := setupLifecycleServiceForTesting()
		meeting := activeMeeting()

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(5), nil)
		mockRepo.On("Update", mock.Anything, meeting, uint64(5)).Return(nil)
		mockBuilder.On("SendIndexMeeting", mock.Anything, models.ActionUpdated, mock.AnythingOfType("models.Meeting")).Return(nil)

		updated, err := service.RecordDecision(ctx, "meeting-1", "item-2", models.Decision{
			Outcome: models.OutcomeApproved,
			Votes:   models.VoteTally{For: 2},
		})

		assert.NoError(t, err)
		item := updated.AgendaItemByUID("item-2")
		assert.NotNil(t, item.Decision)
		assert.True(t, item.Decision.QuorumNotMet, "recording proceeds but the shortfall is stamped")
	})

	t.Run("rejected outside active", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		meeting := activeMeeting()
		meeting.Status = models.StatusScheduled

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(5), nil)

		_, err := service.RecordDecision(ctx, "meeting-1", "item-1", models.Decision{Outcome: models.OutcomeApproved})

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})

	t.Run("unknown agenda item", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		meeting := activeMeeting()

		mockRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(5), nil)

		_, err := service.RecordDecision(ctx, "meeting-1", "item-99", models.Decision{Outcome: models.OutcomeApproved})

		assert.ErrorIs(t, err, domain.ErrAgendaItemNotFound)
	})

	t.Run("invalid outcome", func(t *testing.T) {
		service, _, _ := setupLifecycleServiceForTesting()

		_, err := service.RecordDecision(ctx, "meeting-1", "item-1", models.Decision{Outcome: "postponed"})

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	})
}

func TestLifecycleService_CompileMinutes(t *testing.T) {
	ctx := context.Background()

	t.Run("compiles without mutating the stored meeting", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		meeting := schedulableMeetingForTesting()
		meeting.Status = models.StatusActive

		mockRepo.On("Get", mock.Anything, "meeting-1").Return(meeting, nil)

		minutes, _, err := service.CompileMinutes(ctx, "meeting-1")

		assert.NoError(t, err)
		assert.NotNil(t, minutes)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("meeting not found", func(t *testing.T) {
		service, mockRepo, _ := setupLifecycleServiceForTesting()
		mockRepo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrMeetingNotFound)

		minutes, _, err := service.CompileMinutes(ctx, "missing")

		assert.ErrorIs(t, err, domain.ErrMeetingNotFound)
		assert.Nil(t, minutes)
	})
}
