// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/pkg/utils"
)

func completedMeetingForTesting() *models.Meeting {
	meeting := boardMeetingForTesting(models.StatusCompleted)
	meeting.MeetingNumber = 7
	meeting.ScheduledStart = mustParseTime("2026-03-10T09:00:00Z")
	meeting.ActualStart = utils.TimePtr(mustParseTime("2026-03-10T09:05:00Z"))
	meeting.ActualEnd = utils.TimePtr(mustParseTime("2026-03-10T10:30:00Z"))
	for _, memberID := range []string{"member-1", "member-2", "member-4"} {
		meeting.AttendeeByMemberID(memberID).AttendanceStatus = models.AttendancePresent
	}
	meeting.AttendeeByMemberID("member-3").AttendanceStatus = models.AttendanceAbsent
	return meeting
}

func TestMinutesService_Compile(t *testing.T) {
	service := NewMinutesService()

	meeting := completedMeetingForTesting()
	meeting.AgendaItems = []models.AgendaItem{
		{UID: "item-3", OrderIndex: 2, Title: "Closing of the Meeting", Notes: "Meeting closed at 10:30."},
		{UID: "item-1", OrderIndex: 0, Title: "Opening of the Meeting"},
		{
			UID:        "item-2",
			OrderIndex: 1,
			Title:      "Budget Approval",
			Decision: &models.Decision{
				Outcome: models.OutcomeApproved,
				Motion:  "Adopt the 2026 budget",
				Votes:   models.VoteTally{For: 3, Against: 1},
			},
		},
	}

	minutes, warnings, err := service.Compile(meeting)

	assert.NoError(t, err)
	assert.NotNil(t, minutes)
	assert.Empty(t, warnings)

	assert.NotEmpty(t, minutes.UID)
	assert.Equal(t, "meeting-1", minutes.MeetingUID)
	assert.Equal(t, 7, minutes.MeetingNumber)
	assert.Equal(t, *meeting.ActualStart, minutes.MeetingDate)

	// Entries follow orderIndex, not the slice order the items arrived in.
	assert.Equal(t, models.ItemMinutesPopulated, minutes.ItemMinutesState)
	assert.Len(t, minutes.ItemMinutes, 3)
	assert.Equal(t, "item-1", minutes.ItemMinutes[0].AgendaItemUID)
	assert.Equal(t, "item-2", minutes.ItemMinutes[1].AgendaItemUID)
	assert.Equal(t, "item-3", minutes.ItemMinutes[2].AgendaItemUID)

	assert.Equal(t, models.ItemMinutesNote, minutes.ItemMinutes[0].Kind)
	assert.Equal(t, models.ItemMinutesDecision, minutes.ItemMinutes[1].Kind)
	assert.NotNil(t, minutes.ItemMinutes[1].Decision)
	assert.Equal(t, models.OutcomeApproved, minutes.ItemMinutes[1].Decision.Outcome)
	assert.Equal(t, models.VoteTally{For: 3, Against: 1}, minutes.ItemMinutes[1].Decision.Votes)
	assert.Equal(t, "Meeting closed at 10:30.", minutes.ItemMinutes[2].Discussion)

	assert.ElementsMatch(t, []string{"Anna Lind", "Erik Berg", "Johan Ek"}, minutes.Attendance.Present)
	assert.Equal(t, []string{"Maria Holm"}, minutes.Attendance.Absent)
	assert.Equal(t, []string{"Sara Falk"}, minutes.Attendance.Guests)

	assert.NotNil(t, minutes.Signatures.Chair)
	assert.Equal(t, "member-1", minutes.Signatures.Chair.MemberID)
	assert.NotNil(t, minutes.Signatures.Adjuster)
	assert.Equal(t, "member-4", minutes.Signatures.Adjuster.MemberID)
}

func TestMinutesService_Compile_EmptyAgenda(t *testing.T) {
	service := NewMinutesService()

	meeting := completedMeetingForTesting()
	meeting.AgendaItems = nil

	minutes, _, err := service.Compile(meeting)

	assert.NoError(t, err)
	// Explicitly "empty", so renderers cannot mistake it for "never compiled".
	assert.Equal(t, models.ItemMinutesEmpty, minutes.ItemMinutesState)
	assert.Empty(t, minutes.ItemMinutes)
}

func TestMinutesService_Compile_Idempotent(t *testing.T) {
	service := NewMinutesService()

	meeting := completedMeetingForTesting()
	existing := &models.Minutes{UID: "minutes-1", MeetingUID: meeting.UID, ItemMinutesState: models.ItemMinutesEmpty}
	meeting.Minutes = existing

	minutes, warnings, err := service.Compile(meeting)

	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Same(t, existing, minutes)
}

func TestMinutesService_Compile_StatusGuard(t *testing.T) {
	service := NewMinutesService()

	tests := []struct {
		name      string
		status    models.MeetingStatus
		expectErr bool
	}{
		{name: "draft rejected", status: models.StatusDraft, expectErr: true},
		{name: "scheduled rejected", status: models.StatusScheduled, expectErr: true},
		{name: "cancelled rejected", status: models.StatusCancelled, expectErr: true},
		{name: "active allowed", status: models.StatusActive},
		{name: "completed allowed", status: models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meeting := completedMeetingForTesting()
			meeting.Status = tt.status

			minutes, _, err := service.Compile(meeting)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, minutes)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, minutes)
		})
	}
}

func TestMinutesService_Compile_AttendanceFallback(t *testing.T) {
	service := NewMinutesService()

	// No explicit attendance anywhere: accepted responses stand in.
	meeting := boardMeetingForTesting(models.StatusCompleted)
	meeting.ScheduledStart = mustParseTime("2026-03-10T09:00:00Z")
	meeting.AttendeeByMemberID("member-1").Response = models.ResponseAccepted
	meeting.AttendeeByMemberID("member-2").Response = models.ResponseAccepted
	meeting.AttendeeByMemberID("member-3").Response = models.ResponseDeclined
	meeting.AttendeeByMemberID("member-4").Response = models.ResponsePending

	minutes, _, err := service.Compile(meeting)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"Anna Lind", "Erik Berg"}, minutes.Attendance.Present)
	assert.ElementsMatch(t, []string{"Maria Holm", "Johan Ek"}, minutes.Attendance.Absent)
	// Falls back to the scheduled start when the meeting never recorded one.
	assert.Equal(t, meeting.ScheduledStart, minutes.MeetingDate)
}

func TestMinutesService_Compile_MissingSignatories(t *testing.T) {
	service := NewMinutesService()

	meeting := &models.Meeting{
		UID:            "meeting-2",
		Status:         models.StatusCompleted,
		ScheduledStart: mustParseTime("2026-03-10T09:00:00Z"),
		Attendees: []models.Attendee{
			{MemberID: "member-2", Name: "Erik Berg", Role: models.RoleDirector, HasVotingRights: true},
		},
	}

	minutes, warnings, err := service.Compile(meeting)

	assert.NoError(t, err)
	assert.Nil(t, minutes.Signatures.Chair)
	assert.Nil(t, minutes.Signatures.Adjuster)
	assert.Contains(t, warnings, models.WarningMissingChair)
	assert.Contains(t, warnings, models.WarningMissingAdjuster)
}

func TestMinutesService_Compile_NilMeeting(t *testing.T) {
	service := NewMinutesService()

	minutes, warnings, err := service.Compile(nil)

	assert.Error(t, err)
	assert.Nil(t, minutes)
	assert.Nil(t, warnings)
}

func TestMinutesService_Compile_CreatedAtIsSet(t *testing.T) {
	service := NewMinutesService()

	before := time.Now().UTC()
	minutes, _, err := service.Compile(completedMeetingForTesting())
	after := time.Now().UTC()

	assert.NoError(t, err)
	assert.NotNil(t, minutes.CreatedAt)
	assert.False(t, minutes.CreatedAt.Before(before))
	assert.False(t, minutes.CreatedAt.After(after))
}
