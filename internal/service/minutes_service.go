// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/pkg/utils"
)

// MinutesService compiles the authoritative minutes record for a completed
// meeting: agenda, decisions, attendance and signatories merged into one
// immutable snapshot.
type MinutesService struct{}

// NewMinutesService creates a new MinutesService.
func NewMinutesService() *MinutesService {
	return &MinutesService{}
}

// ServiceReady checks if the service is ready for use.
func (s *MinutesService) ServiceReady() bool {
	return true
}

// Compile builds the minutes record for the meeting. Idempotent: if minutes
// already exist they are returned untouched, so a duplicate "end meeting"
// call can never overwrite the legal record. Warnings report compliance
// findings (missing chair or adjuster) without failing the compilation.
func (s *MinutesService) Compile(meeting *models.Meeting) (*models.Minutes, []models.ComplianceWarning, error) {
	if meeting == nil {
		return nil, nil, domain.ErrValidationFailed
	}

	if meeting.Minutes != nil {
		return meeting.Minutes, nil, nil
	}

	if meeting.Status != models.StatusActive && meeting.Status != models.StatusCompleted {
		return nil, nil, domain.NewValidationError("minutes can only be compiled for an active or completed meeting")
	}

	minutes := &models.Minutes{
		UID:           uuid.New().String(),
		MeetingUID:    meeting.UID,
		MeetingNumber: meeting.MeetingNumber,
		MeetingDate:   meetingDate(meeting),
		Attendance:    compileAttendance(meeting),
		CreatedAt:     utils.TimePtr(time.Now().UTC()),
	}

	minutes.ItemMinutes = compileItemMinutes(meeting)
	if len(minutes.ItemMinutes) > 0 {
		minutes.ItemMinutesState = models.ItemMinutesPopulated
	} else {
		// Explicit: an empty agenda produced empty minutes. Renderers must
		// not treat this as "never compiled".
		minutes.ItemMinutesState = models.ItemMinutesEmpty
	}

	var warnings []models.ComplianceWarning
	minutes.Signatures, warnings = compileSignatures(meeting)

	return minutes, warnings, nil
}

func meetingDate(meeting *models.Meeting) time.Time {
	if meeting.ActualStart != nil {
		return *meeting.ActualStart
	}
	return meeting.ScheduledStart
}

// compileAttendance snapshots attendance by name, since minutes are a
// point-in-time legal record, not a set of live references. When no explicit
// attendance was recorded the accepted responses stand in for presence, for
// historical meetings that lacked live tracking.
func compileAttendance(meeting *models.Meeting) models.AttendanceSnapshot {
	hasExplicit := false
	for _, a := range meeting.Attendees {
		if a.AttendanceStatus == models.AttendancePresent || a.AttendanceStatus == models.AttendanceAbsent {
			hasExplicit = true
			break
		}
	}

	snapshot := models.AttendanceSnapshot{
		Present: []string{},
		Absent:  []string{},
	}
	for _, a := range meeting.Attendees {
		if a.Role.IsGuest() {
			snapshot.Guests = append(snapshot.Guests, a.Name)
			continue
		}

		present := a.AttendanceStatus == models.AttendancePresent
		if !hasExplicit {
			present = a.Response == models.ResponseAccepted
		}

		if present {
			snapshot.Present = append(snapshot.Present, a.Name)
		} else {
			snapshot.Absent = append(snapshot.Absent, a.Name)
		}
	}

	return snapshot
}

// compileItemMinutes emits one entry per agenda item in orderIndex order.
// The order is preserved verbatim from the agenda: minutes must reflect the
// actual sequence of business conducted.
func compileItemMinutes(meeting *models.Meeting) []models.ItemMinutes {
	ordered := make([]models.AgendaItem, len(meeting.AgendaItems))
	copy(ordered, meeting.AgendaItems)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	entries := make([]models.ItemMinutes, 0, len(ordered))
	for _, item := range ordered {
		entry := models.ItemMinutes{
			AgendaItemUID: item.UID,
			Title:         item.Title,
			Discussion:    item.Notes,
			Kind:          models.ItemMinutesNote,
		}
		if item.Decision != nil {
			// Copied through unchanged, vote tallies and quorum flag included.
			decision := *item.Decision
			entry.Kind = models.ItemMinutesDecision
			entry.Decision = &decision
		}
		entries = append(entries, entry)
	}

	return entries
}

// compileSignatures derives the signatories from roles rather than
// asserting them: the chair and, if the organization has one, the adjuster.
// A missing signatory is reported, not fatal.
func compileSignatures(meeting *models.Meeting) (models.Signatures, []models.ComplianceWarning) {
	var signatures models.Signatures
	var warnings []models.ComplianceWarning

	if chair := meeting.AttendeeByRole(models.RoleChair); chair != nil {
		signatures.Chair = &models.Signatory{MemberID: chair.MemberID, Name: chair.Name}
	} else {
		warnings = append(warnings, models.WarningMissingChair)
	}

	if adjuster := meeting.AttendeeByRole(models.RoleAdjuster); adjuster != nil {
		signatures.Adjuster = &models.Signatory{MemberID: adjuster.MemberID, Name: adjuster.Name}
	} else {
		warnings = append(warnings, models.WarningMissingAdjuster)
	}

	return signatures, warnings
}
