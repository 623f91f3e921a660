// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
)

// AttendanceService maintains invite/response state per attendee and
// computes quorum, both meeting-wide and per agenda item.
type AttendanceService struct{}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService() *AttendanceService {
	return &AttendanceService{}
}

// ServiceReady checks if the service is ready for use.
func (s *AttendanceService) ServiceReady() bool {
	return true
}

// UpdateResponse records an attendee's reply to the invite. Replies are
// only accepted while the meeting is still being set up.
func (s *AttendanceService) UpdateResponse(meeting *models.Meeting, memberID string, response models.ResponseStatus) error {
	if meeting == nil {
		return domain.ErrValidationFailed
	}
	if !response.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("response %q is not a valid response status", response))
	}
	if meeting.Status != models.StatusDraft && meeting.Status != models.StatusScheduled {
		return domain.NewValidationError(fmt.Sprintf("invite responses are not accepted while the meeting is %s", meeting.Status))
	}

	attendee := meeting.AttendeeByMemberID(memberID)
	if attendee == nil {
		return domain.ErrAttendeeNotFound
	}

	attendee.Response = response
	return nil
}

// MarkAttendance records whether an attendee actually showed up. Allowed in
// any non-terminal state so a secretary can correct the roll during the
// meeting.
func (s *AttendanceService) MarkAttendance(meeting *models.Meeting, memberID string, status models.AttendanceStatus) error {
	if meeting == nil {
		return domain.ErrValidationFailed
	}
	if !status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("attendance status %q is not valid", status))
	}
	if meeting.Status.IsTerminal() {
		return domain.NewValidationError(fmt.Sprintf("attendance cannot be changed once the meeting is %s", meeting.Status))
	}

	attendee := meeting.AttendeeByMemberID(memberID)
	if attendee == nil {
		return domain.ErrAttendeeNotFound
	}

	attendee.AttendanceStatus = status
	return nil
}

// MeetingQuorum computes the meeting-wide quorum: voting attendees marked
// present against the required threshold. Recusals never reduce the overall
// quorum - a director recused from one item is still present for the
// meeting as a whole.
func (s *AttendanceService) MeetingQuorum(meeting *models.Meeting) models.QuorumStatus {
	status := models.QuorumStatus{Required: meeting.QuorumRequired}
	for _, a := range meeting.Attendees {
		if !a.HasVotingRights {
			continue
		}
		status.Eligible++
		if a.AttendanceStatus == models.AttendancePresent {
			status.Present++
		}
	}
	status.Met = status.Present >= status.Required
	return status
}

// ItemQuorum computes the recusal-adjusted quorum for one agenda item:
// members recused on the item count neither as eligible nor as present.
func (s *AttendanceService) ItemQuorum(meeting *models.Meeting, item *models.AgendaItem) models.QuorumStatus {
	status := models.QuorumStatus{Required: meeting.QuorumRequired}
	for _, a := range meeting.Attendees {
		if !a.HasVotingRights || item.IsRecused(a.MemberID) {
			continue
		}
		status.Eligible++
		if a.AttendanceStatus == models.AttendancePresent {
			status.Present++
		}
	}
	status.Met = status.Present >= status.Required
	return status
}
