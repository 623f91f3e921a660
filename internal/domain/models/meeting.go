// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// MeetingStatus is the lifecycle state of a meeting. Only the lifecycle
// service mutates it.
type MeetingStatus string

const (
	StatusDraft     MeetingStatus = "draft"
	StatusScheduled MeetingStatus = "scheduled"
	StatusActive    MeetingStatus = "active"
	StatusCompleted MeetingStatus = "completed"
	StatusCancelled MeetingStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s MeetingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// MeetingEvent is a lifecycle transition request.
type MeetingEvent string

const (
	EventSchedule MeetingEvent = "schedule"
	EventStart    MeetingEvent = "start"
	EventEnd      MeetingEvent = "end"
	EventCancel   MeetingEvent = "cancel"
)

// IsValid reports whether the event is one of the known lifecycle events.
func (e MeetingEvent) IsValid() bool {
	switch e {
	case EventSchedule, EventStart, EventEnd, EventCancel:
		return true
	}
	return false
}

// ComplianceWarning is a soft compliance finding attached to an operation
// result. Warnings never block the operation.
type ComplianceWarning string

const (
	WarningQuorumNotMet        ComplianceWarning = "quorum_not_met"
	WarningMissingChair        ComplianceWarning = "missing_chair"
	WarningMissingAdjuster     ComplianceWarning = "missing_adjuster"
	WarningMissingRequiredItem ComplianceWarning = "missing_required_items"
)

// Meeting is the key-value store representation of a board meeting
// aggregate: lifecycle state, attendees, agenda and (once completed) the
// compiled minutes.
type Meeting struct {
	UID            string        `json:"uid"`
	TenantUID      string        `json:"tenant_uid"`
	Title          string        `json:"title"`
	MeetingType    MeetingType   `json:"meeting_type"`
	MeetingNumber  int           `json:"meeting_number,omitempty"`
	Status         MeetingStatus `json:"status"`
	ScheduledStart time.Time     `json:"scheduled_start"`
	ScheduledEnd   time.Time     `json:"scheduled_end"`
	ActualStart    *time.Time    `json:"actual_start,omitempty"`
	ActualEnd      *time.Time    `json:"actual_end,omitempty"`
	QuorumRequired int           `json:"quorum_required"`
	Attendees      []Attendee    `json:"attendees,omitempty"`
	AgendaItems    []AgendaItem  `json:"agenda_items,omitempty"`
	AgendaLocked   bool          `json:"agenda_locked"`
	Minutes        *Minutes      `json:"minutes,omitempty"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
	UpdatedAt      *time.Time    `json:"updated_at,omitempty"`
}

// VotingAttendees returns the attendees holding voting rights.
func (m *Meeting) VotingAttendees() []Attendee {
	var voting []Attendee
	for _, a := range m.Attendees {
		if a.HasVotingRights {
			voting = append(voting, a)
		}
	}
	return voting
}

// AttendeeByMemberID returns a pointer into the attendee list, or nil.
func (m *Meeting) AttendeeByMemberID(memberID string) *Attendee {
	for i := range m.Attendees {
		if m.Attendees[i].MemberID == memberID {
			return &m.Attendees[i]
		}
	}
	return nil
}

// AttendeeByRole returns the first attendee holding the role, or nil.
func (m *Meeting) AttendeeByRole(role AttendeeRole) *Attendee {
	for i := range m.Attendees {
		if m.Attendees[i].Role == role {
			return &m.Attendees[i]
		}
	}
	return nil
}

// AgendaItemByUID returns a pointer into the agenda list, or nil.
func (m *Meeting) AgendaItemByUID(itemUID string) *AgendaItem {
	for i := range m.AgendaItems {
		if m.AgendaItems[i].UID == itemUID {
			return &m.AgendaItems[i]
		}
	}
	return nil
}

// Tags generates a set of tags for the meeting used by downstream indexing.
func (m *Meeting) Tags() []string {
	var tags []string
	if m.UID != "" {
		tags = append(tags, m.UID, "meeting_uid:"+m.UID)
	}
	if m.TenantUID != "" {
		tags = append(tags, "tenant_uid:"+m.TenantUID)
	}
	if m.Title != "" {
		tags = append(tags, m.Title)
	}
	if m.Status != "" {
		tags = append(tags, "status:"+string(m.Status))
	}
	return tags
}

// TransitionResult is returned by the lifecycle service: the updated
// aggregate plus any soft compliance warnings the transition surfaced.
type TransitionResult struct {
	Meeting  *Meeting            `json:"meeting"`
	Warnings []ComplianceWarning `json:"warnings,omitempty"`
}

// QuorumStatus is a quorum computation result, either meeting-wide or for a
// single agenda item.
type QuorumStatus struct {
	Required int  `json:"required"`
	Eligible int  `json:"eligible"`
	Present  int  `json:"present"`
	Met      bool `json:"met"`
}
