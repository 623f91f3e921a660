// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

// AttendeeRole represents the governance role of an attendee within a
// meeting.
type AttendeeRole string

const (
	RoleChair     AttendeeRole = "chair"
	RoleSecretary AttendeeRole = "secretary"
	RoleDirector  AttendeeRole = "director"
	RoleAdjuster  AttendeeRole = "adjuster"
	RoleObserver  AttendeeRole = "observer"
	RoleAuditor   AttendeeRole = "auditor"
)

// IsGuest reports whether the role is recorded as a guest in the minutes
// attendance snapshot rather than present/absent.
func (r AttendeeRole) IsGuest() bool {
	return r == RoleObserver || r == RoleAuditor
}

// ResponseStatus represents an attendee's reply to the meeting invite.
type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "pending"
	ResponseAccepted ResponseStatus = "accepted"
	ResponseDeclined ResponseStatus = "declined"
)

// IsValid reports whether the response is one of the known values.
func (r ResponseStatus) IsValid() bool {
	switch r {
	case ResponsePending, ResponseAccepted, ResponseDeclined:
		return true
	}
	return false
}

// AttendanceStatus represents whether an attendee actually showed up.
type AttendanceStatus string

const (
	AttendanceInvited AttendanceStatus = "invited"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// IsValid reports whether the attendance status is one of the known values.
func (a AttendanceStatus) IsValid() bool {
	switch a {
	case AttendanceInvited, AttendancePresent, AttendanceAbsent:
		return true
	}
	return false
}

// Attendee is a meeting-scoped participant record. The meeting aggregate
// owns its attendee list; the member's global profile lives elsewhere.
type Attendee struct {
	MemberID         string           `json:"member_id"`
	Name             string           `json:"name"`
	Email            string           `json:"email,omitempty"`
	Role             AttendeeRole     `json:"role"`
	Response         ResponseStatus   `json:"response"`
	AttendanceStatus AttendanceStatus `json:"attendance_status"`
	HasVotingRights  bool             `json:"has_voting_rights"`
}
