// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

// NATS subjects owned by the governance service.
const (
	// IndexMeetingSubject is the subject for meeting indexing messages.
	IndexMeetingSubject = "boardsuite.index.meeting"

	// IndexAgendaTemplateSubject is the subject for custom agenda template
	// indexing messages.
	IndexAgendaTemplateSubject = "boardsuite.index.agenda_template"

	// MeetingGetTitleSubject is the subject for fetching a meeting title.
	// The subject payload is the meeting UID.
	MeetingGetTitleSubject = "boardsuite.governance-api.get_title"

	// MeetingTransitionSubject is the subject for applying a lifecycle
	// event to a meeting. The payload is a TransitionCommand.
	MeetingTransitionSubject = "boardsuite.governance-api.meeting_transition"

	// ExpandTemplateSubject is the subject for expanding an agenda template
	// into meeting-scoped agenda items. The payload is an ExpandTemplateCommand.
	ExpandTemplateSubject = "boardsuite.governance-api.expand_template"

	// ResolveConflictsSubject is the subject for recomputing recusals on a
	// set of agenda items. The payload is a ResolveConflictsCommand.
	ResolveConflictsSubject = "boardsuite.governance-api.resolve_conflicts"

	// MeetingTransitionedSubject is the subject published after an accepted
	// lifecycle transition. Consumed by the surrounding app for
	// notifications.
	MeetingTransitionedSubject = "boardsuite.governance-api.meeting_transitioned"

	// MinutesCompiledSubject is the subject published once minutes have
	// been compiled for a completed meeting.
	MinutesCompiledSubject = "boardsuite.governance-api.minutes_compiled"
)

// MessageAction is the action of an indexing message.
type MessageAction string

const (
	ActionCreated MessageAction = "created"
	ActionUpdated MessageAction = "updated"
	ActionDeleted MessageAction = "deleted"
)

// GovernanceIndexerMessage is the envelope sent to the indexing service.
type GovernanceIndexerMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers,omitempty"`
	Data    any               `json:"data"`
	Tags    []string          `json:"tags,omitempty"`
}

// TransitionCommand requests a lifecycle transition on a meeting.
type TransitionCommand struct {
	MeetingUID string       `json:"meeting_uid"`
	Event      MeetingEvent `json:"event"`
}

// ExpandTemplateCommand requests expansion of an agenda template.
type ExpandTemplateCommand struct {
	TenantUID   string `json:"tenant_uid,omitempty"`
	TemplateUID string `json:"template_uid"`
	Locale      string `json:"locale,omitempty"`
}

// ResolveConflictsCommand requests recusal recomputation for a set of
// agenda items against member conflict declarations.
type ResolveConflictsCommand struct {
	Items        []AgendaItem                     `json:"items"`
	Declarations map[string][]ConflictDeclaration `json:"declarations"`
}

// MeetingTransitionedMessage is published after a lifecycle transition has
// been accepted and stored.
type MeetingTransitionedMessage struct {
	MeetingUID string              `json:"meeting_uid"`
	From       MeetingStatus       `json:"from"`
	To         MeetingStatus       `json:"to"`
	Event      MeetingEvent        `json:"event"`
	Warnings   []ComplianceWarning `json:"warnings,omitempty"`
}

// MinutesCompiledMessage is published once per meeting when the minutes
// record has been compiled.
type MinutesCompiledMessage struct {
	MeetingUID string              `json:"meeting_uid"`
	Minutes    *Minutes            `json:"minutes"`
	Warnings   []ComplianceWarning `json:"warnings,omitempty"`
}
