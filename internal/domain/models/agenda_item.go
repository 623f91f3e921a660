// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

import (
	"slices"
	"time"
)

// DecisionOutcome represents the result of a decision agenda item.
type DecisionOutcome string

const (
	OutcomeApproved DecisionOutcome = "approved"
	OutcomeRejected DecisionOutcome = "rejected"
	OutcomeTabled   DecisionOutcome = "tabled"
)

// IsValid reports whether the outcome is one of the known values.
func (o DecisionOutcome) IsValid() bool {
	switch o {
	case OutcomeApproved, OutcomeRejected, OutcomeTabled:
		return true
	}
	return false
}

// VoteTally holds the vote counts recorded for a decision.
type VoteTally struct {
	For     int `json:"for"`
	Against int `json:"against"`
	Abstain int `json:"abstain"`
}

// Decision is the recorded outcome of a decision agenda item.
// QuorumNotMet is stamped at recording time when the recusal-adjusted quorum
// for the item failed; it is never recomputed afterwards.
type Decision struct {
	Outcome      DecisionOutcome `json:"outcome"`
	Motion       string          `json:"motion,omitempty"`
	Votes        VoteTally       `json:"votes"`
	QuorumNotMet bool            `json:"quorum_not_met,omitempty"`
	RecordedAt   *time.Time      `json:"recorded_at,omitempty"`
}

// ActionItem is a follow-up task captured against an agenda item.
type ActionItem struct {
	UID         string     `json:"uid"`
	Description string     `json:"description"`
	AssigneeID  string     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
}

// AgendaItem is a meeting-scoped agenda entry. It is mutable until the
// meeting's agenda is locked and frozen in content once the meeting starts.
type AgendaItem struct {
	UID               string       `json:"uid"`
	OrderIndex        int          `json:"order_index"`
	Title             string       `json:"title"`
	Type              ItemType     `json:"type"`
	EstimatedDuration int          `json:"estimated_duration"`
	PresenterID       string       `json:"presenter_id,omitempty"`
	DocumentIDs       []string     `json:"document_ids,omitempty"`
	ConflictKeywords  []string     `json:"conflict_keywords,omitempty"`
	RecusedMemberIDs  []string     `json:"recused_member_ids,omitempty"`
	ActionItems       []ActionItem `json:"action_items,omitempty"`
	Notes             string       `json:"notes,omitempty"`
	IsConfidential    bool         `json:"is_confidential"`
	IsCompleted       bool         `json:"is_completed"`
	Decision          *Decision    `json:"decision,omitempty"`
}

// IsRecused reports whether the member is recused from this item.
func (i *AgendaItem) IsRecused(memberID string) bool {
	return slices.Contains(i.RecusedMemberIDs, memberID)
}

// CompletenessResult is the outcome of validating an agenda against the
// required items for a meeting type. Advisory only; it never blocks creation.
type CompletenessResult struct {
	IsValid        bool     `json:"is_valid"`
	MissingItemIDs []string `json:"missing_item_ids,omitempty"`
}
