// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

import "time"

// ItemMinutesState is an explicit tri-state for the compiled item entries.
// Renderers must branch on this, never on slice emptiness, so that an empty
// agenda cannot be confused with minutes that were never compiled.
type ItemMinutesState string

const (
	ItemMinutesUnset     ItemMinutesState = "unset"
	ItemMinutesEmpty     ItemMinutesState = "empty"
	ItemMinutesPopulated ItemMinutesState = "populated"
)

// ItemMinutesKind tags the variant of an item entry: one that carries a
// recorded decision and one that is a plain note.
type ItemMinutesKind string

const (
	ItemMinutesDecision ItemMinutesKind = "decision"
	ItemMinutesNote     ItemMinutesKind = "note"
)

// ItemMinutes is the minutes entry for a single agenda item. Entries are
// ordered exactly as the agenda's orderIndex order, never re-sorted.
type ItemMinutes struct {
	AgendaItemUID string          `json:"agenda_item_uid"`
	Title         string          `json:"title"`
	Discussion    string          `json:"discussion,omitempty"`
	Kind          ItemMinutesKind `json:"kind"`
	Decision      *Decision       `json:"decision,omitempty"`
}

// AttendanceSnapshot is the point-in-time attendance record embedded in the
// minutes. Names, not live references: minutes are a legal record.
type AttendanceSnapshot struct {
	Present []string `json:"present"`
	Absent  []string `json:"absent"`
	Guests  []string `json:"guests,omitempty"`
}

// Signatory references an attendee designated to sign the minutes.
type Signatory struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
}

// Signatures holds the derived signatories: the chair and, where the
// organization has one, the adjuster (justerare).
type Signatures struct {
	Chair    *Signatory `json:"chair,omitempty"`
	Adjuster *Signatory `json:"adjuster,omitempty"`
}

// Minutes is the authoritative record of a completed meeting. Created
// exactly once at completion and logically immutable thereafter.
type Minutes struct {
	UID              string             `json:"uid"`
	MeetingUID       string             `json:"meeting_uid"`
	MeetingNumber    int                `json:"meeting_number,omitempty"`
	MeetingDate      time.Time          `json:"meeting_date"`
	Attendance       AttendanceSnapshot `json:"attendance"`
	ItemMinutesState ItemMinutesState   `json:"item_minutes_state"`
	ItemMinutes      []ItemMinutes      `json:"item_minutes,omitempty"`
	Signatures       Signatures         `json:"signatures"`
	Summary          string             `json:"summary,omitempty"`
	CreatedAt        *time.Time         `json:"created_at,omitempty"`
}
