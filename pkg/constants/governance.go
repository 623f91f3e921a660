// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package constants

// Governance engine constraints
const (
	// MaxSuggestedItems caps the agenda suggestion list. The suggestion
	// panel is advisory UI, not a completeness gate.
	MaxSuggestedItems = 10

	// MinQuorumRequired is the lowest legal quorum threshold.
	MinQuorumRequired = 1

	// MaxMeetingDurationMinutes is the maximum duration of a meeting in minutes
	MaxMeetingDurationMinutes = 600
)

// Standard agenda item ids that bookend every meeting type.
const (
	// OpeningItemID is the catalog id of the opening formality.
	OpeningItemID = "opening"

	// ClosingItemID is the catalog id of the closing formality.
	ClosingItemID = "closing"
)
