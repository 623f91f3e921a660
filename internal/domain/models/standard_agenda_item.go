// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

import "strings"

// Locale identifiers supported by the catalog.
const (
	LocaleEnglish = "en"
	LocaleSwedish = "sv"
)

// LocalizedText holds the per-locale variants of a display string.
type LocalizedText struct {
	EN string `json:"en"`
	SV string `json:"sv"`
}

// Get returns the variant for the given locale, falling back to English.
func (t LocalizedText) Get(locale string) string {
	switch strings.ToLower(locale) {
	case LocaleSwedish:
		if t.SV != "" {
			return t.SV
		}
	}
	return t.EN
}

// Matches reports whether s equals any localized variant, case-insensitively.
func (t LocalizedText) Matches(s string) bool {
	return strings.EqualFold(s, t.EN) || strings.EqualFold(s, t.SV)
}

// ItemType represents the kind of business an agenda item carries.
type ItemType string

const (
	ItemTypeInformation ItemType = "information"
	ItemTypeDecision    ItemType = "decision"
	ItemTypeDiscussion  ItemType = "discussion"
	ItemTypeFormality   ItemType = "formality"
)

// ItemCategory represents the grouping of a standard agenda item.
type ItemCategory string

const (
	CategoryFormality   ItemCategory = "formality"
	CategoryGovernance  ItemCategory = "governance"
	CategoryFinancial   ItemCategory = "financial"
	CategoryStrategic   ItemCategory = "strategic"
	CategoryOperational ItemCategory = "operational"
	CategoryCustom      ItemCategory = "custom"
)

// Order returns the presentation rank of the category. Unknown categories
// sort last.
func (c ItemCategory) Order() int {
	switch c {
	case CategoryFormality:
		return 0
	case CategoryGovernance:
		return 1
	case CategoryFinancial:
		return 2
	case CategoryStrategic:
		return 3
	case CategoryOperational:
		return 4
	case CategoryCustom:
		return 5
	}
	return 6
}

// MeetingType represents the legal kind of a board meeting.
type MeetingType string

const (
	MeetingTypeOrdinary  MeetingType = "ordinary"
	MeetingTypeStatutory MeetingType = "statutory"
	MeetingTypeAnnual    MeetingType = "annual"
	MeetingTypeExtra     MeetingType = "extra"
)

// StandardAgendaItem is a catalog entry describing a reusable agenda item.
// Immutable once published to the catalog.
type StandardAgendaItem struct {
	ID                string        `json:"id"`
	Title             LocalizedText `json:"title"`
	Type              ItemType      `json:"type"`
	Category          ItemCategory  `json:"category"`
	EstimatedDuration int           `json:"estimated_duration"`
	IsRequired        bool          `json:"is_required"`
	RequiredFor       []MeetingType `json:"required_for,omitempty"`
	SortOrder         int           `json:"sort_order"`
}

// RequiredForType reports whether the item is mandatory for the given
// meeting type.
func (i *StandardAgendaItem) RequiredForType(meetingType MeetingType) bool {
	if !i.IsRequired {
		return false
	}
	for _, t := range i.RequiredFor {
		if t == meetingType {
			return true
		}
	}
	return false
}
