// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"github.com/boardsuite/board-governance-service/internal/domain/models"
)

// BuiltinCatalog is the immutable library of standard agenda items and
// board meeting templates. It is constructed once at startup and injected;
// reads are safe for concurrent use because nothing mutates it.
type BuiltinCatalog struct {
	itemsByID     map[string]*models.StandardAgendaItem
	items         []*models.StandardAgendaItem
	templatesByID map[string]*models.AgendaTemplate
	templates     []*models.AgendaTemplate
}

// NewBuiltinCatalog builds the standard Swedish board-governance catalog.
func NewBuiltinCatalog() *BuiltinCatalog {
	items := builtinStandardItems()
	templates := builtinTemplates()

	catalog := &BuiltinCatalog{
		itemsByID:     make(map[string]*models.StandardAgendaItem, len(items)),
		items:         items,
		templatesByID: make(map[string]*models.AgendaTemplate, len(templates)),
		templates:     templates,
	}
	for _, item := range items {
		catalog.itemsByID[item.ID] = item
	}
	for _, template := range templates {
		catalog.templatesByID[template.UID] = template
	}
	return catalog
}

// StandardItem looks up a standard agenda item by id.
func (c *BuiltinCatalog) StandardItem(id string) (*models.StandardAgendaItem, bool) {
	item, ok := c.itemsByID[id]
	return item, ok
}

// StandardItems returns all standard agenda items.
func (c *BuiltinCatalog) StandardItems() []*models.StandardAgendaItem {
	return c.items
}

// Template looks up a built-in agenda template by uid.
func (c *BuiltinCatalog) Template(uid string) (*models.AgendaTemplate, bool) {
	template, ok := c.templatesByID[uid]
	return template, ok
}

// Templates returns all built-in agenda templates.
func (c *BuiltinCatalog) Templates() []*models.AgendaTemplate {
	return c.templates
}

func builtinStandardItems() []*models.StandardAgendaItem {
	allTypes := []models.MeetingType{
		models.MeetingTypeOrdinary,
		models.MeetingTypeStatutory,
		models.MeetingTypeAnnual,
		models.MeetingTypeExtra,
	}

	return []*models.StandardAgendaItem{
		{
			ID:                "opening",
			Title:             models.LocalizedText{EN: "Opening of the Meeting", SV: "Mötets öppnande"},
			Type:              models.ItemTypeFormality,
			Category:          models.CategoryFormality,
			EstimatedDuration: 5,
			IsRequired:        true,
			RequiredFor:       allTypes,
			SortOrder:         1,
		},
		{
			ID:                "election-of-chair",
			Title:             models.LocalizedText{EN: "Election of Meeting Chair", SV: "Val av mötesordförande"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryFormality,
			EstimatedDuration: 5,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeStatutory},
			SortOrder:         2,
		},
		{
			ID:                "approval-of-agenda",
			Title:             models.LocalizedText{EN: "Approval of the Agenda", SV: "Godkännande av dagordning"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryFormality,
			EstimatedDuration: 5,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeOrdinary, models.MeetingTypeStatutory, models.MeetingTypeAnnual},
			SortOrder:         3,
		},
		{
			ID:                "previous-minutes",
			Title:             models.LocalizedText{EN: "Approval of Previous Minutes", SV: "Föregående protokoll"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryFormality,
			EstimatedDuration: 10,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeOrdinary},
			SortOrder:         4,
		},
		{
			ID:                "financial-report",
			Title:             models.LocalizedText{EN: "Financial Report", SV: "Ekonomisk rapport"},
			Type:              models.ItemTypeInformation,
			Category:          models.CategoryFinancial,
			EstimatedDuration: 20,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeOrdinary, models.MeetingTypeAnnual},
			SortOrder:         10,
		},
		{
			ID:                "budget-approval",
			Title:             models.LocalizedText{EN: "Budget Approval", SV: "Budgetgodkännande"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryFinancial,
			EstimatedDuration: 30,
			IsRequired:        false,
			SortOrder:         11,
		},
		{
			ID:                "annual-report",
			Title:             models.LocalizedText{EN: "Annual Report", SV: "Årsredovisning"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryFinancial,
			EstimatedDuration: 30,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeAnnual},
			SortOrder:         12,
		},
		{
			ID:                "auditor-report",
			Title:             models.LocalizedText{EN: "Auditor's Report", SV: "Revisionsberättelse"},
			Type:              models.ItemTypeInformation,
			Category:          models.CategoryGovernance,
			EstimatedDuration: 15,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeAnnual},
			SortOrder:         13,
		},
		{
			ID:                "election-of-officers",
			Title:             models.LocalizedText{EN: "Election of Officers", SV: "Val av styrelse"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryGovernance,
			EstimatedDuration: 20,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeStatutory, models.MeetingTypeAnnual},
			SortOrder:         20,
		},
		{
			ID:                "signatory-rights",
			Title:             models.LocalizedText{EN: "Signatory Rights", SV: "Firmateckning"},
			Type:              models.ItemTypeDecision,
			Category:          models.CategoryGovernance,
			EstimatedDuration: 10,
			IsRequired:        true,
			RequiredFor:       []models.MeetingType{models.MeetingTypeStatutory},
			SortOrder:         21,
		},
		{
			ID:                "strategy-review",
			Title:             models.LocalizedText{EN: "Strategy Review", SV: "Strategigenomgång"},
			Type:              models.ItemTypeDiscussion,
			Category:          models.CategoryStrategic,
			EstimatedDuration: 45,
			IsRequired:        false,
			SortOrder:         30,
		},
		{
			ID:                "ceo-report",
			Title:             models.LocalizedText{EN: "CEO Report", SV: "VD-rapport"},
			Type:              models.ItemTypeInformation,
			Category:          models.CategoryOperational,
			EstimatedDuration: 20,
			IsRequired:        false,
			SortOrder:         40,
		},
		{
			ID:                "other-business",
			Title:             models.LocalizedText{EN: "Other Business", SV: "Övriga frågor"},
			Type:              models.ItemTypeDiscussion,
			Category:          models.CategoryCustom,
			EstimatedDuration: 10,
			IsRequired:        false,
			SortOrder:         90,
		},
		{
			ID:                "closing",
			Title:             models.LocalizedText{EN: "Closing of the Meeting", SV: "Mötets avslutande"},
			Type:              models.ItemTypeFormality,
			Category:          models.CategoryFormality,
			EstimatedDuration: 5,
			IsRequired:        true,
			RequiredFor:       allTypes,
			SortOrder:         99,
		},
	}
}

func builtinTemplates() []*models.AgendaTemplate {
	return []*models.AgendaTemplate{
		{
			UID:         "ordinary-board-meeting",
			Name:        models.LocalizedText{EN: "Ordinary Board Meeting", SV: "Ordinarie styrelsemöte"},
			Description: models.LocalizedText{EN: "Standard agenda for a recurring board meeting", SV: "Standarddagordning för ordinarie styrelsemöte"},
			MeetingType: models.MeetingTypeOrdinary,
			ItemIDs: []string{
				"opening",
				"approval-of-agenda",
				"previous-minutes",
				"financial-report",
				"ceo-report",
				"other-business",
				"closing",
			},
			DefaultDuration: 90,
			DefaultQuorum:   3,
		},
		{
			UID:         "statutory-meeting",
			Name:        models.LocalizedText{EN: "Statutory Meeting", SV: "Konstituerande möte"},
			Description: models.LocalizedText{EN: "Agenda for the board's constituting meeting", SV: "Dagordning för konstituerande styrelsemöte"},
			MeetingType: models.MeetingTypeStatutory,
			ItemIDs: []string{
				"opening",
				"election-of-chair",
				"approval-of-agenda",
				"election-of-officers",
				"signatory-rights",
				"closing",
			},
			DefaultDuration: 60,
			DefaultQuorum:   3,
		},
		{
			UID:         "annual-general-meeting",
			Name:        models.LocalizedText{EN: "Annual General Meeting", SV: "Årsstämma"},
			Description: models.LocalizedText{EN: "Agenda for the annual general meeting", SV: "Dagordning för årsstämma"},
			MeetingType: models.MeetingTypeAnnual,
			ItemIDs: []string{
				"opening",
				"approval-of-agenda",
				"financial-report",
				"annual-report",
				"auditor-report",
				"election-of-officers",
				"closing",
			},
			DefaultDuration: 120,
			DefaultQuorum:   3,
		},
	}
}
