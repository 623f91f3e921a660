// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

import "time"

// AgendaTemplate is a named, ordered list of standard agenda item references
// used to seed a meeting's agenda.
type AgendaTemplate struct {
	UID             string        `json:"uid"`
	Name            LocalizedText `json:"name"`
	Description     LocalizedText `json:"description,omitempty"`
	MeetingType     MeetingType   `json:"meeting_type"`
	ItemIDs         []string      `json:"item_ids"`
	DefaultDuration int           `json:"default_duration"`
	DefaultQuorum   int           `json:"default_quorum"`
}

// CustomAgendaTemplate is a tenant-owned template. Unlike the built-in
// catalog these are mutable and stored per tenant.
type CustomAgendaTemplate struct {
	AgendaTemplate

	TenantUID string     `json:"tenant_uid"`
	AuthorUID string     `json:"author_uid"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Tags generates a set of tags for the custom template used by downstream
// indexing.
func (t *CustomAgendaTemplate) Tags() []string {
	var tags []string
	if t.UID != "" {
		tags = append(tags, t.UID, "agenda_template_uid:"+t.UID)
	}
	if t.TenantUID != "" {
		tags = append(tags, "tenant_uid:"+t.TenantUID)
	}
	if t.Name.EN != "" {
		tags = append(tags, t.Name.EN)
	}
	return tags
}
