// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package models

// ConflictDeclaration is a member's declared external interest. Declarations
// are supplied by the member registry; the engine only reads them.
type ConflictDeclaration struct {
	EntityName   string `json:"entity_name"`
	EntityType   string `json:"entity_type,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	IsActive     bool   `json:"is_active"`
}
