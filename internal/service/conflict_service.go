// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/boardsuite/board-governance-service/internal/domain/models"
)

// ConflictService detects conflicts of interest (jäv) between agenda item
// keywords and member conflict declarations, and derives the recusal sets.
// Recusals are always recomputed from scratch; they are never hand-edited.
type ConflictService struct{}

// NewConflictService creates a new ConflictService.
func NewConflictService() *ConflictService {
	return &ConflictService{}
}

// ServiceReady checks if the service is ready for use.
func (s *ConflictService) ServiceReady() bool {
	return true
}

// ResolveConflicts recomputes RecusedMemberIDs for every item from the
// given declarations. The input slice is not mutated; updated copies are
// returned. Running it twice on the same inputs yields identical results.
func (s *ConflictService) ResolveConflicts(ctx context.Context, items []models.AgendaItem, declarations map[string][]models.ConflictDeclaration) []models.AgendaItem {
	resolved := make([]models.AgendaItem, len(items))
	copy(resolved, items)

	for i := range resolved {
		resolved[i].RecusedMemberIDs = s.recusedMembers(resolved[i], declarations)
	}

	slog.DebugContext(ctx, "resolved conflicts of interest", "item_count", len(resolved), "member_count", len(declarations))

	return resolved
}

// IsRecused reports whether the member would be recused from the item given
// their declarations.
func (s *ConflictService) IsRecused(item models.AgendaItem, declarations []models.ConflictDeclaration) bool {
	for _, keyword := range item.ConflictKeywords {
		for _, declaration := range declarations {
			if !declaration.IsActive {
				continue
			}
			if keywordMatchesEntity(keyword, declaration.EntityName) {
				return true
			}
		}
	}
	return false
}

func (s *ConflictService) recusedMembers(item models.AgendaItem, declarations map[string][]models.ConflictDeclaration) []string {
	if len(item.ConflictKeywords) == 0 {
		return nil
	}

	var recused []string
	for memberID, memberDeclarations := range declarations {
		if s.IsRecused(item, memberDeclarations) {
			recused = append(recused, memberID)
		}
	}

	// Sorted so resolution is deterministic and idempotent.
	sort.Strings(recused)

	return recused
}

// keywordMatchesEntity reports a conflict between a keyword and an entity
// name. The match is symmetric substring containment, case-insensitive:
// keywords may be abbreviations of the full entity name or the reverse.
func keywordMatchesEntity(keyword, entityName string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	e := strings.ToLower(strings.TrimSpace(entityName))
	if k == "" || e == "" {
		return false
	}
	return strings.Contains(e, k) || strings.Contains(k, e)
}
