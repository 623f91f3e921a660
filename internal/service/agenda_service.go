// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/pkg/constants"
)

// AgendaService expands templates into meeting-scoped agendas and runs the
// advisory completeness and suggestion checks.
type AgendaService struct {
	CatalogService *CatalogService
}

// NewAgendaService creates a new AgendaService.
func NewAgendaService(catalogService *CatalogService) *AgendaService {
	return &AgendaService{
		CatalogService: catalogService,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AgendaService) ServiceReady() bool {
	return s.CatalogService != nil && s.CatalogService.ServiceReady()
}

// ExpandTemplate expands an agenda template into an ordered list of
// meeting-scoped agenda items. An unknown template yields an empty list, not
// an error: templates are advisory, and a missing one must degrade
// gracefully rather than fail meeting creation.
func (s *AgendaService) ExpandTemplate(ctx context.Context, tenantUID, templateUID, locale string) []models.AgendaItem {
	if s.CatalogService == nil {
		return []models.AgendaItem{}
	}

	template, ok := s.CatalogService.GetTemplate(ctx, tenantUID, templateUID)
	if !ok {
		slog.WarnContext(ctx, "agenda template not found, expanding to empty agenda", "template_uid", templateUID)
		return []models.AgendaItem{}
	}

	items := make([]models.AgendaItem, 0, len(template.ItemIDs))
	for _, itemID := range template.ItemIDs {
		standard, ok := s.CatalogService.GetStandardItem(itemID)
		if !ok {
			slog.WarnContext(ctx, "template references unknown standard item, skipping", "item_id", itemID, "template_uid", templateUID)
			continue
		}

		// OrderIndex is assigned over the resolved items so the agenda
		// indices stay contiguous even when a reference is skipped.
		items = append(items, models.AgendaItem{
			UID:               uuid.New().String(),
			OrderIndex:        len(items),
			Title:             standard.Title.Get(locale),
			Type:              standard.Type,
			EstimatedDuration: standard.EstimatedDuration,
			IsConfidential:    false,
			IsCompleted:       false,
		})
	}

	slog.DebugContext(ctx, "expanded agenda template", "template_uid", templateUID, "item_count", len(items))

	return items
}

// TotalDuration sums the estimated durations of all items, in minutes.
func (s *AgendaService) TotalDuration(items []models.AgendaItem) int {
	total := 0
	for _, item := range items {
		total += item.EstimatedDuration
	}
	return total
}

// ItemStartTimes computes each item's scheduled start as the cumulative sum
// of prior durations from the meeting's scheduled start. Items are taken in
// OrderIndex order.
func (s *AgendaService) ItemStartTimes(scheduledStart time.Time, items []models.AgendaItem) []time.Time {
	ordered := sortedByOrderIndex(items)

	starts := make([]time.Time, len(ordered))
	offset := 0
	for i, item := range ordered {
		starts[i] = scheduledStart.Add(time.Duration(offset) * time.Minute)
		offset += item.EstimatedDuration
	}
	return starts
}

// ValidateAgendaItems runs structural validation on a candidate agenda:
// positive durations and contiguous zero-based order indices. Reported with
// the offending field, rejected before any mutation.
func (s *AgendaService) ValidateAgendaItems(items []models.AgendaItem) error {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if item.EstimatedDuration <= 0 {
			return domain.NewValidationError(fmt.Sprintf("estimated_duration must be positive on item %q", item.UID))
		}
		if item.OrderIndex < 0 || item.OrderIndex >= len(items) {
			return domain.NewValidationError(fmt.Sprintf("order_index %d out of range on item %q", item.OrderIndex, item.UID))
		}
		if seen[item.OrderIndex] {
			return domain.NewValidationError(fmt.Sprintf("order_index %d duplicated on item %q", item.OrderIndex, item.UID))
		}
		seen[item.OrderIndex] = true
	}
	return nil
}

// ValidateCompleteness checks whether every required-for-type standard
// item's title appears among the candidate items (case-insensitive,
// locale-matched). Advisory: missing ids are returned for UI remediation,
// creation is never blocked.
func (s *AgendaService) ValidateCompleteness(items []models.AgendaItem, meetingType models.MeetingType, locale string) models.CompletenessResult {
	required := s.CatalogService.RequiredItemsFor(meetingType)

	var missing []string
	for _, req := range required {
		title := req.Title.Get(locale)
		found := false
		for _, item := range items {
			if strings.EqualFold(item.Title, title) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req.ID)
		}
	}

	return models.CompletenessResult{
		IsValid:        len(missing) == 0,
		MissingItemIDs: missing,
	}
}

// SuggestAdditions ranks catalog items not already on the agenda:
// required-for-type items first in catalog sort order, then the remaining
// items by category order then sort order. Capped at MaxSuggestedItems.
func (s *AgendaService) SuggestAdditions(items []models.AgendaItem, meetingType models.MeetingType) []*models.StandardAgendaItem {
	if s.CatalogService == nil || s.CatalogService.Catalog == nil {
		return nil
	}

	present := func(candidate *models.StandardAgendaItem) bool {
		for _, item := range items {
			if candidate.Title.Matches(item.Title) {
				return true
			}
		}
		return false
	}

	var required, rest []*models.StandardAgendaItem
	for _, candidate := range s.CatalogService.Catalog.StandardItems() {
		if present(candidate) {
			continue
		}
		if candidate.RequiredForType(meetingType) {
			required = append(required, candidate)
		} else {
			rest = append(rest, candidate)
		}
	}

	sortStandardItems(required)
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Category.Order() != rest[j].Category.Order() {
			return rest[i].Category.Order() < rest[j].Category.Order()
		}
		if rest[i].SortOrder != rest[j].SortOrder {
			return rest[i].SortOrder < rest[j].SortOrder
		}
		return rest[i].ID < rest[j].ID
	})

	suggestions := append(required, rest...)
	if len(suggestions) > constants.MaxSuggestedItems {
		suggestions = suggestions[:constants.MaxSuggestedItems]
	}
	return suggestions
}

func sortedByOrderIndex(items []models.AgendaItem) []models.AgendaItem {
	ordered := make([]models.AgendaItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})
	return ordered
}
