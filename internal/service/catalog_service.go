// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/internal/logging"
	"github.com/boardsuite/board-governance-service/pkg/constants"
	"github.com/boardsuite/board-governance-service/pkg/utils"
)

// CatalogService serves standard agenda item and template lookups. The
// built-in catalog is injected and immutable; tenant-custom templates live
// in their own repository and are merged at lookup time.
type CatalogService struct {
	Catalog            domain.Catalog
	TemplateRepository domain.TemplateRepository
	MessageBuilder     domain.MessageBuilder
	Config             ServiceConfig
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	catalog domain.Catalog,
	templateRepository domain.TemplateRepository,
	messageBuilder domain.MessageBuilder,
	config ServiceConfig,
) *CatalogService {
	return &CatalogService{
		Catalog:            catalog,
		TemplateRepository: templateRepository,
		MessageBuilder:     messageBuilder,
		Config:             config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *CatalogService) ServiceReady() bool {
	return s.Catalog != nil &&
		s.TemplateRepository != nil &&
		s.MessageBuilder != nil
}

// GetStandardItem looks up a standard agenda item by id. Absence is a
// boolean, never an error.
func (s *CatalogService) GetStandardItem(id string) (*models.StandardAgendaItem, bool) {
	if s.Catalog == nil {
		return nil, false
	}
	return s.Catalog.StandardItem(id)
}

// ListItemsByCategory returns the standard items of a category sorted by
// SortOrder ascending, ties broken by id for determinism.
func (s *CatalogService) ListItemsByCategory(category models.ItemCategory) []*models.StandardAgendaItem {
	if s.Catalog == nil {
		return nil
	}

	var items []*models.StandardAgendaItem
	for _, item := range s.Catalog.StandardItems() {
		if item.Category == category {
			items = append(items, item)
		}
	}

	sortStandardItems(items)

	return items
}

// RequiredItemsFor returns the standard items mandatory for the meeting
// type, always including the opening and closing formality bookends.
func (s *CatalogService) RequiredItemsFor(meetingType models.MeetingType) []*models.StandardAgendaItem {
	if s.Catalog == nil {
		return nil
	}

	var items []*models.StandardAgendaItem
	for _, item := range s.Catalog.StandardItems() {
		if item.RequiredForType(meetingType) || item.ID == constants.OpeningItemID || item.ID == constants.ClosingItemID {
			items = append(items, item)
		}
	}

	sortStandardItems(items)

	return items
}

// GetTemplate looks up an agenda template by uid: built-in templates first,
// then the tenant's custom templates. Unknown ids return false, never an
// error - templates are conveniences, not required inputs.
func (s *CatalogService) GetTemplate(ctx context.Context, tenantUID, templateUID string) (*models.AgendaTemplate, bool) {
	if s.Catalog == nil {
		return nil, false
	}

	if template, ok := s.Catalog.Template(templateUID); ok {
		return template, true
	}

	if s.TemplateRepository == nil || tenantUID == "" {
		return nil, false
	}

	custom, err := s.TemplateRepository.Get(ctx, tenantUID, templateUID)
	if err != nil {
		if !errors.Is(err, domain.ErrTemplateNotFound) {
			slog.ErrorContext(ctx, "error getting custom template from store", logging.ErrKey, err, "template_uid", templateUID)
		}
		return nil, false
	}

	return &custom.AgendaTemplate, true
}

// SaveCustomTemplate stores a tenant-owned template and indexes it.
func (s *CatalogService) SaveCustomTemplate(ctx context.Context, template *models.CustomAgendaTemplate) (*models.CustomAgendaTemplate, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.ErrServiceUnavailable
	}

	if template == nil || template.TenantUID == "" {
		return nil, domain.NewValidationError("tenant_uid is required")
	}
	if template.Name.EN == "" && template.Name.SV == "" {
		return nil, domain.NewValidationError("name must have at least one localization")
	}
	for _, itemID := range template.ItemIDs {
		if _, ok := s.Catalog.StandardItem(itemID); !ok {
			return nil, domain.NewValidationError("item_ids references unknown standard item " + itemID)
		}
	}

	action := models.ActionUpdated
	if template.UID == "" {
		template.UID = uuid.New().String()
		template.CreatedAt = utils.TimePtr(time.Now().UTC())
		action = models.ActionCreated
	}
	template.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.TemplateRepository.Save(ctx, template); err != nil {
		slog.ErrorContext(ctx, "error saving custom template", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	if err := s.MessageBuilder.SendIndexAgendaTemplate(ctx, action, *template); err != nil {
		slog.ErrorContext(ctx, "error sending custom template index message", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	slog.DebugContext(ctx, "saved custom template", "template_uid", template.UID)

	return template, nil
}

// ListCustomTemplates returns the tenant's custom templates.
func (s *CatalogService) ListCustomTemplates(ctx context.Context, tenantUID string) ([]*models.CustomAgendaTemplate, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.ErrServiceUnavailable
	}

	return s.TemplateRepository.ListByTenant(ctx, tenantUID)
}

func sortStandardItems(items []*models.StandardAgendaItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].ID < items[j].ID
	})
}
