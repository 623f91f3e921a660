// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/boardsuite/board-governance-service/internal/domain/models"
)

// MeetingRepository defines the interface for meeting aggregate storage.
// GetWithRevision/Update pair up to form the per-meeting read-modify-write
// scope: at most one transition can win per revision.
// This interface can be implemented by different storage backends (NATS, PostgreSQL, etc.)
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Exists(ctx context.Context, meetingUID string) (bool, error)
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error
	Delete(ctx context.Context, meetingUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Meeting, error)
}

// TemplateRepository defines the interface for tenant-custom agenda
// template storage. Built-in templates live in the immutable Catalog.
type TemplateRepository interface {
	Get(ctx context.Context, tenantUID, templateUID string) (*models.CustomAgendaTemplate, error)
	Save(ctx context.Context, template *models.CustomAgendaTemplate) error
	ListByTenant(ctx context.Context, tenantUID string) ([]*models.CustomAgendaTemplate, error)
}

// Catalog is the injected, immutable library of standard agenda items and
// built-in templates. Reads are side-effect-free and safe for concurrent use.
type Catalog interface {
	StandardItem(id string) (*models.StandardAgendaItem, bool)
	StandardItems() []*models.StandardAgendaItem
	Template(uid string) (*models.AgendaTemplate, bool)
	Templates() []*models.AgendaTemplate
}
