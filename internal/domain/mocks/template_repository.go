// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boardsuite/board-governance-service/internal/domain/models"
)

// MockTemplateRepository implements TemplateRepository for testing
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Get(ctx context.Context, tenantUID, templateUID string) (*models.CustomAgendaTemplate, error) {
	args := m.Called(ctx, tenantUID, templateUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomAgendaTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *models.CustomAgendaTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) ListByTenant(ctx context.Context, tenantUID string) ([]*models.CustomAgendaTemplate, error) {
	args := m.Called(ctx, tenantUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CustomAgendaTemplate), args.Error(1)
}
