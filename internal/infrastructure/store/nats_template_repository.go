// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/internal/logging"
)

// NatsTemplateRepository is the NATS KV store repository for tenant-custom
// agenda templates. Keys are scoped by tenant so one tenant's templates can
// be listed with a prefix scan.
type NatsTemplateRepository struct {
	Templates INatsKeyValue
}

// NewNatsTemplateRepository creates a new NATS KV store repository for
// custom agenda templates.
func NewNatsTemplateRepository(templates INatsKeyValue) *NatsTemplateRepository {
	return &NatsTemplateRepository{
		Templates: templates,
	}
}

func templateKey(tenantUID, templateUID string) string {
	return fmt.Sprintf("%s.%s", tenantUID, templateUID)
}

func (s *NatsTemplateRepository) get(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	ctx, span := startKVSpan(ctx, "get", "agenda-template", key)
	entry, err := s.Templates.Get(ctx, key)
	endKVSpan(span, err)

	return entry, err
}

func (s *NatsTemplateRepository) Get(ctx context.Context, tenantUID, templateUID string) (*models.CustomAgendaTemplate, error) {
	if s.Templates == nil {
		return nil, domain.ErrServiceUnavailable
	}

	entry, err := s.get(ctx, templateKey(tenantUID, templateUID))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, domain.ErrTemplateNotFound
		}
		slog.ErrorContext(ctx, "error getting custom template from NATS KV", logging.ErrKey, err)
		return nil, err
	}

	var template models.CustomAgendaTemplate
	if err := json.Unmarshal(entry.Value(), &template); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling custom template", logging.ErrKey, err)
		return nil, domain.ErrUnmarshal
	}

	return &template, nil
}

func (s *NatsTemplateRepository) Save(ctx context.Context, template *models.CustomAgendaTemplate) error {
	if s.Templates == nil {
		return domain.ErrServiceUnavailable
	}

	jsonData, err := json.Marshal(template)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling custom template", logging.ErrKey, err)
		return domain.ErrInternal
	}

	ctx, span := startKVSpan(ctx, "put", "agenda-template", templateKey(template.TenantUID, template.UID))
	_, err = s.Templates.Put(ctx, templateKey(template.TenantUID, template.UID), jsonData)
	endKVSpan(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "error putting custom template into NATS KV store", logging.ErrKey, err)
		return domain.ErrInternal
	}

	return nil
}

func (s *NatsTemplateRepository) ListByTenant(ctx context.Context, tenantUID string) ([]*models.CustomAgendaTemplate, error) {
	if s.Templates == nil {
		return nil, domain.ErrServiceUnavailable
	}

	ctx, span := startKVSpan(ctx, "keys", "agenda-template", "")
	keysLister, err := s.Templates.ListKeys(ctx)
	endKVSpan(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "error listing custom template keys from NATS KV store", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	prefix := tenantUID + "."
	templates := []*models.CustomAgendaTemplate{}
	for key := range keysLister.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}

		entry, err := s.get(ctx, key)
		if err != nil {
			slog.ErrorContext(ctx, "error getting custom template from NATS KV store", logging.ErrKey, err, "template_key", key)
			return nil, domain.ErrInternal
		}

		var template models.CustomAgendaTemplate
		if err := json.Unmarshal(entry.Value(), &template); err != nil {
			slog.ErrorContext(ctx, "error unmarshalling custom template from NATS KV store", logging.ErrKey, err, "template_key", key)
			return nil, domain.ErrUnmarshal
		}

		templates = append(templates, &template)
	}

	return templates, nil
}
