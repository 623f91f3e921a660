// Copyright The BoardSuite Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/attribute"

	"github.com/boardsuite/board-governance-service/internal/domain"
	"github.com/boardsuite/board-governance-service/internal/domain/models"
	"github.com/boardsuite/board-governance-service/internal/logging"
)

// NatsMeetingRepository is the NATS KV store repository for the meeting
// aggregate. The KV revision doubles as the optimistic-concurrency token
// providing the per-meeting mutual-exclusion scope for lifecycle
// transitions.
type NatsMeetingRepository struct {
	Meetings INatsKeyValue
}

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings.
func NewNatsMeetingRepository(meetings INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		Meetings: meetings,
	}
}

func (s *NatsMeetingRepository) get(ctx context.Context, meetingUID string) (jetstream.KeyValueEntry, error) {
	if s.Meetings == nil {
		return nil, domain.ErrServiceUnavailable
	}

	ctx, span := startKVSpan(ctx, "get", "meeting", meetingUID)
	entry, err := s.Meetings.Get(ctx, meetingUID)
	endKVSpan(span, err)

	return entry, err
}

func (s *NatsMeetingRepository) unmarshal(ctx context.Context, entry jetstream.KeyValueEntry) (*models.Meeting, error) {
	var meeting models.Meeting
	err := json.Unmarshal(entry.Value(), &meeting)
	if err != nil {
		slog.ErrorContext(ctx, "error unmarshaling meeting", logging.ErrKey, err)
		return nil, domain.ErrUnmarshal
	}

	return &meeting, nil
}

func (s *NatsMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	meeting, _, err := s.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	return meeting, nil
}

func (s *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	entry, err := s.get(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			slog.WarnContext(ctx, "meeting not found", logging.ErrKey, domain.ErrMeetingNotFound)
			return nil, 0, domain.ErrMeetingNotFound
		}
		slog.ErrorContext(ctx, "error getting meeting from NATS KV", logging.ErrKey, err)
		return nil, 0, err
	}

	meeting, err := s.unmarshal(ctx, entry)
	if err != nil {
		return nil, 0, err
	}

	return meeting, entry.Revision(), nil
}

func (s *NatsMeetingRepository) Exists(ctx context.Context, meetingUID string) (bool, error) {
	_, err := s.get(ctx, meetingUID)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *NatsMeetingRepository) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	if s.Meetings == nil {
		return nil, domain.ErrServiceUnavailable
	}

	ctx, span := startKVSpan(ctx, "keys", "meeting", "")
	keysLister, err := s.Meetings.ListKeys(ctx)
	endKVSpan(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "error listing meeting keys from NATS KV store", logging.ErrKey, err)
		return nil, domain.ErrInternal
	}

	meetings := []*models.Meeting{}
	for key := range keysLister.Keys() {
		entry, err := s.get(ctx, key)
		if err != nil {
			slog.ErrorContext(ctx, "error getting meeting from NATS KV store", logging.ErrKey, err, "meeting_uid", key)
			return nil, domain.ErrInternal
		}

		meeting, err := s.unmarshal(ctx, entry)
		if err != nil {
			slog.ErrorContext(ctx, "error unmarshalling meeting from NATS KV store", logging.ErrKey, err, "meeting_uid", key)
			return nil, domain.ErrUnmarshal
		}

		meetings = append(meetings, meeting)
	}

	return meetings, nil
}

func (s *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if s.Meetings == nil {
		return domain.ErrServiceUnavailable
	}

	jsonData, err := json.Marshal(meeting)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling meeting", logging.ErrKey, err)
		return domain.ErrInternal
	}

	ctx, span := startKVSpan(ctx, "put", "meeting", meeting.UID)
	_, err = s.Meetings.Put(ctx, meeting.UID, jsonData)
	endKVSpan(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "error putting meeting into NATS KV store", logging.ErrKey, err)
		return domain.ErrInternal
	}

	return nil
}

func (s *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	if s.Meetings == nil {
		return domain.ErrServiceUnavailable
	}

	jsonData, err := json.Marshal(meeting)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling meeting", logging.ErrKey, err)
		return domain.ErrInternal
	}

	ctx, span := startKVSpan(ctx, "update", "meeting", meeting.UID,
		attribute.Int64("db.nats.revision", int64(revision)))
	_, err = s.Meetings.Update(ctx, meeting.UID, jsonData, revision)
	endKVSpan(span, err)
	if err != nil {
		if strings.Contains(err.Error(), "wrong last sequence") {
			slog.WarnContext(ctx, "revision mismatch", logging.ErrKey, err)
			return domain.ErrRevisionMismatch
		}
		slog.ErrorContext(ctx, "error updating meeting in NATS KV store", logging.ErrKey, err)
		return domain.ErrInternal
	}

	return nil
}

func (s *NatsMeetingRepository) Delete(ctx context.Context, meetingUID string, revision uint64) error {
	if s.Meetings == nil {
		return domain.ErrServiceUnavailable
	}

	ctx, span := startKVSpan(ctx, "delete", "meeting", meetingUID,
		attribute.Int64("db.nats.revision", int64(revision)))
	err := s.Meetings.Delete(ctx, meetingUID, jetstream.LastRevision(revision))
	endKVSpan(span, err)
	if err != nil {
		if strings.Contains(err.Error(), "wrong last sequence") {
			slog.WarnContext(ctx, "revision mismatch", logging.ErrKey, err)
			return domain.ErrRevisionMismatch
		}
		slog.ErrorContext(ctx, "error deleting meeting from NATS KV store", logging.ErrKey, err)
		return domain.ErrInternal
	}

	return nil
}
