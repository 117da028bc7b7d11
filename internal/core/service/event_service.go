package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/api/metrics"
	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, requestID int, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, requestID int, status string, ts time.Time) error
}

type eventService struct {
	repo  ports.MaintenanceRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewEventService returns the EventService that records maintenance events
// in the audit trail. Duplicate deliveries are silently skipped.
func NewEventService(repo ports.MaintenanceRepository, dedup DedupChecker, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, dedup: dedup, log: log}
}

func (s *eventService) Process(ctx context.Context, in ports.MaintenanceEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.RequestID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Int("request_id", in.RequestID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Int("request_id", in.RequestID).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}
	metrics.EventsDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so redelivery during a slow insert stays a no-op.
	if markErr := s.dedup.Mark(ctx, in.RequestID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Int("request_id", in.RequestID).Msg("failed to set dedup key")
	}

	event := &domain.MaintenanceEvent{
		RequestID:   in.RequestID,
		ApartmentID: in.ApartmentID,
		Status:      domain.MaintenanceStatus(in.Status),
		Timestamp:   in.Timestamp,
		Source:      in.Source,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	metrics.EventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	s.log.Info().
		Int("request_id", in.RequestID).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("maintenance event recorded")

	return nil
}
