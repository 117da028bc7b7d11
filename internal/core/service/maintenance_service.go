package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// MaintenanceService implements maintenance request management. Every create
// and status change emits an event to the sink for asynchronous processing
// (audit trail, notification counters).
type MaintenanceService struct {
	repo       ports.MaintenanceRepository
	apartments ports.ApartmentRepository
	tenants    ports.TenantRepository
	events     ports.EventSink
	logger     zerolog.Logger
}

func NewMaintenanceService(repo ports.MaintenanceRepository, apartments ports.ApartmentRepository, tenants ports.TenantRepository, events ports.EventSink, logger zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{repo: repo, apartments: apartments, tenants: tenants, events: events, logger: logger}
}

func (s *MaintenanceService) Create(ctx context.Context, input ports.MaintenanceInput) (*domain.MaintenanceRequest, error) {
	if _, err := s.apartments.FindByID(ctx, input.ApartmentID); err != nil {
		return nil, domain.ErrApartmentNotFound
	}
	if _, err := s.tenants.FindByID(ctx, input.TenantID); err != nil {
		return nil, domain.ErrTenantNotFound
	}

	status := input.Status
	if status == "" {
		status = domain.MaintenancePending
	}

	request := &domain.MaintenanceRequest{
		ApartmentID: input.ApartmentID,
		TenantID:    input.TenantID,
		Description: input.Description,
		RequestDate: input.RequestDate,
		Status:      status,
	}
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	s.emit(created, "request_created")
	return created, nil
}

func (s *MaintenanceService) Get(ctx context.Context, id int) (*domain.MaintenanceRequest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MaintenanceService) List(ctx context.Context, skip, limit int) ([]*domain.MaintenanceRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *MaintenanceService) Update(ctx context.Context, id int, input ports.MaintenanceInput) (*domain.MaintenanceRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	statusChanged := input.Status != "" && input.Status != request.Status

	request.ApartmentID = input.ApartmentID
	request.TenantID = input.TenantID
	request.Description = input.Description
	request.RequestDate = input.RequestDate
	if input.Status != "" {
		request.Status = input.Status
	}

	updated, err := s.repo.Update(ctx, request)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.emit(updated, "status_changed")
	}
	return updated, nil
}

func (s *MaintenanceService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *MaintenanceService) emit(m *domain.MaintenanceRequest, source string) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(ports.MaintenanceEventInput{
		RequestID:   m.ID,
		ApartmentID: m.ApartmentID,
		Status:      string(m.Status),
		Timestamp:   time.Now().UTC(),
		Source:      source,
	})
}
