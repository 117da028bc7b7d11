package ports

import (
	"context"
	"time"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// MaintenanceRepository defines persistence operations for maintenance
// requests and their event audit trail.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
	FindByID(ctx context.Context, id int) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, skip, limit int) ([]*domain.MaintenanceRequest, error)
	Update(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error)
	Delete(ctx context.Context, id int) error
	InsertEvent(ctx context.Context, e *domain.MaintenanceEvent) error
}

// MaintenanceInput carries all data needed to create or replace a request.
type MaintenanceInput struct {
	ApartmentID int
	TenantID    int
	Description string
	RequestDate time.Time
	Status      domain.MaintenanceStatus
}

// MaintenanceService defines use-case operations for maintenance requests.
type MaintenanceService interface {
	Create(ctx context.Context, input MaintenanceInput) (*domain.MaintenanceRequest, error)
	Get(ctx context.Context, id int) (*domain.MaintenanceRequest, error)
	List(ctx context.Context, skip, limit int) ([]*domain.MaintenanceRequest, error)
	Update(ctx context.Context, id int, input MaintenanceInput) (*domain.MaintenanceRequest, error)
	Delete(ctx context.Context, id int) error
}

// MaintenanceEventInput is one status-change event handed to the dispatcher.
type MaintenanceEventInput struct {
	RequestID   int
	ApartmentID int
	Status      string
	Timestamp   time.Time
	Source      string
}

// EventService processes maintenance events off the request path.
type EventService interface {
	Process(ctx context.Context, in MaintenanceEventInput) error
}

// EventSink accepts events for asynchronous processing. Implemented by the
// queue dispatcher; services depend on this instead of the dispatcher type.
type EventSink interface {
	Enqueue(e MaintenanceEventInput)
}
