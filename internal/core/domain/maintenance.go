package domain

import "time"

// MaintenanceStatus represents the handling state of a maintenance request.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// Valid reports whether s is one of the known maintenance statuses.
func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted:
		return true
	}
	return false
}

// MaintenanceRequest is a tenant-reported issue against an apartment.
type MaintenanceRequest struct {
	ID          int               `json:"id"`
	ApartmentID int               `json:"apartment_id"`
	TenantID    int               `json:"tenant_id"`
	Description string            `json:"description"`
	RequestDate time.Time         `json:"request_date"`
	Status      MaintenanceStatus `json:"status"`
}

// MaintenanceEvent is the audit record emitted whenever a request is
// created or changes status. Processed asynchronously by the dispatcher.
type MaintenanceEvent struct {
	RequestID   int               `json:"request_id"`
	ApartmentID int               `json:"apartment_id"`
	Status      MaintenanceStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Source      string            `json:"source"`
}
