package domain

import "time"

// RentalStatus represents the lifecycle state of a rental agreement.
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalEnded     RentalStatus = "ended"
	RentalCancelled RentalStatus = "cancelled"
)

// Valid reports whether s is one of the known rental statuses.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalActive, RentalEnded, RentalCancelled:
		return true
	}
	return false
}

// Rental links an apartment to a tenant over a date range.
type Rental struct {
	ID          int          `json:"id"`
	ApartmentID int          `json:"apartment_id"`
	TenantID    int          `json:"tenant_id"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	Status      RentalStatus `json:"status"`
	TotalAmount float64      `json:"total_amount"`
	CreatedAt   time.Time    `json:"created_at"`
}
