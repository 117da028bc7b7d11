package domain

import "time"

// ApartmentStatus represents the occupancy state of an apartment.
type ApartmentStatus string

const (
	ApartmentAvailable   ApartmentStatus = "available"
	ApartmentRented      ApartmentStatus = "rented"
	ApartmentMaintenance ApartmentStatus = "maintenance"
)

// Valid reports whether s is one of the known apartment statuses.
func (s ApartmentStatus) Valid() bool {
	switch s {
	case ApartmentAvailable, ApartmentRented, ApartmentMaintenance:
		return true
	}
	return false
}

// LandlordRef is the owner summary embedded in apartment reads.
type LandlordRef struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Apartment is a rentable unit owned by a landlord user.
type Apartment struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	RentPrice   float64         `json:"rent_price"`
	Description string          `json:"description,omitempty"`
	Status      ApartmentStatus `json:"status"`
	LandlordID  int             `json:"landlord_id"`
	Landlord    *LandlordRef    `json:"landlord,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
