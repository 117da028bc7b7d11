package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleExists         = errors.New("role already exists")
	ErrRoleInUse          = errors.New("role has associated users")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrApartmentNotFound   = errors.New("apartment not found")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrRentalNotFound      = errors.New("rental not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrMaintenanceNotFound = errors.New("maintenance request not found")
)
