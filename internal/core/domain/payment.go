package domain

import "time"

// PaymentStatus represents the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// PaymentMethod is the instrument used to settle a payment.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodBankTransfer:
		return true
	}
	return false
}

// Payment records money received against a rental.
type Payment struct {
	ID          int           `json:"id"`
	RentalID    int           `json:"rental_id"`
	PaymentDate time.Time     `json:"payment_date"`
	Amount      float64       `json:"amount"`
	Method      PaymentMethod `json:"payment_method"`
	Status      PaymentStatus `json:"status"`
}
