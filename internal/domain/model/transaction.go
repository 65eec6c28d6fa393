//revive:disable-next-line:var-naming // shared entity package name used across the project
package model

import "time"

// TransactionStatus represents the settlement state of a payment
// transaction.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusPaid    TransactionStatus = "PAID"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Valid returns true if the transaction status is a known value.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPaid, TransactionStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the transaction status.
func (s TransactionStatus) String() string { return string(s) }

// CanTransitionTo reports whether a status change is permitted through the
// console. Settlement is one-way: only PENDING may move to PAID. A settled
// transaction can never be reopened.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return s == TransactionStatusPending && next == TransactionStatusPaid
}

// Transaction is a payment record as delivered by the transaction
// endpoints. UserName is a read-only denormalized snapshot.
type Transaction struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	UserName  string            `json:"userName,omitempty"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	Method    string            `json:"method,omitempty"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// TransactionListOptions groups list parameters for the transaction
// listing.
type TransactionListOptions struct {
	ListOptions
	// Status filters by settlement state when non-nil.
	Status *TransactionStatus
	// UserID restricts the listing to one account when non-empty.
	UserID string
}
