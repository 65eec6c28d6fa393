package model

import "testing"

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from TransactionStatus
		to   TransactionStatus
		want bool
	}{
		{"pending to paid", TransactionStatusPending, TransactionStatusPaid, true},
		{"paid back to pending", TransactionStatusPaid, TransactionStatusPending, false},
		{"paid to paid", TransactionStatusPaid, TransactionStatusPaid, false},
		{"pending to failed", TransactionStatusPending, TransactionStatusFailed, false},
		{"failed to paid", TransactionStatusFailed, TransactionStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Fatalf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTransactionStatus_Valid(t *testing.T) {
	for _, s := range []TransactionStatus{TransactionStatusPending, TransactionStatusPaid, TransactionStatusFailed} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if TransactionStatus("SHIPPED").Valid() {
		t.Fatalf("unknown status reported valid")
	}
}
