package service

import (
	"context"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// TransactionBackend is the slice of the platform transaction API the
// settlement guard needs.
type TransactionBackend interface {
	Get(ctx context.Context, id string) (model.Transaction, error)
	UpdateStatus(ctx context.Context, id string, status model.TransactionStatus) (model.Transaction, error)
}

// TransactionService enforces the settlement state machine in front of the
// platform: a transaction moves PENDING to PAID exactly once and never
// back. The platform endpoint itself accepts any status, so the guard lives
// here.
type TransactionService struct {
	backend TransactionBackend
}

// NewTransactionService constructs a new TransactionService.
func NewTransactionService(backend TransactionBackend) *TransactionService {
	if backend == nil {
		panic("backend is required")
	}
	return &TransactionService{backend: backend}
}

// UpdateStatus transitions a transaction, rejecting anything the state
// machine forbids before the platform is asked.
func (s *TransactionService) UpdateStatus(ctx context.Context, id string, next model.TransactionStatus) (model.Transaction, error) {
	if id == "" {
		return model.Transaction{}, apperrors.ValidationField("id", "transaction id is required")
	}
	if !next.Valid() {
		return model.Transaction{}, apperrors.ValidationField("status", "unknown transaction status")
	}

	current, err := s.backend.Get(ctx, id)
	if err != nil {
		return model.Transaction{}, err
	}

	if current.Status == next {
		return current, nil
	}
	if !current.Status.CanTransitionTo(next) {
		return model.Transaction{}, apperrors.ValidationField("status",
			"a "+current.Status.String()+" transaction cannot become "+next.String())
	}

	return s.backend.UpdateStatus(ctx, id, next)
}
