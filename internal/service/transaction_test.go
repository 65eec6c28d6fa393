package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

type fakeTransactionBackend struct {
	current     model.Transaction
	updateCalls int
}

func (f *fakeTransactionBackend) Get(_ context.Context, id string) (model.Transaction, error) {
	tx := f.current
	tx.ID = id
	return tx, nil
}

func (f *fakeTransactionBackend) UpdateStatus(_ context.Context, id string, status model.TransactionStatus) (model.Transaction, error) {
	f.updateCalls++
	tx := f.current
	tx.ID = id
	tx.Status = status
	return tx, nil
}

func TestTransactionService_PendingToPaid(t *testing.T) {
	backend := &fakeTransactionBackend{current: model.Transaction{Status: model.TransactionStatusPending}}
	svc := NewTransactionService(backend)

	tx, err := svc.UpdateStatus(context.Background(), "tx-1", model.TransactionStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusPaid, tx.Status)
	assert.Equal(t, 1, backend.updateCalls)
}

func TestTransactionService_PaidToPendingRejected(t *testing.T) {
	backend := &fakeTransactionBackend{current: model.Transaction{Status: model.TransactionStatusPaid}}
	svc := NewTransactionService(backend)

	_, err := svc.UpdateStatus(context.Background(), "tx-1", model.TransactionStatusPending)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "status", apperrors.GetField(err))
	assert.Equal(t, 0, backend.updateCalls, "forbidden transitions never reach the platform")
}

func TestTransactionService_SameStatusIsNoOp(t *testing.T) {
	backend := &fakeTransactionBackend{current: model.Transaction{Status: model.TransactionStatusPaid}}
	svc := NewTransactionService(backend)

	tx, err := svc.UpdateStatus(context.Background(), "tx-1", model.TransactionStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, model.TransactionStatusPaid, tx.Status)
	assert.Equal(t, 0, backend.updateCalls)
}

func TestTransactionService_ValidatesInput(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionBackend{})

	_, err := svc.UpdateStatus(context.Background(), "", model.TransactionStatusPaid)
	require.Error(t, err)
	assert.Equal(t, "id", apperrors.GetField(err))

	_, err = svc.UpdateStatus(context.Background(), "tx-1", model.TransactionStatus("SETTLED"))
	require.Error(t, err)
	assert.Equal(t, "status", apperrors.GetField(err))
}
