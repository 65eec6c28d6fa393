package backend

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// TransactionsAPI wraps the transaction endpoints. Transactions are created
// by the platform's payment flow; the console can only inspect, settle, and
// delete them.
type TransactionsAPI struct {
	client *Client
}

// Transactions returns the transactions API bound to this client.
func (c *Client) Transactions() *TransactionsAPI { return &TransactionsAPI{client: c} }

// List fetches one page of transactions.
func (t *TransactionsAPI) List(ctx context.Context, opts model.TransactionListOptions) (model.Page[model.Transaction], error) {
	q := listQuery(opts.ListOptions)
	if opts.Status != nil {
		q.Set("status", opts.Status.String())
	}

	path := pathTransactions
	if opts.UserID != "" {
		path = pathTransactions + "/user/" + url.PathEscape(opts.UserID)
	}

	var data json.RawMessage
	if err := t.client.Get(ctx, path, q, &data); err != nil {
		return model.Page[model.Transaction]{}, err
	}
	return decodePage[model.Transaction](data)
}

// Get fetches one transaction by ID.
func (t *TransactionsAPI) Get(ctx context.Context, id string) (model.Transaction, error) {
	if id == "" {
		return model.Transaction{}, apperrors.Validation("transaction ID is required")
	}
	var tx model.Transaction
	err := t.client.Get(ctx, pathTransactions+"/"+url.PathEscape(id), nil, &tx)
	return tx, err
}

// UpdateStatus moves a transaction to a new settlement state. The
// transition guard lives in the service layer; this is the raw endpoint
// call.
func (t *TransactionsAPI) UpdateStatus(ctx context.Context, id string, status model.TransactionStatus) (model.Transaction, error) {
	if id == "" {
		return model.Transaction{}, apperrors.Validation("transaction ID is required")
	}
	var tx model.Transaction
	body := map[string]string{"status": status.String()}
	err := t.client.Put(ctx, pathTransactions+"/"+url.PathEscape(id), body, &tx)
	return tx, err
}

// Delete removes a transaction record.
func (t *TransactionsAPI) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("transaction ID is required")
	}
	return t.client.Delete(ctx, pathTransactions+"/"+url.PathEscape(id), nil)
}
