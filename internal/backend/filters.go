package backend

import (
	"context"
	"encoding/json"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// FiltersAPI wraps the filter-option endpoints used to populate dropdowns.
type FiltersAPI struct {
	client *Client
}

// Filters returns the filters API bound to this client.
func (c *Client) Filters() *FiltersAPI { return &FiltersAPI{client: c} }

// Options fetches the option list for one filter kind. The backend answers
// either with [{value,label}] objects or with a plain string array; both
// normalize to FilterOption.
func (f *FiltersAPI) Options(ctx context.Context, kind model.FilterKind) ([]model.FilterOption, error) {
	if !kind.Valid() {
		return nil, apperrors.Validationf("unknown filter kind %q", kind)
	}

	var data json.RawMessage
	if err := f.client.Get(ctx, pathFilter+"/"+kind.String(), nil, &data); err != nil {
		return nil, err
	}

	var opts []model.FilterOption
	if err := json.Unmarshal(data, &opts); err == nil {
		return opts, nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned an unexpected payload")
	}
	opts = make([]model.FilterOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, model.FilterOption{Value: v, Label: v})
	}
	return opts, nil
}
