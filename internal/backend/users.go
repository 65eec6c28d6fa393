package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/fitpick/admin-gateway/internal/domain/model"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
)

// UsersAPI wraps the managed-users endpoints.
type UsersAPI struct {
	client *Client
}

// Users returns the managed-users API bound to this client.
func (c *Client) Users() *UsersAPI { return &UsersAPI{client: c} }

// listQuery encodes the common list parameters. Page numbers are 1-based;
// the backend rejects page 0.
func listQuery(opts model.ListOptions) url.Values {
	q := url.Values{}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.Page > 0 {
		q.Set("pageNumber", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	return q
}

// List fetches one page of accounts.
func (u *UsersAPI) List(ctx context.Context, opts model.UserListOptions) (model.Page[model.User], error) {
	q := listQuery(opts.ListOptions)
	if opts.RoleID != nil {
		q.Set("roleId", strconv.Itoa(*opts.RoleID))
	}
	if opts.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*opts.IsActive))
	}

	var data json.RawMessage
	if err := u.client.Get(ctx, pathUsers, q, &data); err != nil {
		return model.Page[model.User]{}, err
	}
	return decodePage[model.User](data)
}

// Get fetches one account by ID.
func (u *UsersAPI) Get(ctx context.Context, id string) (model.User, error) {
	if id == "" {
		return model.User{}, apperrors.Validation("user ID is required")
	}
	var user model.User
	err := u.client.Get(ctx, pathUsers+"/"+url.PathEscape(id), nil, &user)
	return user, err
}

// Create creates an account.
func (u *UsersAPI) Create(ctx context.Context, input model.CreateUserInput) (model.User, error) {
	var user model.User
	err := u.client.Post(ctx, pathUsers, input, &user)
	return user, err
}

// Update updates an account.
func (u *UsersAPI) Update(ctx context.Context, id string, input model.UpdateUserInput) (model.User, error) {
	if id == "" {
		return model.User{}, apperrors.Validation("user ID is required")
	}
	var user model.User
	err := u.client.Put(ctx, pathUsers+"/"+url.PathEscape(id), input, &user)
	return user, err
}

// Delete removes an account.
func (u *UsersAPI) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.Validation("user ID is required")
	}
	return u.client.Delete(ctx, pathUsers+"/"+url.PathEscape(id), nil)
}

// ChangePassword sets a new password for an account through the admin
// endpoint.
func (u *UsersAPI) ChangePassword(ctx context.Context, id, newPassword string) error {
	if id == "" {
		return apperrors.Validation("user ID is required")
	}
	if newPassword == "" {
		return apperrors.ValidationField("newPassword", "new password is required")
	}
	body := map[string]string{"newPassword": newPassword}
	return u.client.Put(ctx, pathUsers+"/"+url.PathEscape(id)+"/change-password", body, nil)
}
