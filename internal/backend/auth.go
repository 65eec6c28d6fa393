package backend

import (
	"context"
	"errors"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/ports"
)

// AuthAPI wraps the platform authentication endpoints.
type AuthAPI struct {
	client *Client
}

// Auth returns the authentication API bound to this client.
func (c *Client) Auth() *AuthAPI { return &AuthAPI{client: c} }

var _ ports.Authenticator = (*AuthAPI)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates credentials against POST {AUTH}/login and returns
// the normalized token set plus the principal's profile snapshot.
func (a *AuthAPI) Login(ctx context.Context, creds ports.Credentials) (ports.TokenSet, domainauth.Profile, error) {
	var obj rawObject
	err := a.client.Post(ctx, pathAuth+"/login", loginRequest{Email: creds.Email, Password: creds.Password}, &obj)
	if err != nil {
		return ports.TokenSet{}, domainauth.Profile{}, credentialError(err)
	}

	tokens, err := normalizeTokens(obj)
	if err != nil {
		return ports.TokenSet{}, domainauth.Profile{}, err
	}
	profile, err := normalizeProfile(obj)
	if err != nil {
		return ports.TokenSet{}, domainauth.Profile{}, err
	}
	return tokens, profile, nil
}

// credentialError relabels a bare 401 on the login path, where the
// rejection means bad credentials rather than a missing token. A
// backend-supplied message passes through untouched.
func credentialError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeUnauthorized && appErr.Message == authRequiredMessage {
		return apperrors.Unauthorized("Invalid email or password.")
	}
	return err
}

// Refresh exchanges a refresh token via POST {AUTH}/refresh-token.
func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (ports.TokenSet, error) {
	var obj rawObject
	err := a.client.Post(ctx, pathAuth+"/refresh-token", refreshRequest{RefreshToken: refreshToken}, &obj)
	if err != nil {
		return ports.TokenSet{}, err
	}
	return normalizeTokens(obj)
}

// RegisterInput carries the fields for creating a platform account via the
// auth registration endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account via POST {AUTH}/register.
func (a *AuthAPI) Register(ctx context.Context, input RegisterInput) (domainauth.Profile, error) {
	var obj rawObject
	if err := a.client.Post(ctx, pathAuth+"/register", input, &obj); err != nil {
		return domainauth.Profile{}, err
	}
	return normalizeProfile(obj)
}

// Profile fetches the authenticated principal's profile.
func (a *AuthAPI) Profile(ctx context.Context) (domainauth.Profile, error) {
	var obj rawObject
	if err := a.client.Get(ctx, pathAuth+"/profile", nil, &obj); err != nil {
		return domainauth.Profile{}, err
	}
	return normalizeProfile(obj)
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UpdateProfile updates the authenticated principal's profile.
func (a *AuthAPI) UpdateProfile(ctx context.Context, input UpdateProfileInput) (domainauth.Profile, error) {
	var obj rawObject
	if err := a.client.Put(ctx, pathAuth+"/profile", input, &obj); err != nil {
		return domainauth.Profile{}, err
	}
	return normalizeProfile(obj)
}

// ChangePasswordInput carries a password change request.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword changes the authenticated principal's password.
func (a *AuthAPI) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.NewPassword == "" {
		return apperrors.ValidationField("newPassword", "new password is required")
	}
	return a.client.Post(ctx, pathAuth+"/change-password", input, nil)
}
