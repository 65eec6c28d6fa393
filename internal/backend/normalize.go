package backend

import (
	"encoding/json"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/ports"
)

// The auth endpoints are the worst offenders for shape drift: the token
// field alone has shipped as token, accessToken and AccessToken. Each known
// variant is mapped here once.

func normalizeTokens(obj rawObject) (ports.TokenSet, error) {
	var ts ports.TokenSet

	if raw, ok := obj.pick("token", "accessToken", "Token", "AccessToken", "access_token"); ok {
		if err := json.Unmarshal(raw, &ts.AccessToken); err != nil {
			return ports.TokenSet{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned a malformed token")
		}
	}
	if raw, ok := obj.pick("refreshToken", "RefreshToken", "refresh_token"); ok {
		if err := json.Unmarshal(raw, &ts.RefreshToken); err != nil {
			return ports.TokenSet{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned a malformed refresh token")
		}
	}
	if raw, ok := obj.pick("expiresIn", "ExpiresIn", "expires_in"); ok {
		if err := json.Unmarshal(raw, &ts.ExpiresIn); err != nil {
			return ports.TokenSet{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned a malformed expiry")
		}
	}

	if ts.AccessToken == "" {
		return ports.TokenSet{}, apperrors.Upstream("backend returned no access token")
	}
	return ts, nil
}

func normalizeProfile(obj rawObject) (domainauth.Profile, error) {
	// The profile is sometimes nested under "user"/"User".
	if raw, ok := obj.pick("user", "User"); ok {
		var nested rawObject
		if err := json.Unmarshal(raw, &nested); err != nil {
			return domainauth.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned a malformed profile")
		}
		obj = nested
	}

	var p domainauth.Profile
	fields := []struct {
		dst  any
		keys []string
	}{
		{&p.Name, []string{"name", "Name", "fullName", "FullName"}},
		{&p.Email, []string{"email", "Email"}},
		{&p.RoleID, []string{"roleId", "RoleId", "role_id"}},
	}
	for _, f := range fields {
		raw, ok := obj.pick(f.keys...)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return domainauth.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned a malformed profile")
		}
	}

	// IDs arrive as strings or numbers depending on the endpoint.
	if raw, ok := obj.pick("id", "Id", "ID", "userId", "UserId"); ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			p.ID = s
		} else {
			var n json.Number
			if err := json.Unmarshal(raw, &n); err != nil {
				return domainauth.Profile{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend returned a malformed profile")
			}
			p.ID = n.String()
		}
	}

	if p.Email == "" {
		return domainauth.Profile{}, apperrors.Upstream("backend returned no profile")
	}
	return p, nil
}
