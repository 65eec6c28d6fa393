package errors

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := Validation("name is required")
	assert.Equal(t, "name is required", err.Error())

	wrapped := Wrap(errors.New("boom"), ErrCodeNetwork, "network error")
	assert.Equal(t, "network error: boom", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeUpstream, "backend rejected request")
	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
	}{
		{NotFound("missing"), IsNotFound},
		{Validation("bad"), IsValidation},
		{Unauthorized("no"), IsUnauthorized},
		{Forbidden("nope"), IsForbidden},
		{SessionExpired("gone"), IsSessionExpired},
		{Upstream("backend said no"), IsUpstream},
		{Internal("oops"), IsInternal},
	}

	for _, tt := range tests {
		t.Run(string(GetCode(tt.err)), func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.False(t, tt.pred(errors.New("plain")))
			// wrapping preserves the code
			assert.True(t, tt.pred(fmt.Errorf("outer: %w", tt.err)))
		})
	}
}

func TestGetField(t *testing.T) {
	err := ValidationField("email", "email is invalid")
	assert.Equal(t, "email", GetField(err))
	assert.Equal(t, "", GetField(errors.New("plain")))
}

func TestClassifyTransport(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, ClassifyTransport(nil))
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		err := ClassifyTransport(context.DeadlineExceeded)
		assert.True(t, IsTimeout(err))
	})

	t.Run("url error without timeout", func(t *testing.T) {
		uerr := &url.Error{Op: "Get", URL: "http://backend", Err: errors.New("connection refused")}
		err := ClassifyTransport(uerr)
		assert.True(t, IsNetwork(err))
	})

	t.Run("app error passes through", func(t *testing.T) {
		orig := Upstream("backend said no")
		err := ClassifyTransport(orig)
		require.True(t, IsUpstream(err))
		assert.Equal(t, "backend said no", UserMessage(err))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		err := ClassifyTransport(errors.New("weird"))
		assert.True(t, IsInternal(err))
	})
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "backend said no", UserMessage(Upstream("backend said no")))
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(errors.New("opaque")))
}
