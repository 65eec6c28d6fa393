package errors

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// ClassifyTransport maps an error returned by the HTTP transport into the
// application error taxonomy. It distinguishes a client-side timeout from a
// request that was sent but never answered; anything else becomes an
// internal error. Errors that are already AppErrors pass through unchanged.
//
// The message is intentionally generic: transport failures carry no
// user-meaningful payload, and the caller surfaces a fixed human-readable
// fallback.
func ClassifyTransport(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrCodeTimeout, "request timed out")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return Wrap(err, ErrCodeTimeout, "request timed out")
		}
		return Wrap(err, ErrCodeNetwork, "network error")
	}

	// url.Error wraps everything the http client returns; if it is not a
	// timeout it means the request left but no usable response arrived.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return Wrap(err, ErrCodeNetwork, "network error")
	}

	return Wrap(err, ErrCodeInternal, "request failed")
}

// UserMessage extracts the message to surface in a transient notification:
// the AppError message when present, else a generic fallback. Backend
// payload messages arrive here verbatim via Upstream errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
