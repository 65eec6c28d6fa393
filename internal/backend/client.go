// Package backend is the typed REST client for the FitPick platform API.
// It centralizes the cross-cutting request concerns (bearer credentials,
// multipart bodies, error classification, diagnostics) so the per-resource
// services stay declarative.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/fitpick/admin-gateway/internal/errors"
	"github.com/fitpick/admin-gateway/internal/observability/statsd"
)

// DefaultTimeout bounds every backend call unless the caller's context is
// stricter.
const DefaultTimeout = 10 * time.Second

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	// BaseURL is the platform API root, e.g. "https://api.fitpick.io".
	BaseURL string
	// HTTPClient is optional; a client with DefaultTimeout is used when nil.
	HTTPClient *http.Client
	// Logger is optional; slog.Default() is used when nil.
	Logger *slog.Logger
	// Metrics is optional; when set, request outcomes are counted.
	Metrics statsd.Sink
}

// Client issues requests against the platform API. It is safe for
// concurrent use. A Client carries at most one bearer token; use WithToken
// to derive a session-bound client.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	metrics statsd.Sink
	token   string
}

// NewClient constructs a new platform API client.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		panic("backend base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

// WithToken returns a copy of the client that attaches the given access
// token as a bearer credential on every request. An empty token yields an
// unauthenticated client.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// request bundles the parameters of one backend call.
type request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil. Mutually exclusive with Multipart.
	Body any
	// Multipart, when non-nil, is written as a multipart/form-data body.
	// The content type (with boundary) is set by the multipart writer; no
	// explicit content type is attached on top of it.
	Multipart *MultipartBody
}

// Get issues a GET request and decodes the envelope payload into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, request{Method: http.MethodDelete, Path: path}, out)
}

// UploadFile is one file of a multipart upload.
type UploadFile struct {
	Field    string
	Filename string
	Content  []byte
}

// MultipartBody describes a multipart/form-data payload: one or more files
// plus optional plain form fields.
type MultipartBody struct {
	Files  []UploadFile
	Fields map[string]string
}

// UploadFiles issues a POST with a multipart body built from the given
// files and fields.
func (c *Client) UploadFiles(ctx context.Context, path string, body MultipartBody, out any) error {
	return c.do(ctx, request{Method: http.MethodPost, Path: path, Multipart: &body}, out)
}

// do executes one request: build, send, diagnose failures, decode the
// response envelope. Errors are always classified AppErrors; the diagnostic
// log distinguishes the three failure shapes (error status received, no
// response arrived, request could not be built).
func (c *Client) do(ctx context.Context, req request, out any) error {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		c.logger.ErrorContext(ctx, "backend request could not be built",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.String("error", err.Error()),
		)
		c.count(req, "build_error")
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "request failed")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		classified := apperrors.ClassifyTransport(err)
		c.logger.ErrorContext(ctx, "backend request got no response",
			slog.String("method", req.Method),
			slog.String("url", httpReq.URL.String()),
			slog.String("kind", string(apperrors.GetCode(classified))),
			slog.String("error", err.Error()),
		)
		c.count(req, "no_response")
		return classified
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.count(req, "read_error")
		return apperrors.ClassifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "backend responded with error status",
			slog.String("method", req.Method),
			slog.String("url", httpReq.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("status_text", http.StatusText(resp.StatusCode)),
			slog.String("payload", truncate(payload, maxLoggedPayload)),
		)
		c.count(req, "error_status")
		return statusError(resp.StatusCode, payload)
	}

	c.count(req, "ok")
	if out == nil {
		return nil
	}
	return decodeEnvelope(payload, out)
}

func (c *Client) build(ctx context.Context, req request) (*http.Request, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Multipart != nil:
		buf, ct, err := encodeMultipart(req.Multipart)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(encoded), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	return httpReq, nil
}

func encodeMultipart(body *MultipartBody) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range body.Files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %q: %w", f.Filename, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("write form file %q: %w", f.Filename, err)
		}
	}
	for k, v := range body.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write form field %q: %w", k, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}

	// FormDataContentType carries the boundary; nothing must override it.
	return &buf, w.FormDataContentType(), nil
}

// authRequiredMessage is the fallback for a bare 401 with no backend
// message. The login path relabels it; see credentialError.
const authRequiredMessage = "Authentication required."

// statusError maps an error status to the application taxonomy, surfacing
// the backend's message verbatim when the payload carries one.
func statusError(status int, payload []byte) error {
	msg := envelopeMessage(payload)

	switch status {
	case http.StatusUnauthorized:
		if msg == "" {
			msg = authRequiredMessage
		}
		return apperrors.Unauthorized(msg)
	case http.StatusForbidden:
		if msg == "" {
			msg = "You do not have permission to perform this action."
		}
		return apperrors.Forbidden(msg)
	case http.StatusNotFound:
		if msg == "" {
			msg = "Resource not found."
		}
		return apperrors.NotFound(msg)
	default:
		if msg == "" {
			return apperrors.Upstreamf("backend returned status %d", status)
		}
		return apperrors.Upstream(msg)
	}
}

const maxLoggedPayload = 2048

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

func (c *Client) count(req request, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.Count("backend.request", 1, map[string]string{
		"method":  req.Method,
		"outcome": outcome,
	})
}
