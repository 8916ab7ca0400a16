package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
)

const (
	defaultUserAgent              = "KisanMitra/1.0.0"
	defaultMaxResponseBytes int64 = 4 << 20
	requestIDHeader               = "X-Request-Id"
)

var errClientNotConfigured = errors.New("api client not configured")

// Observer receives one observation per completed call.
type Observer interface {
	ObserveRequest(ctx context.Context, obs Observation)
}

// Observation summarizes a finished call. Code is empty on success.
type Observation struct {
	Operation string
	Method    string
	Status    int
	Code      pkgerrors.Code
	Duration  time.Duration
}

// Client performs single round trips against the configured backend.
type Client struct {
	endpoints        Endpoints
	httpClient       *http.Client
	logg             *logger.Logger
	observer         Observer
	userAgent        string
	maxResponseBytes int64
	newRequestID     func() string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. Its own Timeout is left
// untouched; the endpoint timeout is always enforced per call.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured base address.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if trimmed != "" {
			c.endpoints.baseURL = trimmed
		}
	}
}

// WithTimeout overrides the configured request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.endpoints.timeout = timeout
		}
	}
}

// WithLogger enables debug-level request traces.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithObserver registers a metrics observer.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithUserAgent sets the User-Agent header sent on every call.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(userAgent); trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// WithMaxResponseBytes bounds how much of a response body is read.
func WithMaxResponseBytes(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.maxResponseBytes = limit
		}
	}
}

// New builds a client bound to endpoints.
func New(endpoints Endpoints, opts ...Option) (*Client, error) {
	client := &Client{
		endpoints:        endpoints,
		httpClient:       &http.Client{},
		userAgent:        defaultUserAgent,
		maxResponseBytes: defaultMaxResponseBytes,
		newRequestID:     uuid.NewString,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.endpoints.baseURL == "" {
		return nil, errors.New("api client requires a base URL")
	}
	if client.endpoints.mode == "" {
		client.endpoints.mode = ModeDevelopment
	}

	return client, nil
}

// Endpoints returns the endpoint configuration the client was built with.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// RequestOptions are the optional parts of a call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is sent as-is when it is []byte, json.RawMessage or string, and
	// JSON-encoded otherwise. Nil sends no body.
	Body any
	// Headers are applied over the defaults.
	Headers map[string]string
	// Operation labels the call in logs and metrics. Defaults to the path
	// without its query string.
	Operation string
}

// Do performs one round trip and decodes a 2xx body into T. It never returns
// an error or panics: every transport, timeout and application failure is
// reported through the Result. The request timer is released on every path.
func Do[T any](ctx context.Context, c *Client, path string, opts RequestOptions) (result Result[T]) {
	if c == nil {
		return Fail[T](&Failure{Code: pkgerrors.CodeInternal, Message: errClientNotConfigured.Error(), cause: errClientNotConfigured})
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}
	operation := opts.Operation
	if operation == "" {
		operation = strings.SplitN(path, "?", 2)[0]
	}

	start := time.Now()
	status := 0
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			result = Fail[T](&Failure{Code: pkgerrors.CodeInternal, Message: err.Error(), cause: err})
		}
		c.finish(ctx, operation, method, status, result.Failure(), time.Since(start))
	}()

	reqCtx, cancel := context.WithTimeout(ctx, c.endpoints.Timeout())
	defer cancel()

	body, err := encodeBody(opts.Body)
	if err != nil {
		return Fail[T](&Failure{Code: pkgerrors.CodeValidation, Message: messageOf(err), cause: err})
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.endpoints.URL(path), body)
	if err != nil {
		return Fail[T](&Failure{Code: pkgerrors.CodeTransport, Message: messageOf(err), cause: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, c.newRequestID())
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Fail[T](c.transportFailure(ctx, reqCtx, err))
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	payload, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return Fail[T](c.transportFailure(ctx, reqCtx, err))
	}
	if int64(len(payload)) > c.maxResponseBytes {
		err := fmt.Errorf("response body exceeds %d bytes", c.maxResponseBytes)
		return Fail[T](&Failure{Code: pkgerrors.CodeDecode, Message: err.Error(), cause: err})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Fail[T](applicationFailure(resp.StatusCode, payload))
	}

	// Every 2xx must carry a JSON body; an empty one is a decode failure.
	var data T
	if err := json.Unmarshal(payload, &data); err != nil {
		return Fail[T](&Failure{Code: pkgerrors.CodeDecode, Message: messageOf(err), raw: payload, cause: err})
	}
	return Success(data)
}

func (c *Client) transportFailure(parent, reqCtx context.Context, err error) *Failure {
	switch {
	case errors.Is(parent.Err(), context.Canceled):
		return &Failure{Code: pkgerrors.CodeCanceled, Message: "request canceled", cause: err}
	case parent.Err() == nil && errors.Is(reqCtx.Err(), context.DeadlineExceeded):
		return &Failure{
			Code:    pkgerrors.CodeTimeout,
			Message: fmt.Sprintf("request timed out after %s", c.endpoints.Timeout()),
			cause:   err,
		}
	case errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err):
		return &Failure{Code: pkgerrors.CodeTimeout, Message: "request timed out", cause: err}
	}
	return &Failure{Code: pkgerrors.CodeTransport, Message: messageOf(err), cause: err}
}

func applicationFailure(status int, payload []byte) *Failure {
	f := &Failure{Code: pkgerrors.CodeApplication, Status: status, raw: payload}

	var parsed any
	if len(bytes.TrimSpace(payload)) > 0 && json.Unmarshal(payload, &parsed) == nil {
		f.Body = parsed
		if obj, ok := parsed.(map[string]any); ok {
			if msg, ok := obj["message"].(string); ok && msg != "" {
				f.Message = msg
			}
		}
	}
	if f.Message == "" {
		f.Message = fmt.Sprintf("HTTP Error: %d", status)
	}
	f.cause = pkgerrors.New(pkgerrors.CodeApplication, f.Message)
	return f
}

func (c *Client) finish(ctx context.Context, operation, method string, status int, failure *Failure, elapsed time.Duration) {
	var code pkgerrors.Code
	if failure != nil {
		code = failure.Code
	}

	if c.observer != nil {
		c.observer.ObserveRequest(ctx, Observation{
			Operation: operation,
			Method:    method,
			Status:    status,
			Code:      code,
			Duration:  elapsed,
		})
	}

	if c.logg == nil || !c.logg.Enabled(zerolog.DebugLevel) {
		return
	}
	fields := map[string]any{
		"operation":   operation,
		"method":      method,
		"status":      status,
		"duration_ms": elapsed.Milliseconds(),
	}
	if failure != nil {
		fields["error_code"] = code
		fields["error"] = failure.Message
	}
	c.logg.Debug(c.logg.WithFields(ctx, fields), "api.request.complete")
}

func encodeBody(body any) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(v), nil
	case json.RawMessage:
		return bytes.NewReader(v), nil
	case string:
		return strings.NewReader(v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(encoded), nil
	}
}

// messageOf prefers the innermost transport message over the
// `Get "url": ...` prefix added by net/http.
func messageOf(err error) string {
	if err == nil {
		return unknownErrorMessage
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return unknownErrorMessage
	}
	return msg
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
