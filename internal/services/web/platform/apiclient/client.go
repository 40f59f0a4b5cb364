// Package apiclient is the web frontend's client for the REST backend: JSON
// requests, bearer auth from the session, and one normalized message per
// failure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	maxBodyBytes    = 4 << 20
	apiPathSuffix   = "/api"
	breakerName     = "backend-api"
	defaultTimeout  = 15 * time.Second
	bearerPrefix    = "Bearer "
	contentTypeJSON = "application/json"
)

// TokenSource resolves the bearer token for an outbound call.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) string

// Token returns f(ctx).
func (f TokenSourceFunc) Token(ctx context.Context) string { return f(ctx) }

// Observer records backend call outcomes, e.g. for metrics.
type Observer interface {
	ObserveBackendCall(method string, status int, elapsed time.Duration)
}

// BreakerSettings configures the circuit breaker around backend calls.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerSettings trips after most of at least five calls fail.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 0.8,
	}
}

// Response is a successful backend reply.
type Response struct {
	Status  int
	Message string
	// Data is the envelope "data" member; empty when the backend sent none.
	Data json.RawMessage
	// Body is the complete response body.
	Body json.RawMessage
}

// Client issues JSON requests against the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	breaker    *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	observer   Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithBreaker wraps calls in a circuit breaker.
func WithBreaker(settings BreakerSettings) Option {
	return func(c *Client) { c.breaker = newBreaker(settings) }
}

// WithObserver records call outcomes.
func WithObserver(observer Observer) Option {
	return func(c *Client) { c.observer = observer }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// New builds a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	resolved, err := ResolveBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    resolved,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tracer:     otel.Tracer(tracerName),
		propagator: otel.GetTextMapPropagator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string { return c.baseURL }

// ResolveBaseURL trims raw, drops a trailing slash and appends "/api" when
// missing.
func ResolveBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("api base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("api base url must be http or https, got %q", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("api base url host is required")
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(parsed.Path, apiPathSuffix) {
		parsed.Path += apiPathSuffix
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}

type requestOptions struct {
	useAuth bool
	token   string
	query   url.Values
}

// RequestOption customizes one call.
type RequestOption func(*requestOptions)

// WithoutAuth skips the bearer token.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.useAuth = false }
}

// WithToken uses token instead of the TokenSource.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) { o.token = strings.TrimSpace(token) }
}

// WithQuery appends query values to the request path.
func WithQuery(values url.Values) RequestOption {
	return func(o *requestOptions) { o.query = values }
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, opts...)
}

// Request sends method path with an optional JSON body. A 2xx reply returns
// the parsed envelope; anything else returns *Error.
func (c *Client) Request(ctx context.Context, method string, path string, body any, opts ...RequestOption) (Response, error) {
	if c == nil {
		return Response{}, transportError(errors.New("api client is not configured"))
	}
	if ctx == nil {
		ctx = context.Background()
	}
	options := requestOptions{useAuth: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	ctx, span := c.tracer.Start(ctx, "backend "+method, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	)

	started := time.Now()
	resp, err := c.execute(ctx, method, path, body, options)
	status := resp.Status
	var apiErr *Error
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	}
	if c.observer != nil {
		c.observer.ObserveBackendCall(method, status, time.Since(started))
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Printf("api request failed method=%s path=%s status=%d err=%v", method, path, status, err)
		return Response{}, err
	}
	return resp, nil
}

func (c *Client) execute(ctx context.Context, method string, path string, body any, options requestOptions) (Response, error) {
	if c.breaker == nil {
		return c.do(ctx, method, path, body, options)
	}
	var resp Response
	var callErr error
	_, err := c.breaker.Execute(func() (any, error) {
		resp, callErr = c.do(ctx, method, path, body, options)
		if countsAsBreakerFailure(callErr) {
			return nil, callErr
		}
		return nil, nil
	})
	if callErr != nil {
		return Response{}, callErr
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return Response{}, &Error{Status: http.StatusServiceUnavailable, Message: MessageUnreachable, cause: err}
	}
	if err != nil {
		return Response{}, transportError(err)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, options requestOptions) (Response, error) {
	target, err := c.url(path, options.query)
	if err != nil {
		return Response{}, transportError(err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Response{}, &Error{Message: MessageFailed, cause: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return Response{}, transportError(err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	if options.useAuth {
		token := options.token
		if token == "" && c.tokens != nil {
			token = strings.TrimSpace(c.tokens.Token(ctx))
		}
		if token != "" {
			req.Header.Set("Authorization", bearerPrefix+token)
		}
	}
	if c.propagator != nil {
		c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, transportError(err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, transportError(fmt.Errorf("read response body: %w", err))
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return Response{}, responseError(httpResp.StatusCode, raw)
	}
	return parseEnvelope(httpResp.StatusCode, raw), nil
}

func (c *Client) url(path string, query url.Values) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("request path is required")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}
	return target, nil
}

func parseEnvelope(status int, raw []byte) Response {
	resp := Response{Status: status, Body: json.RawMessage(raw)}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp
	}
	var envelope struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return resp
	}
	resp.Message = envelope.Message
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		resp.Data = envelope.Data
	}
	return resp
}

func countsAsBreakerFailure(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err != nil
	}
	return apiErr.Status == 0 || apiErr.Status >= http.StatusInternalServerError
}

func newBreaker(settings BreakerSettings) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("circuit breaker state changed name=%s from=%s to=%s", name, from, to)
		},
	})
}
