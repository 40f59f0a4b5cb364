// Package backendapi is the typed surface of the screening REST backend:
// wire records and one call per endpoint the web app uses. Modules depend on
// narrow interfaces over Client rather than on raw paths.
package backendapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

// Requester is the subset of apiclient.Client used by Client.
type Requester interface {
	Get(ctx context.Context, path string, opts ...apiclient.RequestOption) (apiclient.Response, error)
	Post(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (apiclient.Response, error)
	Put(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (apiclient.Response, error)
}

// Client issues typed backend calls.
type Client struct {
	api Requester
}

// New wraps api.
func New(api Requester) *Client {
	if api == nil {
		return nil
	}
	return &Client{api: api}
}

func (c *Client) get(ctx context.Context, path string, opts ...apiclient.RequestOption) (apiclient.Response, error) {
	if c == nil || c.api == nil {
		return apiclient.Response{}, errNotConfigured
	}
	return c.api.Get(ctx, path, opts...)
}

func (c *Client) post(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (apiclient.Response, error) {
	if c == nil || c.api == nil {
		return apiclient.Response{}, errNotConfigured
	}
	return c.api.Post(ctx, path, body, opts...)
}

func (c *Client) put(ctx context.Context, path string, body any, opts ...apiclient.RequestOption) (apiclient.Response, error) {
	if c == nil || c.api == nil {
		return apiclient.Response{}, errNotConfigured
	}
	return c.api.Put(ctx, path, body, opts...)
}

var errNotConfigured = &apiclient.Error{Status: 0, Message: apiclient.MessageUnreachable}

func getOne[T any](ctx context.Context, c *Client, path string, opts ...apiclient.RequestOption) (T, error) {
	resp, err := c.get(ctx, path, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return apiclient.Decode[T](resp)
}

func getList[T any](ctx context.Context, c *Client, path string, field string, opts ...apiclient.RequestOption) ([]T, error) {
	resp, err := c.get(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeList[T](resp, field)
}

func postOne[T any](ctx context.Context, c *Client, path string, body any, opts ...apiclient.RequestOption) (T, error) {
	resp, err := c.post(ctx, path, body, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return apiclient.Decode[T](resp)
}

func putOne[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	resp, err := c.put(ctx, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return apiclient.Decode[T](resp)
}

// resource joins path segments, escaping each id.
func resource(base string, parts ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	for _, part := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(strings.TrimSpace(part)))
	}
	return b.String()
}

func requireID(kind string, id apiclient.ID) error {
	if strings.TrimSpace(id.String()) == "" {
		return apperrors.E(apperrors.KindNotFound, kind+" id is required")
	}
	return nil
}

func query(pairs ...string) apiclient.RequestOption {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) != "" {
			values.Set(pairs[i], pairs[i+1])
		}
	}
	return apiclient.WithQuery(values)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
