// Package fetch is the HTTP transport for the store API. It performs
// single-attempt requests and returns values for the caller to apply;
// it never touches controller state and never retries on its own -
// every retry is a fresh user action.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peaksport/vitrina/internal/logging"
	"github.com/peaksport/vitrina/internal/query"
	"golang.org/x/time/rate"
)

const userAgent = "Vitrina/1.0 (+https://github.com/peaksport/vitrina)"

// Client talks to the store API. Safe for concurrent use.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client with the given per-request timeout.
// Requests are paced to a few per second so rapid pagination does not
// hammer the backend.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(4), 4),
	}
}

// Page is one page of a listing response.
type Page[T any] struct {
	Items []T
	Total int
}

type listPayload[T any] struct {
	Items *[]T `json:"items"`
	Total *int `json:"total"`
}

// List fetches one page of records for the given request descriptor.
// An empty endpoint is a configuration failure, not a transport one.
func List[T any](ctx context.Context, c *Client, req query.Request) (Page[T], error) {
	if req.Endpoint == "" {
		return Page[T]{}, &Error{Kind: KindNotConfigured, Err: errors.New("list endpoint not bound")}
	}

	body, err := c.get(ctx, req.URL())
	if err != nil {
		return Page[T]{}, err
	}

	var payload listPayload[T]
	if err := json.Unmarshal(body, &payload); err != nil {
		return Page[T]{}, &Error{Kind: KindDecode, Err: fmt.Errorf("parse listing: %w", err)}
	}
	if payload.Items == nil || payload.Total == nil || *payload.Total < 0 {
		return Page[T]{}, &Error{Kind: KindDecode, Err: errors.New("listing missing items or total")}
	}

	logging.Debug("listing fetched", "url", req.URL(), "items", len(*payload.Items), "total", *payload.Total)
	return Page[T]{Items: *payload.Items, Total: *payload.Total}, nil
}

// Detail fetches a single record from a {id}-templated endpoint.
func Detail[T any](ctx context.Context, c *Client, urlTemplate, id string) (T, error) {
	var zero T
	if urlTemplate == "" {
		return zero, &Error{Kind: KindNotConfigured, Err: errors.New("detail endpoint not bound")}
	}

	body, err := c.get(ctx, ExpandTemplate(urlTemplate, id))
	if err != nil {
		return zero, err
	}

	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return zero, &Error{Kind: KindDecode, Err: fmt.Errorf("parse record: %w", err)}
	}
	return record, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies still carry {success:false, error:...} for
		// application-level rejections; prefer that message.
		if msg := applicationMessage(data); msg != "" {
			return nil, &Error{Kind: KindApplication, Message: msg}
		}
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)}
	}

	return data, nil
}

func applicationMessage(body []byte) string {
	var m mutationResponse
	if json.Unmarshal(body, &m) != nil {
		return ""
	}
	if m.Error != "" {
		return m.Error
	}
	return m.Message
}

// ExpandTemplate substitutes id into a {id}-style URL template.
func ExpandTemplate(template, id string) string {
	return strings.ReplaceAll(template, "{id}", url.PathEscape(id))
}

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}
