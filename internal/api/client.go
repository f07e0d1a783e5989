// Package api is the typed client for the quality-management backend.
// One method per backend operation; every call takes a context and returns
// either parsed structs or an error from the package taxonomy. Calls are
// never retried automatically; a failed call surfaces to the user, whose
// resubmission is the only recovery path.
package api

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
)

// Client issues requests against the backend REST API.
type Client struct {
	cfg      Config
	http     *http.Client
	observer Observer
	token    string
}

// NewClient creates a Client for the configured backend.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// serverDetail is the error envelope the backend returns.
type serverDetail struct {
	Detail string `json:"detail"`
}

// do performs one request. Mutating requests carry a client-generated
// request ID so the backend can correlate logs. out may be nil for calls
// whose response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	status, err := c.doOnce(ctx, method, path, query, body, out)

	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.New().String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, ErrTimeout
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return 0, context.Canceled
		}
		var netErr *net.OpError
		if errors.As(err, &netErr) {
			return 0, ErrUnavailable
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if err := statusError(resp.StatusCode, respBody); err != nil {
		return resp.StatusCode, err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// statusError maps non-2xx responses into the package taxonomy, carrying
// the server's detail text where the user can act on it.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var detail serverDetail
	_ = json.Unmarshal(body, &detail)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrNotAuthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail.Detail != "" {
			return fmt.Errorf("%w: %s", ErrValidation, detail.Detail)
		}
		return ErrValidation
	default:
		if detail.Detail != "" {
			return fmt.Errorf("server returned status %d: %s", status, detail.Detail)
		}
		return fmt.Errorf("server returned status %d", status)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
