package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hinke/navdeck/internal/panel"
)

const defaultRemoteTimeout = 10 * time.Second

// Remote fetches dropdown content from an HTTP JSON endpoint:
//
//	GET {BaseURL}/content/{key}
//
// A 404 means the category has no content and yields the fallback payload.
type Remote struct {
	BaseURL string
	token   string
	http    *http.Client
}

var _ panel.Fetcher = (*Remote)(nil)

// RemoteOption configures a Remote.
type RemoteOption func(*Remote)

// WithToken sends token as a bearer credential.
func WithToken(token string) RemoteOption {
	return func(r *Remote) { r.token = token }
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *Remote) { r.http = c }
}

// NewRemote creates a Remote rooted at baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRemoteTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// remotePayload is the wire shape of a content response.
type remotePayload struct {
	Category string       `json:"category"`
	Links    []panel.Link `json:"links"`
	Cards    []panel.Card `json:"cards"`
}

// Fetch implements panel.Fetcher.
func (r *Remote) Fetch(ctx context.Context, key string) (panel.Payload, error) {
	var body remotePayload
	err := r.do(ctx, "/content/"+url.PathEscape(key), &body)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return panel.Fallback(key), nil
		}
		return panel.Payload{}, err
	}

	if len(body.Links) == 0 && len(body.Cards) == 0 {
		return panel.Fallback(key), nil
	}
	if body.Category == "" {
		body.Category = key
	}
	return panel.Payload{
		Category: body.Category,
		Links:    body.Links,
		Cards:    body.Cards,
	}, nil
}

// do executes a GET request and decodes the JSON response into result.
func (r *Remote) do(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// parseError maps an HTTP error response to the appropriate error type.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	// Try to extract a message from the JSON body.
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	if payload.Message == "" {
		payload.Message = http.StatusText(resp.StatusCode)
	}

	base := APIError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{APIError: base}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError: base}
	default:
		return &base
	}
}
