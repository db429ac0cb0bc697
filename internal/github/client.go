package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com/"
	// DefaultPerPage matches the page size the activity log has always used.
	DefaultPerPage = 50

	apiVersion     = "2022-11-28"
	unknownMessage = "An unknown error occurred"

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 64 * 1024
)

// APIError is a non-success response from the events endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: %d: %s", e.StatusCode, e.Message)
}

// Observer receives one call per upstream request. Outcome is "ok",
// "api_error", "transport_error" or "decode_error".
type Observer interface {
	ObserveFetch(outcome string, elapsed time.Duration)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	PerPage    int
	UserAgent  string
	HTTPClient *http.Client
	// Limiter paces outbound requests; nil means unlimited.
	Limiter  *rate.Limiter
	Observer Observer
}

// Client loads event feeds. It never retries.
type Client struct {
	baseURL   *url.URL
	perPage   int
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	observer  Observer
}

// NewClient validates opts and returns a Client.
func NewClient(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}

	c := &Client{
		baseURL:   base,
		perPage:   opts.PerPage,
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		limiter:   opts.Limiter,
		observer:  opts.Observer,
	}
	if c.perPage <= 0 {
		c.perPage = DefaultPerPage
	}
	if c.userAgent == "" {
		c.userAgent = "activity-log"
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	return c, nil
}

// EventsURL returns the request URL for a user's events page.
func (c *Client) EventsURL(username string, page int) string {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("page", strconv.Itoa(page))
	return c.baseURL.String() + "users/" + url.PathEscape(username) + "/events?" + q.Encode()
}

// Events fetches one page of a user's public events. Pages below 1 are
// treated as page 1. A non-success response is returned as *APIError.
func (c *Client) Events(ctx context.Context, username string, page int) (*Feed, error) {
	if page < 1 {
		page = 1
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.EventsURL(username, page), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("transport_error", start)
		return nil, fmt.Errorf("fetch events for %s: %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe("api_error", start)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
		}
	}

	// Malformed entries decode with DecodeErr set; only a body that is not
	// an array of events fails the page.
	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		c.observe("decode_error", start)
		return nil, fmt.Errorf("decode events for %s: %w", username, err)
	}
	c.observe("ok", start)

	pages := ParseLinkHeader(resp.Header.Get("Link"))
	pages.Current = page

	return &Feed{
		Username: username,
		Events:   events,
		Pages:    pages,
	}, nil
}

func (c *Client) observe(outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveFetch(outcome, time.Since(start))
	}
}

// errorMessage picks the user-facing message for a failed response: the
// JSON "message" field, the raw body for non-JSON responses, or a generic
// fallback.
func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil && len(body) == 0 {
		return unknownMessage
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var payload struct {
			Message any `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return unknownMessage
		}
		if msg, ok := payload.Message.(string); ok {
			return msg
		}
		return unknownMessage
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return unknownMessage
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
