package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const sampleEvents = `[
  {"id":"1","type":"WatchEvent","actor":{"login":"octocat"},"repo":{"name":"foo/bar","url":"https://api.github.com/repos/foo/bar"},"payload":{"action":"started"},"public":true,"created_at":"2024-05-01T10:00:00Z"},
  {"id":"2","type":"MysteryEvent","payload":{},"public":true,"created_at":"2024-05-02T10:00:00Z"}
]`

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveFetch(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	c, err := NewClient(opts)
	require.NoError(t, err)
	return c
}

func TestEventsSuccess(t *testing.T) {
	var gotPath, gotQuery, gotAccept string
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Link", `<https://api.github.com/user/1/events?per_page=50&page=3>; rel="next", <https://api.github.com/user/1/events?per_page=50&page=1>; rel="prev"`)
		_, _ = w.Write([]byte(sampleEvents))
	}, Options{Observer: obs})

	feed, err := c.Events(context.Background(), "octocat", 2)
	require.NoError(t, err)

	assert.Equal(t, "/users/octocat/events", gotPath)
	assert.Equal(t, "page=2&per_page=50", gotQuery)
	assert.Equal(t, "application/vnd.github+json", gotAccept)

	assert.Equal(t, "octocat", feed.Username)
	require.Len(t, feed.Events, 2)
	assert.Equal(t, "WatchEvent", feed.Events[0].Type)
	require.NotNil(t, feed.Events[0].Repo)
	assert.Equal(t, "foo/bar", feed.Events[0].Repo.Name)
	assert.Nil(t, feed.Events[1].Repo)
	assert.Contains(t, string(feed.Events[0].Raw), `"actor":{"login":"octocat"}`)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), feed.Events[0].CreatedAt)

	require.NotNil(t, feed.Pages.Next)
	require.NotNil(t, feed.Pages.Prev)
	assert.Equal(t, 3, *feed.Pages.Next)
	assert.Equal(t, 1, *feed.Pages.Prev)
	assert.Nil(t, feed.Pages.First)
	assert.Nil(t, feed.Pages.Last)
	assert.Equal(t, 2, feed.Pages.Current)
	assert.Equal(t, 2, feed.Pages.Total())

	assert.Equal(t, []string{"ok"}, obs.outcomes)
}

func TestEventsDefaultsPageToOne(t *testing.T) {
	var gotPage string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`[]`))
	}, Options{PerPage: 100})

	feed, err := c.Events(context.Background(), "someone", 0)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
	assert.Equal(t, 1, feed.Pages.Current)
	assert.Empty(t, feed.Events)
	assert.Contains(t, c.EventsURL("someone", 1), "per_page=100")
}

func TestEventsErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"json message", http.StatusNotFound, "application/json; charset=utf-8", `{"message":"Not Found","documentation_url":"https://docs.github.com"}`, "Not Found"},
		{"json without string message", http.StatusForbidden, "application/json", `{"message":42}`, "An unknown error occurred"},
		{"invalid json", http.StatusInternalServerError, "application/json", `not json`, "An unknown error occurred"},
		{"plain text body", http.StatusBadGateway, "text/plain", "upstream exploded", "upstream exploded"},
		{"empty body", http.StatusServiceUnavailable, "text/html", "", "An unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, Options{Observer: obs})

			feed, err := c.Events(context.Background(), "ghost", 1)
			require.Error(t, err)
			assert.Nil(t, feed)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, []string{"api_error"}, obs.outcomes)
		})
	}
}

func TestIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}, Options{})

	_, err := c.Events(context.Background(), "nobody", 1)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestEventsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	c, err := NewClient(Options{BaseURL: base, Observer: obs})
	require.NoError(t, err)

	_, err = c.Events(context.Background(), "octocat", 1)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"transport_error"}, obs.outcomes)
}

func TestEventsKeepsMalformedEntries(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
  {"id":"1","type":"WatchEvent","repo":"oops","payload":{"action":"started"}},
  {"id":"2","type":"WatchEvent","repo":{"name":"foo/bar"},"payload":{"action":"started"},"created_at":"2024-05-01T10:00:00Z"}
]`))
	}, Options{Observer: obs})

	feed, err := c.Events(context.Background(), "octocat", 1)
	require.NoError(t, err)
	require.Len(t, feed.Events, 2)

	bad := feed.Events[0]
	require.Error(t, bad.DecodeErr)
	assert.Equal(t, "1", bad.ID)
	assert.Equal(t, "WatchEvent", bad.Type)
	assert.Contains(t, string(bad.Raw), `"repo":"oops"`)

	good := feed.Events[1]
	assert.NoError(t, good.DecodeErr)
	require.NotNil(t, good.Repo)
	assert.Equal(t, "foo/bar", good.Repo.Name)
	assert.Equal(t, []string{"ok"}, obs.outcomes)
}

func TestEventsRejectsNonArrayBody(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[]}`))
	}, Options{Observer: obs})

	_, err := c.Events(context.Background(), "octocat", 1)
	require.Error(t, err)
	assert.Equal(t, []string{"decode_error"}, obs.outcomes)
}

func TestEventsLimiterHonoursContext(t *testing.T) {
	calls := 0
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	}, Options{Limiter: limiter})

	_, err := c.Events(context.Background(), "octocat", 1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Events(ctx, "octocat", 1)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestEventsURLEscapesUsername(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "https://example.test/api"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api/users/a%2Fb/events?page=4&per_page=50", c.EventsURL("a/b", 4))
}

func TestNewClientRejectsRelativeBase(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "/relative"})
	assert.Error(t, err)
}
