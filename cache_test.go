package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-log/internal/cache"
	"activity-log/internal/config"
	"activity-log/internal/github"
)

type countingFetcher struct {
	calls atomic.Int32
	err   error
	// gate, when set, blocks every fetch until closed or ctx is done
	gate chan struct{}
}

func (f *countingFetcher) Events(ctx context.Context, username string, page int) (*github.Feed, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &github.Feed{
		Username: username,
		Events:   []github.Event{{ID: "1", Type: "WatchEvent", Payload: []byte(`{"action":"started"}`)}},
		Pages:    github.Pages{Current: page},
	}, nil
}

func testConfig() config.Config {
	return config.Config{
		GitHubAPIURL:    "https://api.github.com/",
		GitHubPerPage:   50,
		HostingSuffix:   ".github.io",
		DisplayTimezone: "UTC",
		FeedCacheTTL:    time.Minute,
		FeedCacheSize:   8,
	}
}

func TestFeedKey(t *testing.T) {
	assert.Equal(t, "feed:octocat:1", feedKey("OctoCat", 0))
	assert.Equal(t, feedKey("octocat", 2), feedKey("OCTOCAT", 2))
}

func TestFeedStoreCachesSuccess(t *testing.T) {
	ctx := context.Background()
	f := &countingFetcher{}
	s := newFeedStore(f, cache.NewMemoryCache(8), time.Minute)

	first, err := s.Events(ctx, "octocat", 1)
	require.NoError(t, err)
	second, err := s.Events(ctx, "OctoCat", 1)
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, first.Username, second.Username)
	require.Len(t, second.Events, 1)
	assert.Equal(t, "WatchEvent", second.Events[0].Type)

	_, err = s.Events(ctx, "octocat", 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load(), "pages are cached separately")
}

func TestFeedStoreDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	f := &countingFetcher{err: &github.APIError{StatusCode: 404, Message: "Not Found"}}
	s := newFeedStore(f, cache.NewMemoryCache(8), time.Minute)

	for range 2 {
		_, err := s.Events(ctx, "ghost", 1)
		var apiErr *github.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Not Found", apiErr.Message)
	}
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestFeedStoreZeroTTLDisablesCache(t *testing.T) {
	f := &countingFetcher{}
	s := newFeedStore(f, cache.NewMemoryCache(8), 0)

	for range 3 {
		_, err := s.Events(context.Background(), "octocat", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestFeedStoreSharesConcurrentMisses(t *testing.T) {
	f := &countingFetcher{gate: make(chan struct{})}
	s := newFeedStore(f, cache.NewMemoryCache(8), time.Minute)

	var wg sync.WaitGroup
	results := make([]*github.Feed, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed, err := s.Events(context.Background(), "octocat", 1)
			assert.NoError(t, err)
			results[i] = feed
		}()
	}

	// Let the leader reach the fetcher before releasing it.
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	for _, feed := range results {
		require.NotNil(t, feed)
		assert.Equal(t, "octocat", feed.Username)
	}
}

func TestFeedStoreSharedFetchOutlivesLeader(t *testing.T) {
	f := &countingFetcher{gate: make(chan struct{})}
	s := newFeedStore(f, cache.NewMemoryCache(8), time.Minute)

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := s.Events(leaderCtx, "octocat", 1)
		leaderErr <- err
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		feed *github.Feed
		err  error
	}
	follower := make(chan result, 1)
	go func() {
		feed, err := s.Events(context.Background(), "octocat", 1)
		follower <- result{feed, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-leaderErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared fetch")
	}

	close(f.gate)
	res := <-follower
	require.NoError(t, res.err)
	assert.Equal(t, "octocat", res.feed.Username)

	// The detached fetch still populated the cache.
	_, err := s.Events(context.Background(), "octocat", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestFeedStoreDropsUndecodableEntries(t *testing.T) {
	ctx := context.Background()
	backend := cache.NewMemoryCache(8)
	require.NoError(t, backend.Set(ctx, feedKey("octocat", 1), []byte("not json"), time.Minute))

	f := &countingFetcher{}
	s := newFeedStore(f, backend, time.Minute)
	feed, err := s.Events(ctx, "octocat", 1)
	require.NoError(t, err)
	assert.Equal(t, "octocat", feed.Username)
	assert.Equal(t, int32(1), f.calls.Load())
}
