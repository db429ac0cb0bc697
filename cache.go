package main

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"activity-log/internal/cache"
	"activity-log/internal/github"
)

// feedFetcher loads one page of a user's events.
type feedFetcher interface {
	Events(ctx context.Context, username string, page int) (*github.Feed, error)
}

// feedStore caches successful feed pages and collapses concurrent misses for
// the same page into one upstream call. Errors are never cached.
type feedStore struct {
	fetcher feedFetcher
	backend cache.CacheBackend
	ttl     time.Duration
	group   singleflight.Group
}

func newFeedStore(fetcher feedFetcher, backend cache.CacheBackend, ttl time.Duration) *feedStore {
	return &feedStore{fetcher: fetcher, backend: backend, ttl: ttl}
}

// feedKey is case-insensitive in the username since GitHub logins are.
func feedKey(username string, page int) string {
	if page < 1 {
		page = 1
	}
	return "feed:" + strings.ToLower(username) + ":" + strconv.Itoa(page)
}

// Events returns the cached page when fresh, fetching it otherwise.
func (s *feedStore) Events(ctx context.Context, username string, page int) (*github.Feed, error) {
	key := feedKey(username, page)
	log := LoggerFromContext(ctx)

	if s.ttl > 0 {
		if feed, ok := s.lookup(ctx, key); ok {
			IncrementCacheHit()
			return feed, nil
		}
		IncrementCacheMiss()
	}

	// The shared fetch outlives any single caller, so it runs detached from
	// the leader's cancellation; each caller still stops waiting on its own.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		feed, err := s.fetcher.Events(fetchCtx, username, page)
		if err != nil {
			return nil, err
		}
		s.store(fetchCtx, key, feed)
		return feed, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			log.Debug("singleflight: shared feed fetch", "user", username, "page", page)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*github.Feed), nil
	}
}

func (s *feedStore) lookup(ctx context.Context, key string) (*github.Feed, bool) {
	data, found, err := s.backend.Get(ctx, key)
	if err != nil {
		LoggerFromContext(ctx).Warn("feed cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	var feed github.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		LoggerFromContext(ctx).Warn("discarding undecodable cached feed", "key", key, "error", err)
		_ = s.backend.Delete(ctx, key)
		return nil, false
	}
	return &feed, true
}

func (s *feedStore) store(ctx context.Context, key string, feed *github.Feed) {
	if s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(feed)
	if err != nil {
		LoggerFromContext(ctx).Warn("feed not cacheable", "key", key, "error", err)
		return
	}
	if err := s.backend.Set(ctx, key, data, s.ttl); err != nil {
		LoggerFromContext(ctx).Warn("feed cache write failed", "key", key, "error", err)
	}
}
