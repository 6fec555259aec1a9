package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// GurbaniUpstream is the upstream collaborator for shabad search and the
// raag index. The production implementation lives in internal/adapters/gurbani.
type GurbaniUpstream interface {
	Search(ctx context.Context, query string) ([]json.RawMessage, error)
	FetchRaagIndex(ctx context.Context) ([]model.RaagEntry, error)
}

// GurbaniServiceOptions groups dependencies for GurbaniService.
type GurbaniServiceOptions struct {
	Upstream GurbaniUpstream
	Cache    core.RaagCache // optional; nil disables raag index caching
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// GurbaniService proxies the upstream Gurbani services, caching the raag
// index between fetches.
type GurbaniService struct {
	upstream GurbaniUpstream
	cache    core.RaagCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewGurbaniService constructs a new GurbaniService.
func NewGurbaniService(opts GurbaniServiceOptions) (*GurbaniService, error) {
	if opts.Upstream == nil {
		return nil, errors.New("gurbani upstream is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &GurbaniService{
		upstream: opts.Upstream,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   logger.With("component", "gurbani"),
	}, nil
}

// Search forwards a query to the upstream search API and returns its results
// array unchanged.
func (s *GurbaniService) Search(ctx context.Context, query string) ([]json.RawMessage, error) {
	results, err := s.upstream.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("upstream search: %w", err)
	}
	return results, nil
}

// RaagIndex returns the scraped raag index, serving from cache when fresh.
// Cache read/write failures degrade to an upstream fetch; they never fail
// the request on their own.
func (s *GurbaniService) RaagIndex(ctx context.Context) ([]model.RaagEntry, error) {
	if s.cache != nil {
		entries, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "raag cache read failed", "err", err)
		} else if ok {
			return entries, nil
		}
	}

	entries, err := s.upstream.FetchRaagIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch raag index: %w", err)
	}

	if s.cache != nil {
		if setErr := s.cache.Set(ctx, entries, s.cacheTTL); setErr != nil {
			s.logger.WarnContext(ctx, "raag cache write failed", "err", setErr)
		}
	}
	return entries, nil
}
