package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"optimasfibre-web/models"

	"github.com/redis/go-redis/v9"
)

const (
	blogCacheKey      = "site:blog"
	portfolioCacheKey = "site:portfolio"
)

// PublicContent serves blog and portfolio lists to the public site, cached
// in redis when one is configured.
type PublicContent struct {
	api *APIClient
	rdb *redis.Client
	ttl time.Duration
}

// NewPublicContent accepts a nil rdb; every read then goes to the backend.
func NewPublicContent(api *APIClient, rdb *redis.Client, ttl time.Duration) *PublicContent {
	return &PublicContent{api: api, rdb: rdb, ttl: ttl}
}

func (p *PublicContent) Blog(ctx context.Context) ([]models.BlogPost, error) {
	return cached(ctx, p, blogCacheKey, p.api.ListPublicBlog)
}

func (p *PublicContent) Portfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	return cached(ctx, p, portfolioCacheKey, p.api.ListPublicPortfolio)
}

// Invalidate drops cached lists after an admin edit.
func (p *PublicContent) Invalidate(ctx context.Context) {
	if p == nil || p.rdb == nil {
		return
	}
	if err := p.rdb.Del(ctx, blogCacheKey, portfolioCacheKey).Err(); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate content cache", "error", err)
	}
}

// Warm refreshes both lists; run from the scheduler.
func (p *PublicContent) Warm(ctx context.Context) {
	if p == nil || p.rdb == nil {
		return
	}
	p.Invalidate(ctx)
	if _, err := p.Blog(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to warm blog cache", "error", err)
	}
	if _, err := p.Portfolio(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to warm portfolio cache", "error", err)
	}
}

func cached[T any](ctx context.Context, p *PublicContent, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if p.rdb != nil {
		raw, err := p.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var out []T
			if json.Unmarshal(raw, &out) == nil {
				return out, nil
			}
		case !errors.Is(err, redis.Nil):
			slog.WarnContext(ctx, "Content cache read failed", "key", key, "error", err)
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if p.rdb != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
				slog.WarnContext(ctx, "Content cache write failed", "key", key, "error", err)
			}
		}
	}
	return out, nil
}
