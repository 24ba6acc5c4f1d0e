package provider

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/muesli/cache2go"
)

const (
	defaultIdentityTTL       = 15 * time.Minute
	defaultIdentityCacheName = "provider-identity-cache"
)

// IdentityCache caches the authenticated login per provider so that
// auto-user-detection does not hit the backend on every tool call.
// Safe for use across goroutines.
type IdentityCache struct {
	mu     sync.Mutex
	cache  *cache2go.CacheTable
	ttl    time.Duration
	logger *slog.Logger
}

// IdentityOption configures an IdentityCache at construction time.
type IdentityOption func(*IdentityCache)

// WithTTL overrides the default TTL applied to cached logins. A non-positive
// duration disables expiration.
func WithTTL(ttl time.Duration) IdentityOption {
	return func(c *IdentityCache) {
		c.ttl = ttl
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) IdentityOption {
	return func(c *IdentityCache) {
		c.logger = logger
	}
}

// WithCacheName overrides the cache table name. Intended for tests that need
// isolated cache instances.
func WithCacheName(name string) IdentityOption {
	return func(c *IdentityCache) {
		if name != "" {
			c.cache = cache2go.Cache(name)
		}
	}
}

// NewIdentityCache creates an IdentityCache with the given options.
func NewIdentityCache(opts ...IdentityOption) *IdentityCache {
	c := &IdentityCache{
		cache: cache2go.Cache(defaultIdentityCacheName),
		ttl:   defaultIdentityTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Login returns the authenticated login for the given provider, consulting
// the cache before calling CurrentUser.
func (c *IdentityCache) Login(ctx context.Context, p Provider) (string, error) {
	if c == nil {
		return "", fmt.Errorf("nil identity cache")
	}
	key := p.Name()

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, err := c.cache.Value(key); err == nil {
		login := item.Data().(string)
		c.logDebug(ctx, "identity cache hit", slog.String("provider", key), slog.String("login", login))
		return login, nil
	}

	login, err := p.CurrentUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to detect current user for provider %s: %w", key, err)
	}

	c.cache.Add(key, c.ttl, login)
	c.logDebug(ctx, "identity cache fill", slog.String("provider", key), slog.String("login", login))
	return login, nil
}

func (c *IdentityCache) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if c.logger == nil || !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}
