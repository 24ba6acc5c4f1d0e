package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityCache_Login(t *testing.T) {
	p := &stubProvider{name: "github", login: "octocat"}
	cache := NewIdentityCache(WithCacheName("identity-test-hit"), WithTTL(time.Minute))

	login, err := cache.Login(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
	assert.Equal(t, 1, p.calls)

	// Second lookup is served from the cache.
	login, err = cache.Login(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
	assert.Equal(t, 1, p.calls)
}

func TestIdentityCache_LoginError(t *testing.T) {
	p := &stubProvider{name: "gitea", err: errors.New("401 unauthorized")}
	cache := NewIdentityCache(WithCacheName("identity-test-err"))

	_, err := cache.Login(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to detect current user for provider gitea")

	// Errors are not cached; the provider is asked again.
	_, err = cache.Login(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestIdentityCache_PerProviderKeys(t *testing.T) {
	github := &stubProvider{name: "github", login: "octocat"}
	gitea := &stubProvider{name: "gitea", login: "giteauser"}
	cache := NewIdentityCache(WithCacheName("identity-test-keys"))

	login, err := cache.Login(context.Background(), github)
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)

	login, err = cache.Login(context.Background(), gitea)
	require.NoError(t, err)
	assert.Equal(t, "giteauser", login)
}

func TestIdentityCache_Nil(t *testing.T) {
	var cache *IdentityCache
	_, err := cache.Login(context.Background(), &stubProvider{name: "github"})
	require.Error(t, err)
}
