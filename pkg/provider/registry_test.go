package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	login string
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) CurrentUser(_ context.Context) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.login, nil
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name        string
		defaultName string
		providers   []Provider
		expectErr   string
	}{
		{
			name:        "explicit default",
			defaultName: "gitea",
			providers:   []Provider{&stubProvider{name: "github"}, &stubProvider{name: "gitea"}},
		},
		{
			name:      "no providers",
			expectErr: "at least one provider is required",
		},
		{
			name:        "unknown default",
			defaultName: "gitlab",
			providers:   []Provider{&stubProvider{name: "github"}},
			expectErr:   `default provider "gitlab" is not configured`,
		},
		{
			name:      "duplicate provider",
			providers: []Provider{&stubProvider{name: "github"}, &stubProvider{name: "github"}},
			expectErr: "duplicate provider: github",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := NewRegistry(tc.defaultName, tc.providers...)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.defaultName, reg.DefaultName())
		})
	}
}

func TestNewRegistry_FirstByNameIsDefault(t *testing.T) {
	reg, err := NewRegistry("", &stubProvider{name: "github"}, &stubProvider{name: "gitea"})
	require.NoError(t, err)
	assert.Equal(t, "gitea", reg.DefaultName(), "empty default selects the first provider by sorted name")
}

func TestRegistry_Resolve(t *testing.T) {
	github := &stubProvider{name: "github"}
	gitea := &stubProvider{name: "gitea"}
	reg, err := NewRegistry("github", github, gitea)
	require.NoError(t, err)

	p, err := reg.Resolve("gitea")
	require.NoError(t, err)
	assert.Equal(t, gitea, p)

	p, err = reg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, github, p, "empty name resolves the default provider")

	_, err = reg.Resolve("gitlab")
	require.Error(t, err)
	var nfe *NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "gitlab", nfe.Name)
	assert.Equal(t, "provider not found: gitlab", err.Error())
}

func TestRegistry_Names(t *testing.T) {
	reg, err := NewRegistry("github", &stubProvider{name: "github"}, &stubProvider{name: "gitea"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gitea", "github"}, reg.Names())
}

func TestNotSupported(t *testing.T) {
	err := NotSupported("gitea", "workflow runs")
	assert.True(t, IsNotSupported(err))
	assert.Equal(t, "workflow runs is not supported by provider gitea", err.Error())
	assert.False(t, IsNotSupported(errors.New("boom")))
}
