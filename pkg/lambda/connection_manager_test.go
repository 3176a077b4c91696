package lambda

import (
	"context"
	"errors"
	"testing"

	"event-handlers-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContainer struct {
	closed bool
}

func (f *fakeContainer) Close() error {
	f.closed = true
	return nil
}

func TestConnectionManager_BuildsOnce(t *testing.T) {
	builds := 0
	cm := NewConnectionManager(func(ctx context.Context, cfg *config.Config) (*fakeContainer, error) {
		builds++
		return &fakeContainer{}, nil
	}).WithConfigLoader(func() (*config.Config, error) {
		return &config.Config{Environment: "test"}, nil
	})

	assert.False(t, cm.IsHealthy())

	first, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	second, err := cm.GetContainer(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
	assert.True(t, cm.IsHealthy())

	require.NoError(t, cm.Cleanup())
	assert.True(t, first.closed)
	assert.False(t, cm.IsHealthy())
}

func TestConnectionManager_FailedBuildNotCached(t *testing.T) {
	attempts := 0
	cm := NewConnectionManager(func(ctx context.Context, cfg *config.Config) (*fakeContainer, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("dynamodb unreachable")
		}
		return &fakeContainer{}, nil
	}).WithConfigLoader(func() (*config.Config, error) {
		return &config.Config{}, nil
	})

	_, err := cm.GetContainer(context.Background())
	assert.Error(t, err)

	c, err := cm.GetContainer(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, 2, attempts)
}

func TestConnectionManager_ConfigError(t *testing.T) {
	cm := NewConnectionManager(func(ctx context.Context, cfg *config.Config) (*fakeContainer, error) {
		t.Fatal("build must not run when configuration fails")
		return nil, nil
	}).WithConfigLoader(func() (*config.Config, error) {
		return nil, errors.New("bad driver")
	})

	_, err := cm.GetContainer(context.Background())
	assert.EqualError(t, err, "bad driver")
}
