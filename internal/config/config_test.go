package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "staging-processed-data", cfg.Tables.ProcessedData)
	assert.Equal(t, "staging-notifications", cfg.Tables.Notifications)
	assert.Equal(t, "staging-users", cfg.Tables.Users)
	assert.Equal(t, "staging-data-bucket", cfg.ObjectStore.Bucket)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:staging-notifications", cfg.Publisher.TopicARN)
	assert.Equal(t, "memory", cfg.StateStore.Driver)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("USER_TABLE_NAME", "people")
	t.Setenv("STATE_STORE_DRIVER", "SQLite")
	t.Setenv("PUBLISHER_DRIVER", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "people", cfg.Tables.Users)
	assert.Equal(t, "sqlite", cfg.StateStore.Driver)
	assert.Equal(t, "redis", cfg.Publisher.Driver)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("OBJECT_STORE_DRIVER", "ftp")

	_, err := Load()
	assert.Error(t, err)
}

func TestAdaptForServerless(t *testing.T) {
	tests := []struct {
		name          string
		state         string
		wantState     string
		publisher     string
		wantPublisher string
	}{
		{name: "memory promoted", state: "memory", wantState: "dynamodb", publisher: "memory", wantPublisher: "sns"},
		{name: "explicit drivers kept", state: "redis", wantState: "redis", publisher: "redis", wantPublisher: "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				StateStore:  StateStoreConfig{Driver: tt.state},
				ObjectStore: ObjectStoreConfig{Driver: "memory"},
				Publisher:   PublisherConfig{Driver: tt.publisher},
				Log:         LogConfig{Format: "text"},
			}

			adapted := AdaptForServerless(cfg)

			assert.Equal(t, tt.wantState, adapted.StateStore.Driver)
			assert.Equal(t, tt.wantPublisher, adapted.Publisher.Driver)
			assert.Equal(t, "s3", adapted.ObjectStore.Driver)
			assert.Equal(t, "json", adapted.Log.Format)
			assert.Equal(t, tt.state, cfg.StateStore.Driver, "original config must not change")
		})
	}
}

func TestIsLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	assert.False(t, IsLambda())
	assert.Equal(t, "server", GetDeploymentMode())

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "data-processor")
	assert.True(t, IsLambda())
	assert.Equal(t, "serverless", GetDeploymentMode())
}

func TestLoad_RedisURLs(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://state:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis://state:6379/0", cfg.StateStore.RedisURL)
	assert.Equal(t, "redis://state:6379/0", cfg.Publisher.RedisURL)

	t.Setenv("PUBLISHER_REDIS_URL", "redis://bus:6379/1")

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "redis://state:6379/0", cfg.StateStore.RedisURL)
	assert.Equal(t, "redis://bus:6379/1", cfg.Publisher.RedisURL)
}
