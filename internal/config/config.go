package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is built once per
// process by Load and must not be mutated afterwards.
type Config struct {
	Environment string
	Version     string
	Port        string
	RateLimit   RateLimitConfig
	Log         LogConfig
	AWS         AWSConfig
	Tables      TableConfig
	StateStore  StateStoreConfig
	ObjectStore ObjectStoreConfig
	Publisher   PublisherConfig
}

// RateLimitConfig holds local server rate limiting; RPS <= 0 disables it
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// AWSConfig holds AWS client configuration
type AWSConfig struct {
	Region      string
	EndpointURL string
}

// TableConfig holds the state table names, one per function
type TableConfig struct {
	ProcessedData string
	Notifications string
	Users         string
}

// StateStoreConfig selects and configures the key-value state store
type StateStoreConfig struct {
	Driver     string // memory, sqlite, dynamodb or redis
	SQLitePath string
	RedisURL   string
}

// ObjectStoreConfig selects and configures object metadata lookup
type ObjectStoreConfig struct {
	Driver    string // memory, local or s3
	Bucket    string
	LocalPath string
}

// PublisherConfig selects and configures the outbound messaging collaborator
type PublisherConfig struct {
	Driver       string // memory, sns or redis
	TopicARN     string
	RedisURL     string
	RedisChannel string
}

var (
	stateDrivers     = []string{"memory", "sqlite", "dynamodb", "redis"}
	objectDrivers    = []string{"memory", "local", "s3"}
	publisherDrivers = []string{"memory", "sns", "redis"}
)

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := v.GetString("ENVIRONMENT")
	v.SetDefault("PROCESSED_DATA_TABLE_NAME", env+"-processed-data")
	v.SetDefault("NOTIFICATION_TABLE_NAME", env+"-notifications")
	v.SetDefault("USER_TABLE_NAME", env+"-users")
	v.SetDefault("DATA_BUCKET_NAME", env+"-data-bucket")
	v.SetDefault("SNS_TOPIC_ARN", fmt.Sprintf("arn:aws:sns:%s:123456789012:%s-notifications", v.GetString("AWS_REGION"), env))

	config := &Config{
		Environment: env,
		Version:     v.GetString("SERVICE_VERSION"),
		Port:        v.GetString("PORT"),
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		AWS: AWSConfig{
			Region:      v.GetString("AWS_REGION"),
			EndpointURL: v.GetString("AWS_ENDPOINT_URL"),
		},
		Tables: TableConfig{
			ProcessedData: v.GetString("PROCESSED_DATA_TABLE_NAME"),
			Notifications: v.GetString("NOTIFICATION_TABLE_NAME"),
			Users:         v.GetString("USER_TABLE_NAME"),
		},
		StateStore: StateStoreConfig{
			Driver:     strings.ToLower(v.GetString("STATE_STORE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_PATH"),
			RedisURL:   v.GetString("REDIS_URL"),
		},
		ObjectStore: ObjectStoreConfig{
			Driver:    strings.ToLower(v.GetString("OBJECT_STORE_DRIVER")),
			Bucket:    v.GetString("DATA_BUCKET_NAME"),
			LocalPath: v.GetString("OBJECT_STORE_PATH"),
		},
		Publisher: PublisherConfig{
			Driver:       strings.ToLower(v.GetString("PUBLISHER_DRIVER")),
			TopicARN:     v.GetString("SNS_TOPIC_ARN"),
			RedisURL:     publisherRedisURL(v),
			RedisChannel: v.GetString("REDIS_CHANNEL"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("STATE_STORE_DRIVER", "memory")
	v.SetDefault("SQLITE_PATH", "./data/state.db")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("REDIS_CHANNEL", "notifications")
	v.SetDefault("OBJECT_STORE_DRIVER", "memory")
	v.SetDefault("OBJECT_STORE_PATH", "./data/objects")
	v.SetDefault("PUBLISHER_DRIVER", "memory")
}

// Validate checks that every driver name is supported
func (c *Config) Validate() error {
	if !contains(stateDrivers, c.StateStore.Driver) {
		return fmt.Errorf("unsupported state store driver %q", c.StateStore.Driver)
	}
	if !contains(objectDrivers, c.ObjectStore.Driver) {
		return fmt.Errorf("unsupported object store driver %q", c.ObjectStore.Driver)
	}
	if !contains(publisherDrivers, c.Publisher.Driver) {
		return fmt.Errorf("unsupported publisher driver %q", c.Publisher.Driver)
	}
	return nil
}

// publisherRedisURL falls back to the state store's REDIS_URL when
// PUBLISHER_REDIS_URL is unset
func publisherRedisURL(v *viper.Viper) string {
	if url := v.GetString("PUBLISHER_REDIS_URL"); url != "" {
		return url
	}
	return v.GetString("REDIS_URL")
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
