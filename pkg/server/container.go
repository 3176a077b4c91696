package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"event-handlers-api/internal/adapters/messaging"
	"event-handlers-api/internal/adapters/storage"
	"event-handlers-api/internal/config"
	"event-handlers-api/internal/handlers"
	"event-handlers-api/internal/observability/metrics"
	"event-handlers-api/internal/repositories"
	dynamorepo "event-handlers-api/internal/repositories/dynamodb"
	redisrepo "event-handlers-api/internal/repositories/redis"
	sqliterepo "event-handlers-api/internal/repositories/sqlite"
	"event-handlers-api/internal/services"
	"event-handlers-api/pkg/lambda"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Metrics  *metrics.Metrics
	Services *services.ServiceContainer
	Routers  map[string]*lambda.Router

	ObjectStorage storage.ObjectStorage
	Publisher     messaging.Publisher

	// Internal dependencies
	awsConfig    *aws.Config
	db           *sql.DB
	redisClients map[string]*goredis.Client
	closers      []io.Closer
}

// NewContainer creates a new dependency injection container. It is built
// once per process and treated as immutable afterwards.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:  cfg,
		Logger:  NewLogger(cfg.Log),
		Metrics: metrics.NewMetrics("event_handlers"),
	}

	deps, err := c.buildDependencies(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	serviceContainer, err := services.NewServiceContainer(deps, &services.ServiceConfig{
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Region:      cfg.AWS.Region,
		TopicARN:    cfg.Publisher.TopicARN,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	c.Services = serviceContainer
	c.ObjectStorage = deps.Storage
	c.Publisher = deps.Publisher
	c.Routers = handlers.NewRouters(serviceContainer, c.Logger, c.Metrics)

	c.Logger.WithFields(logrus.Fields{
		"environment":  cfg.Environment,
		"state_store":  cfg.StateStore.Driver,
		"object_store": cfg.ObjectStore.Driver,
		"publisher":    cfg.Publisher.Driver,
		"mode":         config.GetDeploymentMode(),
	}).Info("Container initialized")

	return c, nil
}

// Router returns the router for a function name
func (c *Container) Router(function string) (*lambda.Router, error) {
	r, ok := c.Routers[function]
	if !ok {
		return nil, fmt.Errorf("unknown function %q", function)
	}
	return r, nil
}

func (c *Container) buildDependencies(ctx context.Context) (*services.Dependencies, error) {
	deps := &services.Dependencies{
		Logger:  c.Logger,
		Metrics: c.Metrics,
	}

	var err error
	if deps.ProcessedData, err = c.newRepository(ctx, c.Config.Tables.ProcessedData); err != nil {
		return nil, err
	}
	if deps.Notifications, err = c.newRepository(ctx, c.Config.Tables.Notifications); err != nil {
		return nil, err
	}
	if deps.Users, err = c.newRepository(ctx, c.Config.Tables.Users); err != nil {
		return nil, err
	}
	if deps.Storage, err = c.newObjectStorage(ctx); err != nil {
		return nil, err
	}
	if deps.Publisher, err = c.newPublisher(ctx); err != nil {
		return nil, err
	}

	return deps, nil
}

func (c *Container) newRepository(ctx context.Context, table string) (repositories.RecordRepository, error) {
	switch c.Config.StateStore.Driver {
	case repositories.DriverMemory:
		return repositories.NewMemoryRecordRepository(table), nil

	case repositories.DriverSQLite:
		if c.db == nil {
			db, err := sqliterepo.Open(c.Config.StateStore.SQLitePath)
			if err != nil {
				return nil, fmt.Errorf("failed to open sqlite state store: %w", err)
			}
			c.db = db
			c.closers = append(c.closers, db)
		}
		return sqliterepo.NewRecordRepository(ctx, c.db, table, c.Logger)

	case repositories.DriverDynamoDB:
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(*awsCfg, func(o *dynamodb.Options) {
			if c.Config.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(c.Config.AWS.EndpointURL)
			}
		})
		return dynamorepo.NewRecordRepository(client, table, c.Logger), nil

	case repositories.DriverRedis:
		client, err := c.redis(ctx, c.Config.StateStore.RedisURL)
		if err != nil {
			return nil, err
		}
		return redisrepo.NewRecordRepository(client, table, c.Logger), nil

	default:
		return nil, fmt.Errorf("unsupported state store driver: %s", c.Config.StateStore.Driver)
	}
}

func (c *Container) newObjectStorage(ctx context.Context) (storage.ObjectStorage, error) {
	var s3Client storage.S3API
	if c.Config.ObjectStore.Driver == string(storage.StorageTypeS3) {
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		s3Client = s3.NewFromConfig(*awsCfg, func(o *s3.Options) {
			if c.Config.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(c.Config.AWS.EndpointURL)
				o.UsePathStyle = true
			}
		})
	}

	return storage.NewFactory(s3Client).Create(&storage.StorageConfig{
		Type:     c.Config.ObjectStore.Driver,
		BasePath: c.Config.ObjectStore.LocalPath,
		Region:   c.Config.AWS.Region,
	})
}

func (c *Container) newPublisher(ctx context.Context) (messaging.Publisher, error) {
	switch c.Config.Publisher.Driver {
	case messaging.DriverMemory:
		return messaging.NewMemoryPublisher(), nil

	case messaging.DriverSNS:
		awsCfg, err := c.aws(ctx)
		if err != nil {
			return nil, err
		}
		client := sns.NewFromConfig(*awsCfg, func(o *sns.Options) {
			if c.Config.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(c.Config.AWS.EndpointURL)
			}
		})
		return messaging.NewSNSPublisher(client), nil

	case messaging.DriverRedis:
		client, err := c.redis(ctx, c.Config.Publisher.RedisURL)
		if err != nil {
			return nil, err
		}
		return messaging.NewRedisPublisher(client, c.Config.Publisher.RedisChannel), nil

	default:
		return nil, fmt.Errorf("unsupported publisher driver: %s", c.Config.Publisher.Driver)
	}
}

// aws loads the shared AWS configuration on first use
func (c *Container) aws(ctx context.Context) (*aws.Config, error) {
	if c.awsConfig != nil {
		return c.awsConfig, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	c.awsConfig = &awsCfg
	return c.awsConfig, nil
}

// redis connects on first use of each url; the state store and publisher
// share a client when they point at the same server
func (c *Container) redis(ctx context.Context, url string) (*goredis.Client, error) {
	if client, ok := c.redisClients[url]; ok {
		return client, nil
	}
	client, err := redisrepo.NewClient(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if c.redisClients == nil {
		c.redisClients = make(map[string]*goredis.Client)
	}
	c.redisClients[url] = client
	c.closers = append(c.closers, client)
	return client, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	c.db = nil
	c.redisClients = nil

	if len(errs) > 0 {
		return fmt.Errorf("failed to close container: %w", errors.Join(errs...))
	}
	return nil
}
