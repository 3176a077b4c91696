package lambda

import (
	"context"
	"io"
	"sync"
	"time"

	"event-handlers-api/internal/config"
)

// BuildFunc constructs a process-wide container from configuration
type BuildFunc[T io.Closer] func(ctx context.Context, cfg *config.Config) (T, error)

// ConnectionManager builds a container lazily on the first invocation and
// reuses it for every later invocation of the same process
type ConnectionManager[T io.Closer] struct {
	build       BuildFunc[T]
	loadConfig  func() (*config.Config, error)
	container   T
	lastUsed    time.Time
	mu          sync.Mutex
	initialized bool
}

// NewConnectionManager creates a manager that builds its container with build
func NewConnectionManager[T io.Closer](build BuildFunc[T]) *ConnectionManager[T] {
	return &ConnectionManager[T]{
		build:      build,
		loadConfig: config.GetOptimizedConfig,
	}
}

// WithConfigLoader replaces the configuration loader
func (cm *ConnectionManager[T]) WithConfigLoader(load func() (*config.Config, error)) *ConnectionManager[T] {
	cm.loadConfig = load
	return cm
}

// GetContainer returns the container, building it on first use. A failed
// build is not cached, so the next invocation tries again.
func (cm *ConnectionManager[T]) GetContainer(ctx context.Context) (T, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.initialized {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	var zero T
	cfg, err := cm.loadConfig()
	if err != nil {
		return zero, err
	}

	container, err := cm.build(ctx, cfg)
	if err != nil {
		return zero, err
	}

	cm.container = container
	cm.lastUsed = time.Now()
	cm.initialized = true
	return container, nil
}

// IsHealthy reports whether the container is built and was used in the last five minutes
func (cm *ConnectionManager[T]) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		return false
	}
	return time.Since(cm.lastUsed) < 5*time.Minute
}

// Cleanup closes the container. The next GetContainer builds a new one.
func (cm *ConnectionManager[T]) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !cm.initialized {
		return nil
	}

	var zero T
	err := cm.container.Close()
	cm.container = zero
	cm.initialized = false
	return err
}
