package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"event-handlers-api/internal/models"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

const (
	healthServiceName = "health-check"

	// invocationBudgetMs is the function timeout the uptime estimate is derived from
	invocationBudgetMs = 300000
	// defaultRemainingMs is assumed when the invocation carries no deadline
	defaultRemainingMs = 30000
	defaultMemoryMB    = 256
)

// HealthReport is the body returned by the health endpoint
type HealthReport struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Environment string         `json:"environment"`
	Version     string         `json:"version"`
	Service     string         `json:"service"`
	Uptime      string         `json:"uptime"`
	Details     *HealthDetails `json:"details,omitempty"`
}

// HealthDetails is the optional runtime enrichment
type HealthDetails struct {
	Memory  MemoryDetails  `json:"memory"`
	Runtime RuntimeDetails `json:"runtime"`
	Region  string         `json:"region"`
}

type MemoryDetails struct {
	LimitMB int    `json:"limit_mb"`
	Unit    string `json:"unit"`
}

type RuntimeDetails struct {
	GoVersion       string `json:"go_version"`
	FunctionName    string `json:"function_name"`
	FunctionVersion string `json:"function_version"`
}

// RuntimeInfo describes the hosting function
type RuntimeInfo struct {
	MemoryLimitMB   int
	FunctionName    string
	FunctionVersion string
}

// RuntimeInfoProvider returns information about the hosting runtime
type RuntimeInfoProvider func(ctx context.Context) (*RuntimeInfo, error)

// LambdaRuntimeInfo reads the Lambda environment, substituting defaults for
// anything the runtime does not expose
func LambdaRuntimeInfo(ctx context.Context) (*RuntimeInfo, error) {
	info := &RuntimeInfo{
		MemoryLimitMB:   lambdacontext.MemoryLimitInMB,
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
	}
	if info.MemoryLimitMB <= 0 {
		info.MemoryLimitMB = defaultMemoryMB
	}
	if info.FunctionName == "" {
		info.FunctionName = "unknown"
	}
	if info.FunctionVersion == "" {
		info.FunctionVersion = "unknown"
	}
	return info, nil
}

// healthService implements the HealthService interface
type healthService struct {
	config *ServiceConfig
	deps   *Dependencies
}

// NewHealthService creates a new health service instance
func NewHealthService(config *ServiceConfig, deps *Dependencies) HealthService {
	if config == nil {
		config = &ServiceConfig{}
	}
	return &healthService{config: config, deps: deps.withDefaults()}
}

// Check always reports healthy. Details are best-effort: a failing runtime
// provider only drops the details section.
func (s *healthService) Check(ctx context.Context, includeDetails bool) *HealthReport {
	report := &HealthReport{
		Status:      "healthy",
		Timestamp:   models.FormatTimestamp(s.deps.Now()),
		Environment: orDefault(s.config.Environment, "unknown"),
		Version:     orDefault(s.config.Version, "1.0.0"),
		Service:     healthServiceName,
		Uptime:      formatUptime(remainingMillis(ctx, s.deps.Now())),
	}

	if includeDetails {
		details, err := s.details(ctx)
		if err != nil {
			s.deps.Logger.WithError(err).Warn("Health details unavailable")
		} else {
			report.Details = details
		}
	}

	return report
}

func (s *healthService) details(ctx context.Context) (details *HealthDetails, err error) {
	defer func() {
		if r := recover(); r != nil {
			details, err = nil, fmt.Errorf("runtime info provider panicked: %v", r)
		}
	}()

	info, err := s.deps.Runtime(ctx)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("runtime info provider returned nothing")
	}

	return &HealthDetails{
		Memory: MemoryDetails{LimitMB: info.MemoryLimitMB, Unit: "MB"},
		Runtime: RuntimeDetails{
			GoVersion:       runtime.Version(),
			FunctionName:    info.FunctionName,
			FunctionVersion: info.FunctionVersion,
		},
		Region: orDefault(s.config.Region, "us-east-1"),
	}, nil
}

func remainingMillis(ctx context.Context, now time.Time) int64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultRemainingMs
	}
	return deadline.Sub(now).Milliseconds()
}

// formatUptime estimates uptime from the remaining invocation budget
func formatUptime(remainingMs int64) string {
	return fmt.Sprintf("%.2fs", float64(invocationBudgetMs-remainingMs)/1000)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
