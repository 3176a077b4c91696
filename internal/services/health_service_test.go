package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_Check(t *testing.T) {
	deps := testDeps()
	deps.Runtime = func(ctx context.Context) (*RuntimeInfo, error) {
		return &RuntimeInfo{MemoryLimitMB: 512, FunctionName: "health", FunctionVersion: "$LATEST"}, nil
	}
	svc := NewHealthService(&ServiceConfig{Environment: "test", Version: "2.0.0", Region: "eu-west-1"}, deps)

	report := svc.Check(context.Background(), false)
	assert.Equal(t, "healthy", report.Status)
	assert.Equal(t, "health-check", report.Service)
	assert.Equal(t, "test", report.Environment)
	assert.Equal(t, "2.0.0", report.Version)
	assert.Equal(t, "270.00s", report.Uptime)
	assert.Nil(t, report.Details)

	detailed := svc.Check(context.Background(), true)
	require.NotNil(t, detailed.Details)
	assert.Equal(t, 512, detailed.Details.Memory.LimitMB)
	assert.Equal(t, "MB", detailed.Details.Memory.Unit)
	assert.Equal(t, "health", detailed.Details.Runtime.FunctionName)
	assert.Equal(t, "eu-west-1", detailed.Details.Region)
}

func TestHealthService_UptimeFromDeadline(t *testing.T) {
	deps := testDeps()
	svc := NewHealthService(nil, deps)

	ctx, cancel := context.WithDeadline(context.Background(), fixedTime.Add(100*time.Second))
	defer cancel()

	assert.Equal(t, "200.00s", svc.Check(ctx, false).Uptime)
}

func TestHealthService_DetailsBestEffort(t *testing.T) {
	tests := []struct {
		name     string
		provider RuntimeInfoProvider
	}{
		{name: "provider error", provider: func(ctx context.Context) (*RuntimeInfo, error) {
			return nil, errors.New("context unavailable")
		}},
		{name: "provider panic", provider: func(ctx context.Context) (*RuntimeInfo, error) {
			panic("nil context")
		}},
		{name: "provider returns nothing", provider: func(ctx context.Context) (*RuntimeInfo, error) {
			return nil, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := testDeps()
			deps.Runtime = tt.provider
			report := NewHealthService(&ServiceConfig{Environment: "test"}, deps).Check(context.Background(), true)

			assert.Equal(t, "healthy", report.Status)
			assert.Nil(t, report.Details)
		})
	}
}

func TestLambdaRuntimeInfo_Defaults(t *testing.T) {
	info, err := LambdaRuntimeInfo(context.Background())
	require.NoError(t, err)
	assert.Greater(t, info.MemoryLimitMB, 0)
	assert.NotEmpty(t, info.FunctionName)
	assert.NotEmpty(t, info.FunctionVersion)
}

func TestNewServiceContainer(t *testing.T) {
	_, err := NewServiceContainer(nil, nil)
	assert.Error(t, err)

	_, err = NewServiceContainer(&Dependencies{ProcessedData: newFaultyRepo()}, nil)
	assert.Error(t, err)
}
