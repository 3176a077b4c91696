package config

import "os"

// IsLambda reports whether the process is running inside AWS Lambda
func IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsLambda() {
		return "serverless"
	}
	return "server"
}

// AdaptForServerless returns a copy of cfg with in-process drivers promoted to
// their AWS counterparts and JSON logging enabled. cfg itself is not modified.
func AdaptForServerless(cfg *Config) *Config {
	adapted := *cfg

	if adapted.StateStore.Driver == "memory" {
		adapted.StateStore.Driver = "dynamodb"
	}
	if adapted.ObjectStore.Driver == "memory" {
		adapted.ObjectStore.Driver = "s3"
	}
	if adapted.Publisher.Driver == "memory" {
		adapted.Publisher.Driver = "sns"
	}
	adapted.Log.Format = "json"

	return &adapted
}

// GetOptimizedConfig loads configuration and, when running in Lambda, applies
// the serverless adaptations
func GetOptimizedConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if IsLambda() {
		cfg = AdaptForServerless(cfg)
	}

	return cfg, nil
}
