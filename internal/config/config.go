// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// FIPS endpoint modes. In auto mode FIPS endpoints are enabled for regions
// where the archival producer deploys them (us-* and ca-*).
const (
	FIPSAuto     = "auto"
	FIPSEnabled  = "true"
	FIPSDisabled = "false"
)

// Config holds all application configuration.
type Config struct {
	// AWSRegion is the region used for the object store and key service
	// clients. The -r/--region CLI flag overrides it.
	AWSRegion string

	// AWSUseFIPSEndpoint controls FIPS endpoint usage: "auto", "true" or "false".
	AWSUseFIPSEndpoint string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		AWSRegion:          env.GetString("AWS_REGION", "us-east-1"),
		AWSUseFIPSEndpoint: env.GetString("AWS_USE_FIPS_ENDPOINT", FIPSAuto),
		LogLevel:           env.GetString("LOG_LEVEL", "info"),
	}
}

// UseFIPS reports whether FIPS endpoints should be used for the given region.
// In auto mode this matches the producer's deployment policy: FIPS endpoints
// exist for us-* and ca-* regions only.
func (c *Config) UseFIPS(region string) bool {
	switch c.AWSUseFIPSEndpoint {
	case FIPSEnabled:
		return true
	case FIPSDisabled:
		return false
	default:
		return strings.HasPrefix(region, "us") || strings.HasPrefix(region, "ca")
	}
}

// loadDotEnv attempts to load a .env file from the current directory or any parent directory.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}

	for {
		envFile := filepath.Join(dir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
