package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "us-east-1", cfg.AWSRegion)
				assert.Equal(t, FIPSAuto, cfg.AWSUseFIPSEndpoint)
				assert.Equal(t, "info", cfg.LogLevel)
			},
		},
		{
			name: "load custom configuration",
			envVars: map[string]string{
				"AWS_REGION":            "eu-west-1",
				"AWS_USE_FIPS_ENDPOINT": FIPSDisabled,
				"LOG_LEVEL":             "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "eu-west-1", cfg.AWSRegion)
				assert.Equal(t, FIPSDisabled, cfg.AWSUseFIPSEndpoint)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestConfig_UseFIPS(t *testing.T) {
	tests := []struct {
		name   string
		mode   string
		region string
		want   bool
	}{
		{"auto enables for us regions", FIPSAuto, "us-east-1", true},
		{"auto enables for gov regions", FIPSAuto, "us-gov-west-1", true},
		{"auto enables for ca regions", FIPSAuto, "ca-central-1", true},
		{"auto disables for eu regions", FIPSAuto, "eu-west-1", false},
		{"auto disables for ap regions", FIPSAuto, "ap-southeast-2", false},
		{"explicit true overrides region", FIPSEnabled, "eu-west-1", true},
		{"explicit false overrides region", FIPSDisabled, "us-east-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AWSUseFIPSEndpoint: tt.mode}
			assert.Equal(t, tt.want, cfg.UseFIPS(tt.region))
		})
	}
}
