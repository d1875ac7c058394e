// Package app provides a dependency injection container for assembling the
// decrypt pipeline components.
package app

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awskms "github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/archivebot/decrypt-s3-object/internal/config"
	envelopeService "github.com/archivebot/decrypt-s3-object/internal/envelope/service"
	"github.com/archivebot/decrypt-s3-object/internal/errors"
	"github.com/archivebot/decrypt-s3-object/internal/kms"
	"github.com/archivebot/decrypt-s3-object/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	awsCfg aws.Config

	// Pipeline stages
	objectStore store.ObjectStore
	keyService  kms.KeyService
	decryptor   *envelopeService.Decryptor

	// Initialization flags for thread-safety
	loggerInit      sync.Once
	awsCfgInit      sync.Once
	objectStoreInit sync.Once
	keyServiceInit  sync.Once
	decryptorInit   sync.Once
	initErrors      map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
// Log output goes to stderr so decrypted data on stdout pipelines stays clean.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// AWSConfig returns the shared AWS client configuration.
// Credentials come from the ambient environment (env vars, shared config,
// instance roles); this tool never manages credential acquisition itself.
func (c *Container) AWSConfig(ctx context.Context) (aws.Config, error) {
	c.awsCfgInit.Do(func() {
		awsCfg, err := c.initAWSConfig(ctx)
		if err != nil {
			c.initErrors["awsConfig"] = err
			return
		}
		c.awsCfg = awsCfg
	})
	if storedErr, exists := c.initErrors["awsConfig"]; exists {
		return aws.Config{}, storedErr
	}
	return c.awsCfg, nil
}

// ObjectStore returns the object store used to fetch encrypted objects.
func (c *Container) ObjectStore(ctx context.Context) (store.ObjectStore, error) {
	c.objectStoreInit.Do(func() {
		awsCfg, err := c.AWSConfig(ctx)
		if err != nil {
			c.initErrors["objectStore"] = err
			return
		}
		c.objectStore = store.NewS3ObjectStore(s3.NewFromConfig(awsCfg))
	})
	if storedErr, exists := c.initErrors["objectStore"]; exists {
		return nil, storedErr
	}
	return c.objectStore, nil
}

// KeyService returns the key service used to unwrap data keys.
func (c *Container) KeyService(ctx context.Context) (kms.KeyService, error) {
	c.keyServiceInit.Do(func() {
		awsCfg, err := c.AWSConfig(ctx)
		if err != nil {
			c.initErrors["keyService"] = err
			return
		}
		c.keyService = kms.NewAWSKeyService(awskms.NewFromConfig(awsCfg))
	})
	if storedErr, exists := c.initErrors["keyService"]; exists {
		return nil, storedErr
	}
	return c.keyService, nil
}

// Decryptor returns the envelope decryptor.
func (c *Container) Decryptor() *envelopeService.Decryptor {
	c.decryptorInit.Do(func() {
		c.decryptor = envelopeService.NewDecryptor(envelopeService.NewAEADManager())
	})
	return c.decryptor
}

// initLogger creates the logger based on the configured log level.
func (c *Container) initLogger() *slog.Logger {
	var level slog.Level
	switch c.config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// initAWSConfig loads the shared AWS configuration for the configured region,
// enabling FIPS endpoints per the config policy.
func (c *Container) initAWSConfig(ctx context.Context) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.config.AWSRegion),
	}
	if c.config.UseFIPS(c.config.AWSRegion) {
		loadOpts = append(loadOpts, awsconfig.WithUseFIPSEndpoint(aws.FIPSEndpointStateEnabled))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "failed to load AWS configuration")
	}
	return awsCfg, nil
}
