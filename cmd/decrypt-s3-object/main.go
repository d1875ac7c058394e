// Package main provides the entry point for the decrypt-s3-object CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/archivebot/decrypt-s3-object/cmd/decrypt-s3-object/commands"
	"github.com/archivebot/decrypt-s3-object/internal/app"
	"github.com/archivebot/decrypt-s3-object/internal/config"
)

func main() {
	cfg := config.Load()

	cmd := &cli.Command{
		Name:    "decrypt-s3-object",
		Usage:   "Decrypt an envelope-encrypted archival object from S3",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "bucket",
				Aliases:  []string{"b"},
				Required: true,
				Usage:    "S3 bucket name containing the encrypted object",
			},
			&cli.StringFlag{
				Name:     "key",
				Aliases:  []string{"k"},
				Required: true,
				Usage:    "S3 object key (path) to the encrypted object",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    "Output file path for the decrypted plaintext",
			},
			&cli.StringFlag{
				Name:    "region",
				Aliases: []string{"r"},
				Value:   cfg.AWSRegion,
				Usage:   "AWS region",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.AWSRegion = cmd.String("region")
			container := app.NewContainer(cfg)

			objectStore, err := container.ObjectStore(ctx)
			if err != nil {
				return err
			}
			keyService, err := container.KeyService(ctx)
			if err != nil {
				return err
			}

			return commands.RunDecrypt(
				ctx,
				objectStore,
				keyService,
				container.Decryptor(),
				container.Logger(),
				cmd.String("bucket"),
				cmd.String("key"),
				cmd.String("output"),
			)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
