package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/pinshield/cmd/app/commands"
	"github.com/allisson/pinshield/internal/app"
	"github.com/allisson/pinshield/internal/config"
)

func getPinBlockCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt-pin-block",
			Usage: "Build and encrypt a PIN block under the configured zone key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "pin",
					Required: true,
					Usage:    "PIN (4 to 12 digits)",
				},
				&cli.StringFlag{
					Name:     "pan",
					Required: true,
					Usage:    "Primary account number (13 to 19 digits)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				zoneCipher, err := container.ZoneCipher(ctx)
				if err != nil {
					return err
				}

				codec, err := container.Codec()
				if err != nil {
					return err
				}

				return commands.RunEncryptPinBlock(
					zoneCipher,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("pin"),
					cmd.String("pan"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-pin-block",
			Usage: "Decrypt a PIN block under the configured zone key and recover the PIN",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "block",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Encrypted PIN block in hex",
				},
				&cli.StringFlag{
					Name:     "pan",
					Required: true,
					Usage:    "Primary account number the block was built with",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				zoneCipher, err := container.ZoneCipher(ctx)
				if err != nil {
					return err
				}

				codec, err := container.Codec()
				if err != nil {
					return err
				}

				return commands.RunVerifyPinBlock(
					zoneCipher,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("block"),
					cmd.String("pan"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "wrap-payload",
			Usage: "Encrypt {pin, pan} for a server public key, producing /encrypt input",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "public-key-file",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Path to the server public key PEM (as returned by /public-key)",
				},
				&cli.StringFlag{
					Name:     "pin",
					Required: true,
					Usage:    "PIN (4 to 12 digits)",
				},
				&cli.StringFlag{
					Name:     "pan",
					Required: true,
					Usage:    "Primary account number (13 to 19 digits)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				publicKeyPEM, err := os.ReadFile(cmd.String("public-key-file"))
				if err != nil {
					return fmt.Errorf("failed to read public key file: %w", err)
				}

				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunWrapPayload(
					container.TransportCipher(),
					commands.DefaultIO().Writer,
					publicKeyPEM,
					cmd.String("pin"),
					cmd.String("pan"),
					cmd.String("format"),
				)
			},
		},
	}
}
