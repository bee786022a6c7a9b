package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cipherbox/cmd/app/commands"
	"github.com/allisson/cipherbox/internal/app"
	"github.com/allisson/cipherbox/internal/config"
)

func getCryptoCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "Encrypt text with ENCRYPTION_KEY and print the AES envelope as JSON",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "text",
					Aliases: []string{"t"},
					Usage:   "Text to encrypt (read from stdin when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SymmetricCryptoUseCase()
				if err != nil {
					return err
				}

				return commands.RunEncrypt(ctx, useCase, commands.DefaultIO(), cmd.String("text"))
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt an AES envelope with ENCRYPTION_KEY and print the text as JSON",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "envelope",
					Aliases: []string{"e"},
					Usage:   "Envelope JSON or encrypt output (read from stdin when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.SymmetricCryptoUseCase()
				if err != nil {
					return err
				}

				return commands.RunDecrypt(ctx, useCase, commands.DefaultIO(), cmd.String("envelope"))
			},
		},
	}
}
