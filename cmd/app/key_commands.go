package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cipherbox/cmd/app/commands"
	"github.com/allisson/cipherbox/internal/app"
	"github.com/allisson/cipherbox/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-encryption-key",
			Usage: "Generate a new ENCRYPTION_KEY for AES encryption",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "Wrap the key with KMS (e.g., base64key://, gcpkms://projects/.../cryptoKeys/..., awskms:///alias/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateEncryptionKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
