package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
	"github.com/veildoc/veilflow/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "veilflow",
		Usage:                 "Validate and run VeilFlow workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			log.Setup(command.String("log-level"))

			return ctx, nil
		},
		Commands: []*cli.Command{
			runCommand(),
			validateCommand(),
			capabilitiesCommand(),
			templatesCommand(),
			scheduleCommand(),
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		log.WithModule("cli").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
