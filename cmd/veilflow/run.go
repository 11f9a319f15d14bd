package main

import (
	"context"
	"fmt"
	"time"

	cli "github.com/urfave/cli/v3"
	"github.com/veildoc/veilflow/pkg/cmd"
	"github.com/veildoc/veilflow/pkg/log"
	"github.com/veildoc/veilflow/pkg/models"
	"github.com/veildoc/veilflow/pkg/services"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Run a workflow graph from a file or template",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Workflow JSON file, or template:<id>",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Run store URL (file path, redis:// or postgres://)",
				Value:   "./data/runs",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.DurationFlag{
				Name:  "node-timeout",
				Usage: "Per-node computation timeout (0 disables)",
				Value: 30 * time.Second,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			return runWorkflow(ctx, command)
		},
	}
}

func runWorkflow(ctx context.Context, command *cli.Command) error {
	logger := log.WithModule("cli")

	workflow, err := loadWorkflow(command.String("file"))
	if err != nil {
		return err
	}

	registry := cmd.NewRegistry(logger)

	store, err := cmd.NewRunStore(ctx, logger, command.String("database-url"))
	if err != nil {
		return err
	}

	defer func() {
		err := store.Close(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to close run store", "error", err)
		}
	}()

	runner := services.NewRunner(logger, registry,
		services.WithRunStore(store),
		services.WithNodeTimeout(command.Duration("node-timeout")),
	)

	run, err := runner.Run(ctx, workflow)
	if err != nil {
		if graphErr, ok := services.AsGraphError(err); ok {
			for _, violation := range graphErr.Messages() {
				logger.ErrorContext(ctx, "Graph violation", "violation", violation)
			}
		}

		return err
	}

	err = printJSON(run)
	if err != nil {
		return err
	}

	if run.Result.Status == models.RunStatusError {
		return fmt.Errorf("run %s finished with node errors", run.ID)
	}

	return nil
}
