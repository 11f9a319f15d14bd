package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	cli "github.com/urfave/cli/v3"
	"github.com/veildoc/veilflow/pkg/cmd"
	"github.com/veildoc/veilflow/pkg/log"
	"github.com/veildoc/veilflow/pkg/services"
)

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:    "schedule",
		Aliases: []string{"s"},
		Usage:   "Run a workflow repeatedly on a cron schedule",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Workflow JSON file, or template:<id>",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "cron",
				Usage:    "Standard cron expression (e.g. '*/5 * * * *')",
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
			return scheduleWorkflow(ctx, command)
		},
	}
}

func scheduleWorkflow(ctx context.Context, command *cli.Command) error {
	logger := log.WithModule("scheduler")
	cronExpr := command.String("cron")

	if _, err := cron.ParseStandard(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

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

	violations := runner.Validate(workflow.Nodes, workflow.Edges)
	if len(violations) > 0 {
		return &services.GraphError{Violations: violations}
	}

	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	entryID, err := scheduler.AddFunc(cronExpr, func() {
		run, err := runner.Run(ctx, workflow)
		if err != nil {
			logger.ErrorContext(ctx, "Scheduled run failed", "error", err)

			return
		}

		logger.InfoContext(ctx, "Scheduled run finished",
			"run_id", run.ID,
			"status", run.Result.Status,
			"nodes", len(run.Result.NodeResults))
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	logger.InfoContext(ctx, "Starting scheduler",
		"cron", cronExpr,
		"entry_id", entryID,
		"workflow_name", workflow.Name)

	scheduler.Start()

	<-ctx.Done()

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	return nil
}
