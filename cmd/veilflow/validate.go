package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"github.com/veildoc/veilflow/pkg/cmd"
	"github.com/veildoc/veilflow/pkg/log"
	"github.com/veildoc/veilflow/pkg/services"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a workflow graph without running it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Workflow JSON file, or template:<id>",
				Required: true,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			return validateWorkflow(ctx, command)
		},
	}
}

func validateWorkflow(ctx context.Context, command *cli.Command) error {
	logger := log.WithModule("cli")

	workflow, err := loadWorkflow(command.String("file"))
	if err != nil {
		return err
	}

	registry := cmd.NewRegistry(logger)
	runner := services.NewRunner(logger, registry)

	violations := runner.Validate(workflow.Nodes, workflow.Edges)
	violations = append(violations, runner.ValidateParams(workflow.Nodes)...)

	if len(violations) == 0 {
		logger.InfoContext(ctx, "Workflow graph is valid",
			"workflow_name", workflow.Name,
			"nodes", len(workflow.Nodes),
			"edges", len(workflow.Edges))

		return nil
	}

	for _, violation := range violations {
		logger.ErrorContext(ctx, "Graph violation", "violation", violation.Error())
	}

	return fmt.Errorf("workflow graph has %d violation(s)", len(violations))
}
