package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"github.com/veildoc/veilflow/pkg/cmd"
	"github.com/veildoc/veilflow/pkg/log"
	"github.com/veildoc/veilflow/pkg/templates"
)

func capabilitiesCommand() *cli.Command {
	return &cli.Command{
		Name:    "capabilities",
		Aliases: []string{"c"},
		Usage:   "List the registered node capabilities",
		Action: func(ctx context.Context, command *cli.Command) error {
			registry := cmd.NewRegistry(log.WithModule("cli"))

			return printJSON(registry.Catalog())
		},
	}
}

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:    "templates",
		Aliases: []string{"t"},
		Usage:   "List workflow templates, or show one by ID",
		Action: func(ctx context.Context, command *cli.Command) error {
			id := command.Args().First()
			if id == "" {
				return printJSON(templates.Catalog())
			}

			template, ok := templates.Lookup(id)
			if !ok {
				return fmt.Errorf("unknown template %q", id)
			}

			return printJSON(template)
		},
	}
}
