package document

import (
	"github.com/mitchellh/cli"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage documents"
}

func (c *Command) Help() string {
	return `Usage: accqsure document <subcommand> [options] [args]

  This command groups subcommands for working with documents.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
