package inspection

import (
	"github.com/mitchellh/cli"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage inspections"
}

func (c *Command) Help() string {
	return `Usage: accqsure inspection <subcommand> [options] [args]

  This command groups subcommands for working with inspections.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
