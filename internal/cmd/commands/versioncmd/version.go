package versioncmd

import (
	"github.com/accqsure/accqsure-go/internal/cmd/base"
	"github.com/accqsure/accqsure-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the CLI version"
}

func (c *Command) Help() string {
	return `Usage: accqsure version

  This command prints the CLI version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
