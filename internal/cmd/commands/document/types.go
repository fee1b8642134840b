package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type TypesCommand struct {
	*base.Command

	flagConn base.ConnectionFlags
}

func (c *TypesCommand) Synopsis() string {
	return "List document types"
}

func (c *TypesCommand) Help() string {
	return `Usage: accqsure document types [options]

  This command lists the organization's document types.` +
		c.Flags().Help()
}

func (c *TypesCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("types", flag.ExitOnError))

	c.flagConn.Register(f)

	return f
}

func (c *TypesCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	types, err := client.DocumentTypes.List(context.Background())
	if err != nil {
		ui.Error(fmt.Sprintf("error listing document types: %v", err))
		return 1
	}

	for _, dt := range types {
		ui.Output(fmt.Sprintf("%s\t%s\t%d\t%s", dt.EntityID, dt.Code, dt.Level, dt.Name))
	}
	return 0
}
