package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type RemoveCommand struct {
	*base.Command

	flagConn base.ConnectionFlags
	flagID   string
}

func (c *RemoveCommand) Synopsis() string {
	return "Delete a document"
}

func (c *RemoveCommand) Help() string {
	return `Usage: accqsure document remove -id=<id> [options]

  This command deletes a document.` +
		c.Flags().Help()
}

func (c *RemoveCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("remove", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagID, "id", "",
		"(Required) Document id.",
	)

	return f
}

func (c *RemoveCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagID == "" {
		ui.Error("id flag is required")
		return 1
	}

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	if err := client.Documents.Remove(context.Background(), c.flagID); err != nil {
		ui.Error(fmt.Sprintf("error removing document: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("removed document %s", c.flagID))
	return 0
}
