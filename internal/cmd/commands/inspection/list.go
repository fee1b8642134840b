package inspection

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	flagConn     base.ConnectionFlags
	flagLimit    int
	flagStartKey string
}

func (c *ListCommand) Synopsis() string {
	return "List inspections"
}

func (c *ListCommand) Help() string {
	return `Usage: accqsure inspection list [options]

  This command lists one page of inspections and prints the cursor for
  the next page when more are available.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("list", flag.ExitOnError))

	c.flagConn.Register(f)
	f.IntVar(
		&c.flagLimit, "limit", 0,
		"Page size. The server default is used when unset.",
	)
	f.StringVar(
		&c.flagStartKey, "start-key", "",
		"Cursor from a previous page.",
	)

	return f
}

func (c *ListCommand) Run(args []string) int {
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

	inspections, lastKey, err := client.Inspections.List(context.Background(), c.flagLimit, c.flagStartKey)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing inspections: %v", err))
		return 1
	}

	for _, ins := range inspections {
		ui.Output(fmt.Sprintf("%s\t%s\t%s\t%s", ins.EntityID, ins.Type, ins.Status, ins.Name))
	}
	if lastKey != "" {
		ui.Info(fmt.Sprintf("more results available, next start-key: %s", lastKey))
	}
	return 0
}
