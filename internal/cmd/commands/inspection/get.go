package inspection

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type GetCommand struct {
	*base.Command

	flagConn base.ConnectionFlags
	flagID   string
}

func (c *GetCommand) Synopsis() string {
	return "Show an inspection"
}

func (c *GetCommand) Help() string {
	return `Usage: accqsure inspection get -id=<id> [options]

  This command fetches an inspection and prints its fields.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagID, "id", "",
		"(Required) Inspection id.",
	)

	return f
}

func (c *GetCommand) Run(args []string) int {
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

	ins, err := client.Inspections.Get(context.Background(), c.flagID)
	if err != nil {
		ui.Error(fmt.Sprintf("error fetching inspection: %v", err))
		return 1
	}

	ui.Output(fmt.Sprintf("ID:               %s", ins.EntityID))
	ui.Output(fmt.Sprintf("Name:             %s", ins.Name))
	ui.Output(fmt.Sprintf("Type:             %s", ins.Type))
	ui.Output(fmt.Sprintf("Status:           %s", ins.Status))
	ui.Output(fmt.Sprintf("Document type ID: %s", ins.DocumentTypeID))
	ui.Output(fmt.Sprintf("Manifest ID:      %s", ins.ManifestID))
	ui.Output(fmt.Sprintf("Created at:       %s", ins.CreatedAt))
	ui.Output(fmt.Sprintf("Updated at:       %s", ins.UpdatedAt))
	return 0
}
