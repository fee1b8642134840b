package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type GetCommand struct {
	*base.Command

	flagConn     base.ConnectionFlags
	flagID       string
	flagContents bool
}

func (c *GetCommand) Synopsis() string {
	return "Show a document"
}

func (c *GetCommand) Help() string {
	return `Usage: accqsure document get -id=<id> [options]

  This command fetches a document and prints its fields. With -contents
  the document's uploaded content is printed instead.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagID, "id", "",
		"(Required) Document id.",
	)
	f.BoolVar(
		&c.flagContents, "contents", false,
		"Print the document's uploaded contents.",
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

	ctx := context.Background()

	doc, err := client.Documents.Get(ctx, c.flagID)
	if err != nil {
		ui.Error(fmt.Sprintf("error fetching document: %v", err))
		return 1
	}

	if c.flagContents {
		contents, err := doc.GetContents(ctx)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching document contents: %v", err))
			return 1
		}
		switch v := contents.(type) {
		case string:
			ui.Output(v)
		case []byte:
			ui.Output(string(v))
		default:
			ui.Output(fmt.Sprintf("%v", v))
		}
		return 0
	}

	ui.Output(fmt.Sprintf("ID:               %s", doc.EntityID))
	ui.Output(fmt.Sprintf("Name:             %s", doc.Name))
	ui.Output(fmt.Sprintf("Doc ID:           %s", doc.DocID))
	ui.Output(fmt.Sprintf("Status:           %s", doc.Status))
	ui.Output(fmt.Sprintf("Document type ID: %s", doc.DocumentTypeID))
	ui.Output(fmt.Sprintf("Content ID:       %s", doc.ContentID))
	ui.Output(fmt.Sprintf("Created at:       %s", doc.CreatedAt))
	ui.Output(fmt.Sprintf("Updated at:       %s", doc.UpdatedAt))
	return 0
}
