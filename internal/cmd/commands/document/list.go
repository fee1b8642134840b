package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	flagConn           base.ConnectionFlags
	flagDocumentTypeID string
	flagLimit          int
	flagStartKey       string
	flagAll            bool
}

func (c *ListCommand) Synopsis() string {
	return "List documents of a document type"
}

func (c *ListCommand) Help() string {
	return `Usage: accqsure document list -document-type-id=<id> [options]

  This command lists documents belonging to a document type. By default
  one page is printed along with the cursor for the next page; use -all
  to drain every page.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("list", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagDocumentTypeID, "document-type-id", "",
		"(Required) Document type to list documents for.",
	)
	f.IntVar(
		&c.flagLimit, "limit", 0,
		"Page size. The server default is used when unset.",
	)
	f.StringVar(
		&c.flagStartKey, "start-key", "",
		"Cursor from a previous page.",
	)
	f.BoolVar(
		&c.flagAll, "all", false,
		"Fetch every page instead of a single one.",
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

	if c.flagDocumentTypeID == "" {
		ui.Error("document-type-id flag is required")
		return 1
	}

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()

	if c.flagAll {
		docs, err := client.Documents.ListAll(ctx, c.flagDocumentTypeID)
		if err != nil {
			ui.Error(fmt.Sprintf("error listing documents: %v", err))
			return 1
		}
		for _, doc := range docs {
			ui.Output(fmt.Sprintf("%s\t%s\t%s\t%s", doc.EntityID, doc.DocID, doc.Status, doc.Name))
		}
		return 0
	}

	docs, lastKey, err := client.Documents.List(ctx, c.flagDocumentTypeID, c.flagLimit, c.flagStartKey)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing documents: %v", err))
		return 1
	}
	for _, doc := range docs {
		ui.Output(fmt.Sprintf("%s\t%s\t%s\t%s", doc.EntityID, doc.DocID, doc.Status, doc.Name))
	}
	if lastKey != "" {
		ui.Info(fmt.Sprintf("more results available, next start-key: %s", lastKey))
	}
	return 0
}
