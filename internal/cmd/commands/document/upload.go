package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
	"github.com/accqsure/accqsure-go/pkg/accqsure"
)

type UploadCommand struct {
	*base.Command

	flagConn           base.ConnectionFlags
	flagFile           string
	flagDocumentTypeID string
	flagDocID          string
	flagName           string
}

func (c *UploadCommand) Synopsis() string {
	return "Upload a file as a new document"
}

func (c *UploadCommand) Help() string {
	return `Usage: accqsure document upload -file=<path> -document-type-id=<id> -doc-id=<id> [options]

  This command converts a local file to markdown, registers a new
  document, and uploads the converted contents.` +
		c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("upload", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagFile, "file", "",
		"(Required) Path to the file to upload.",
	)
	f.StringVar(
		&c.flagDocumentTypeID, "document-type-id", "",
		"(Required) Document type for the new document.",
	)
	f.StringVar(
		&c.flagDocID, "doc-id", "",
		"(Required) Controlled document identifier, e.g. SOP-001.",
	)
	f.StringVar(
		&c.flagName, "name", "",
		"Display name. Defaults to the file name without extension.",
	)

	return f
}

func (c *UploadCommand) validate() error {
	var result *multierror.Error
	if c.flagFile == "" {
		result = multierror.Append(result, fmt.Errorf("file flag is required"))
	}
	if c.flagDocumentTypeID == "" {
		result = multierror.Append(result, fmt.Errorf("document-type-id flag is required"))
	}
	if c.flagDocID == "" {
		result = multierror.Append(result, fmt.Errorf("doc-id flag is required"))
	}
	return result.ErrorOrNil()
}

func (c *UploadCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if err := c.validate(); err != nil {
		ui.Error(err.Error())
		return 1
	}

	contents, err := accqsure.PrepareDocumentContents(c.flagFile)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading file: %v", err))
		return 1
	}

	name := c.flagName
	if name == "" {
		name = contents.Title
	}

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()

	ui.Info(fmt.Sprintf("converting %s to markdown", c.flagFile))
	markdown, err := client.Documents.MarkdownConvert(ctx, contents.Title, string(contents.Type), contents.Base64Contents)
	if err != nil {
		ui.Error(fmt.Sprintf("error converting file: %v", err))
		return 1
	}

	doc, err := client.Documents.Create(ctx, accqsure.CreateDocumentInput{
		DocumentTypeID: c.flagDocumentTypeID,
		Name:           name,
		DocID:          c.flagDocID,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating document: %v", err))
		return 1
	}

	if err := doc.SetContents(ctx, contents.Title+".md", markdown); err != nil {
		ui.Error(fmt.Sprintf("error uploading document contents: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("uploaded document %s (%s)", doc.Name, doc.EntityID))
	return 0
}
