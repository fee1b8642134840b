package document

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
	"github.com/accqsure/accqsure-go/pkg/accqsure"
)

type ConvertCommand struct {
	*base.Command

	flagConn   base.ConnectionFlags
	flagFile   string
	flagOutput string
}

func (c *ConvertCommand) Synopsis() string {
	return "Convert a file to markdown"
}

func (c *ConvertCommand) Help() string {
	return `Usage: accqsure document convert -file=<path> [options]

  This command converts a local file to markdown using the service's
  conversion endpoint and prints the result, or writes it to -output.` +
		c.Flags().Help()
}

func (c *ConvertCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("convert", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagFile, "file", "",
		"(Required) Path to the file to convert.",
	)
	f.StringVar(
		&c.flagOutput, "output", "",
		"Write the markdown to this path instead of stdout.",
	)

	return f
}

func (c *ConvertCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagFile == "" {
		ui.Error("file flag is required")
		return 1
	}

	contents, err := accqsure.PrepareDocumentContents(c.flagFile)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading file: %v", err))
		return 1
	}

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	markdown, err := client.Documents.MarkdownConvert(context.Background(), contents.Title, string(contents.Type), contents.Base64Contents)
	if err != nil {
		ui.Error(fmt.Sprintf("error converting file: %v", err))
		return 1
	}

	if c.flagOutput != "" {
		if err := os.WriteFile(c.flagOutput, []byte(markdown), 0o644); err != nil {
			ui.Error(fmt.Sprintf("error writing %s: %v", c.flagOutput, err))
			return 1
		}
		ui.Info(fmt.Sprintf("wrote markdown to %s", c.flagOutput))
		return 0
	}

	ui.Output(markdown)
	return 0
}
