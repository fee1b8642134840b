package base

import (
	"bytes"
	"flag"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/accqsure/accqsure-go/pkg/accqsure"
)

// Command carries the dependencies shared by all CLI commands.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// Client builds an API client from the environment and the standard
// connection flags.
func (c *Command) Client(credentialsFile, configDir, apiEndpoint string) (*accqsure.Client, error) {
	return accqsure.New(accqsure.Config{
		CredentialsFile: credentialsFile,
		ConfigDir:       configDir,
		APIEndpoint:     apiEndpoint,
		Logger:          c.Log,
	})
}

// FlagSet wraps flag.FlagSet so commands can embed flag usage in help
// output.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet creates a new wrapped flag set.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help returns the flag set's usage text, indented for embedding beneath
// a command's help body.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	if buf.Len() == 0 {
		return ""
	}
	return "\n\nOptions:\n\n" + buf.String()
}
