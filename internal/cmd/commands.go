package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
	"github.com/accqsure/accqsure-go/internal/cmd/commands/document"
	"github.com/accqsure/accqsure-go/internal/cmd/commands/inspection"
	"github.com/accqsure/accqsure-go/internal/cmd/commands/versioncmd"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: b}, nil
		},
		"document": func() (cli.Command, error) {
			return &document.Command{Command: b}, nil
		},
		"document list": func() (cli.Command, error) {
			return &document.ListCommand{Command: b}, nil
		},
		"document get": func() (cli.Command, error) {
			return &document.GetCommand{Command: b}, nil
		},
		"document upload": func() (cli.Command, error) {
			return &document.UploadCommand{Command: b}, nil
		},
		"document convert": func() (cli.Command, error) {
			return &document.ConvertCommand{Command: b}, nil
		},
		"document remove": func() (cli.Command, error) {
			return &document.RemoveCommand{Command: b}, nil
		},
		"document types": func() (cli.Command, error) {
			return &document.TypesCommand{Command: b}, nil
		},
		"inspection": func() (cli.Command, error) {
			return &inspection.Command{Command: b}, nil
		},
		"inspection list": func() (cli.Command, error) {
			return &inspection.ListCommand{Command: b}, nil
		},
		"inspection get": func() (cli.Command, error) {
			return &inspection.GetCommand{Command: b}, nil
		},
		"inspection run": func() (cli.Command, error) {
			return &inspection.RunCommand{Command: b}, nil
		},
		"inspection checks": func() (cli.Command, error) {
			return &inspection.ChecksCommand{Command: b}, nil
		},
	}
}
