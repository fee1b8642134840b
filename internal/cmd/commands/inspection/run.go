package inspection

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
	"github.com/accqsure/accqsure-go/pkg/accqsure"
)

type RunCommand struct {
	*base.Command

	flagConn           base.ConnectionFlags
	flagID             string
	flagName           string
	flagType           string
	flagDocumentTypeID string
	flagDocID          string
	flagManifestID     string
}

func (c *RunCommand) Synopsis() string {
	return "Run an inspection and wait for it to finish"
}

func (c *RunCommand) Help() string {
	return `Usage: accqsure inspection run -id=<id> [options]

  This command starts an inspection's server-side task and polls until
  it finishes, fails, or the polling budget is exhausted.

  Instead of -id, pass -name, -type, -document-type-id, and -doc-id to
  create a new inspection and run it in one step.` +
		c.Flags().Help()
}

func (c *RunCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("run", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagID, "id", "",
		"Existing inspection id to run.",
	)
	f.StringVar(
		&c.flagName, "name", "",
		"Name for a new inspection.",
	)
	f.StringVar(
		&c.flagType, "type", accqsure.InspectionTypePreliminary,
		"Inspection type, preliminary or effective.",
	)
	f.StringVar(
		&c.flagDocumentTypeID, "document-type-id", "",
		"Document type for a new inspection.",
	)
	f.StringVar(
		&c.flagDocID, "doc-id", "",
		"Controlled document id for a new inspection.",
	)
	f.StringVar(
		&c.flagManifestID, "manifest-id", "",
		"Manifest for a new inspection. The document type's manifest is used when unset.",
	)

	return f
}

func (c *RunCommand) validate() error {
	if c.flagID != "" {
		return nil
	}

	var result *multierror.Error
	if c.flagName == "" {
		result = multierror.Append(result, fmt.Errorf("name flag is required when id is not set"))
	}
	if c.flagDocumentTypeID == "" {
		result = multierror.Append(result, fmt.Errorf("document-type-id flag is required when id is not set"))
	}
	if c.flagDocID == "" {
		result = multierror.Append(result, fmt.Errorf("doc-id flag is required when id is not set"))
	}
	if c.flagType != accqsure.InspectionTypePreliminary && c.flagType != accqsure.InspectionTypeEffective {
		result = multierror.Append(result, fmt.Errorf("type must be %q or %q",
			accqsure.InspectionTypePreliminary, accqsure.InspectionTypeEffective))
	}
	return result.ErrorOrNil()
}

func (c *RunCommand) Run(args []string) int {
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

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()

	var ins *accqsure.Inspection
	if c.flagID != "" {
		ins, err = client.Inspections.Get(ctx, c.flagID)
		if err != nil {
			ui.Error(fmt.Sprintf("error fetching inspection: %v", err))
			return 1
		}
	} else {
		ins, err = client.Inspections.Create(ctx, accqsure.CreateInspectionInput{
			Name:           c.flagName,
			Type:           c.flagType,
			DocumentTypeID: c.flagDocumentTypeID,
			ManifestID:     c.flagManifestID,
			DocID:          c.flagDocID,
		})
		if err != nil {
			ui.Error(fmt.Sprintf("error creating inspection: %v", err))
			return 1
		}
		ui.Info(fmt.Sprintf("created inspection %s (%s)", ins.Name, ins.EntityID))
	}

	ui.Info(fmt.Sprintf("running inspection %s", ins.EntityID))
	result, err := ins.Run(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error running inspection: %v", err))
		return 1
	}

	ui.Info("inspection finished")
	if result != nil {
		ui.Output(fmt.Sprintf("%v", result))
	}
	return 0
}
