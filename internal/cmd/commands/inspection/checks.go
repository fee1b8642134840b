package inspection

import (
	"context"
	"flag"
	"fmt"

	"github.com/accqsure/accqsure-go/internal/cmd/base"
)

type ChecksCommand struct {
	*base.Command

	flagConn         base.ConnectionFlags
	flagID           string
	flagSection      string
	flagCompliant    bool
	flagNonCompliant bool
	flagLimit        int
	flagStartKey     string
}

func (c *ChecksCommand) Synopsis() string {
	return "List an inspection's check findings"
}

func (c *ChecksCommand) Help() string {
	return `Usage: accqsure inspection checks -id=<id> [options]

  This command lists the check findings recorded for an inspection,
  optionally filtered by section or compliance.` +
		c.Flags().Help()
}

func (c *ChecksCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("checks", flag.ExitOnError))

	c.flagConn.Register(f)
	f.StringVar(
		&c.flagID, "id", "",
		"(Required) Inspection id.",
	)
	f.StringVar(
		&c.flagSection, "section", "",
		"Only show checks for this section.",
	)
	f.BoolVar(
		&c.flagCompliant, "compliant", false,
		"Only show compliant checks.",
	)
	f.BoolVar(
		&c.flagNonCompliant, "non-compliant", false,
		"Only show non-compliant checks.",
	)
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

func (c *ChecksCommand) Run(args []string) int {
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
	if c.flagCompliant && c.flagNonCompliant {
		ui.Error("compliant and non-compliant flags are mutually exclusive")
		return 1
	}

	var compliant *bool
	if c.flagCompliant {
		v := true
		compliant = &v
	} else if c.flagNonCompliant {
		v := false
		compliant = &v
	}

	client, err := c.Client(c.flagConn.CredentialsFile, c.flagConn.ConfigDir, c.flagConn.APIEndpoint)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}

	ctx := context.Background()

	ins, err := client.Inspections.Get(ctx, c.flagID)
	if err != nil {
		ui.Error(fmt.Sprintf("error fetching inspection: %v", err))
		return 1
	}

	checks, lastKey, err := ins.ListChecks(ctx, compliant, c.flagSection, c.flagLimit, c.flagStartKey)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing checks: %v", err))
		return 1
	}

	for _, check := range checks {
		status := "pending"
		if check.Compliant != nil {
			if *check.Compliant {
				status = "compliant"
			} else {
				status = "non-compliant"
			}
		}
		ui.Output(fmt.Sprintf("%s\t%s\t%s\t%s", check.EntityID, status, check.Section, check.Name))
	}
	if lastKey != "" {
		ui.Info(fmt.Sprintf("more results available, next start-key: %s", lastKey))
	}
	return 0
}
