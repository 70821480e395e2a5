package cmd

import (
	"context"
	"fmt"

	"github.com/witctl/witctl/internal/bulkedit"
	"github.com/witctl/witctl/internal/charm/styles"
	"github.com/witctl/witctl/internal/interactivity"
	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/model"
	"github.com/witctl/witctl/internal/model/flag"
	"github.com/witctl/witctl/internal/tfs"
	"github.com/witctl/witctl/internal/utils"
)

var workItemsCmd = &model.CommandGroup{
	Usage:   "workitems",
	Short:   "Operate on the work items of a project",
	Aliases: []string{"wi"},
	Commands: []model.Command{
		workItemsBulkEditCmd,
	},
}

type bulkEditFlags struct {
	Project      string `json:"project"`
	WorkItemType string `json:"type"`
	Field        string `json:"field"`
	Value        string `json:"value"`
	Wiql         string `json:"wiql"`
	DryRun       bool   `json:"dry-run"`
}

var workItemsBulkEditCmd = &model.ExecutableCommand[bulkEditFlags]{
	Usage: "bulk-edit",
	Short: "Set a field value across the work items of a project",
	Long: `Runs a flat query (built from --project and --type, or supplied via --wiql),
then writes the given field value to every matching work item not already
carrying it. Items are edited one at a time; per-item failures are reported at
the end without aborting the run.`,
	Run:          runBulkEdit,
	RequiresAuth: true,
	PreRun:       requireProject(func(f *bulkEditFlags) *string { return &f.Project }),
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "project",
			Shorthand:   "p",
			Description: "the team project whose work items to edit (defaults to the configured project)",
		},
		flag.StringFlag{
			Name:        "type",
			Shorthand:   "T",
			Description: "only edit work items of this type, e.g. Bug",
		},
		flag.StringFlag{
			Name:        "field",
			Shorthand:   "f",
			Description: "the reference name of the field to set, e.g. Microsoft.VSTS.Common.Severity",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "value",
			Shorthand:   "v",
			Description: "the value to write",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "wiql",
			Description: "a flat WIQL query selecting the work items to edit, overriding --project/--type",
		},
		flag.BooleanFlag{
			Name:        "dry-run",
			Description: "report what would change without writing anything",
		},
	},
}

func runBulkEdit(ctx context.Context, flags bulkEditFlags) error {
	stop := func() {}
	if utils.IsInteractive() {
		stop = interactivity.StartSpinner("Editing work items...")
	}

	summary, err := bulkedit.Run(ctx, tfs.FromContext(ctx), bulkedit.Params{
		Project:      flags.Project,
		WorkItemType: flags.WorkItemType,
		FieldRef:     flags.Field,
		Value:        flags.Value,
		Wiql:         flags.Wiql,
		DryRun:       flags.DryRun,
	})
	stop()
	if err != nil {
		return err
	}

	logger := log.From(ctx)

	heading := fmt.Sprintf("%d work items matched", summary.Matched)
	if flags.DryRun {
		heading += " (dry run)"
	}
	logger.Println(styles.RenderSuccessMessage(
		heading,
		fmt.Sprintf("Edited: %d", summary.Edited),
		fmt.Sprintf("Skipped (already set): %d", summary.Skipped),
		fmt.Sprintf("Failed: %d", len(summary.Failed)),
	))

	for _, failure := range summary.Failed {
		logger.Warnf("work item %d: %s", failure.ID, failure.Err)
	}

	return nil
}
