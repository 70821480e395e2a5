package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/witctl/witctl/internal/charm/styles"
	"github.com/witctl/witctl/internal/fields"
	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/model"
	"github.com/witctl/witctl/internal/model/flag"
	"github.com/witctl/witctl/internal/tables"
	"github.com/witctl/witctl/internal/tfs"
	"github.com/witctl/witctl/internal/utils"
)

var fieldsCmd = &model.CommandGroup{
	Usage: "fields",
	Short: "Work with work item field definitions",
	Commands: []model.Command{
		fieldsListCmd,
		fieldsExportCmd,
		fieldsCompareCmd,
	},
}

type fieldsListFlags struct {
	Project string   `json:"project"`
	Refs    []string `json:"refs"`
}

var fieldsListCmd = &model.ExecutableCommand[fieldsListFlags]{
	Usage:        "list",
	Short:        "List the field definitions visible in a project",
	Run:          runFieldsList,
	RequiresAuth: true,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "project",
			Shorthand:   "p",
			Description: "the team project to list fields for (empty for the collection-wide list)",
		},
		flag.StringSliceFlag{
			Name:        "refs",
			Shorthand:   "r",
			Description: "only show fields with these reference names",
		},
	},
}

func runFieldsList(ctx context.Context, flags fieldsListFlags) error {
	defs, err := tfs.FromContext(ctx).Fields(ctx, flags.Project)
	if err != nil {
		return err
	}

	defs = filterFields(defs, flags.Refs)

	logger := log.From(ctx)
	if len(defs) == 0 {
		logger.Info("no field definitions found")
		return nil
	}

	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ReferenceName < defs[j].ReferenceName
	})

	rows := [][]string{{"Reference Name", "Name", "Type", "Usage"}}
	rows = append(rows, lo.Map(defs, func(d fields.FieldDetails, _ int) []string {
		return []string{d.ReferenceName, d.Name, d.Type, d.Usage}
	})...)

	logger.PrintlnUnstyled(tables.Render(rows))
	return nil
}

func filterFields(defs []fields.FieldDetails, refs []string) []fields.FieldDetails {
	if len(refs) == 0 {
		return defs
	}
	return lo.Filter(defs, func(d fields.FieldDetails, _ int) bool {
		return lo.Contains(refs, d.ReferenceName)
	})
}

type fieldsExportFlags struct {
	Project string `json:"project"`
	Out     string `json:"out"`
	Force   bool   `json:"force"`
}

var fieldsExportCmd = &model.ExecutableCommand[fieldsExportFlags]{
	Usage:        "export",
	Short:        "Export the field definitions of a project to a file",
	Long:         "Writes the full field definitions to a YAML or JSON file (chosen by extension) for later comparison with 'witctl fields compare'.",
	Run:          runFieldsExport,
	RequiresAuth: true,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "project",
			Shorthand:   "p",
			Description: "the team project to export fields for (empty for the collection-wide list)",
		},
		flag.StringFlag{
			Name:        "out",
			Shorthand:   "o",
			Description: "the file to write, .yaml or .json",
			Required:    true,
		},
		flag.BooleanFlag{
			Name:        "force",
			Description: "overwrite the output file if it already exists",
		},
	},
}

func runFieldsExport(ctx context.Context, flags fieldsExportFlags) error {
	out := utils.SanitizeFilePath(flags.Out)
	if !flags.Force && utils.FileExists(out) {
		return errors.Errorf("%s already exists: pass --force to overwrite", out)
	}

	client := tfs.FromContext(ctx)

	defs, err := client.Fields(ctx, flags.Project)
	if err != nil {
		return err
	}

	doc := fields.Document{
		ServerURL:  client.CollectionURL(),
		Project:    flags.Project,
		ExportedAt: time.Now().UTC(),
		Fields:     defs,
	}

	if err := fields.SaveDocument(out, doc); err != nil {
		return err
	}

	log.From(ctx).Println(styles.RenderSuccessMessage(
		fmt.Sprintf("Exported %d field definitions", len(defs)),
		out,
	))
	return nil
}

type fieldsCompareFlags struct {
	Source        string `json:"source"`
	Target        string `json:"target"`
	DifferentOnly bool   `json:"different-only"`
	Strict        bool   `json:"strict"`
}

var fieldsCompareCmd = &model.ExecutableCommand[fieldsCompareFlags]{
	Usage: "compare",
	Short: "Compare two exported field lists",
	Long: `Reconciles two exported field lists into one mapping keyed by reference name
and prints it as a three-column table. A '-' marks a field that does not exist
on that side. Target-side duplicates keep the last occurrence; pass --strict
to fail on source-side duplicates instead of silently keeping the last one.`,
	Run: runFieldsCompare,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "source",
			Shorthand:   "s",
			Description: "the exported field list used as the source side",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "target",
			Shorthand:   "t",
			Description: "the exported field list used as the target side",
			Required:    true,
		},
		flag.BooleanFlag{
			Name:        "different-only",
			Shorthand:   "d",
			Description: "only show fields where the two sides disagree",
		},
		flag.BooleanFlag{
			Name:        "strict",
			Description: "fail on duplicate reference names in the source list",
		},
	},
}

func runFieldsCompare(ctx context.Context, flags fieldsCompareFlags) error {
	source, err := fields.LoadDocument(utils.SanitizeFilePath(flags.Source))
	if err != nil {
		return err
	}

	target, err := fields.LoadDocument(utils.SanitizeFilePath(flags.Target))
	if err != nil {
		return err
	}

	merged, err := fields.Merge(source.Records(), target.Records(), fields.MergeOptions{
		DifferentOnly: flags.DifferentOnly,
		Strict:        flags.Strict,
	})
	if err != nil {
		return err
	}

	logger := log.From(ctx)
	if len(merged) == 0 {
		logger.Success("field lists are identical")
		return nil
	}

	logger.PrintlnUnstyled(tables.Render(compareRows(merged)))

	differing := lo.CountBy(merged, func(e fields.MergedEntry) bool { return e.Different() })
	logger.Infof("%d fields compared, %d differing", len(merged), differing)

	return nil
}

// compareRows renders merged entries as table rows sorted by reference name,
// with absent names shown as '-'.
func compareRows(merged []fields.MergedEntry) [][]string {
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ReferenceName < merged[j].ReferenceName
	})

	rows := [][]string{{"Reference Name", "Source Name", "Target Name"}}
	for _, entry := range merged {
		rows = append(rows, []string{
			entry.ReferenceName,
			renderName(entry.SourceName),
			renderName(entry.TargetName),
		})
	}
	return rows
}

func renderName(name *string) string {
	if name == nil {
		return "-"
	}
	return pointer.GetString(name)
}
