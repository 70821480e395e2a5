package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/witctl/witctl/internal/config"
	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/model"
	"github.com/witctl/witctl/internal/model/flag"
	"github.com/witctl/witctl/internal/tables"
	"github.com/witctl/witctl/internal/tfs"
)

type queriesFlags struct {
	Project string `json:"project"`
	Depth   int    `json:"depth"`
	Type    string `json:"type"`
}

var queriesCmd = &model.ExecutableCommand[queriesFlags]{
	Usage:        "queries",
	Short:        "List the work item query definitions of a project",
	Run:          runQueries,
	RequiresAuth: true,
	PreRun:       requireProject(func(f *queriesFlags) *string { return &f.Project }),
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "project",
			Shorthand:   "p",
			Description: "the team project to list queries for (defaults to the configured project)",
		},
		flag.IntFlag{
			Name:         "depth",
			Shorthand:    "d",
			Description:  "how many folder levels to descend into",
			DefaultValue: 2,
		},
		flag.EnumFlag{
			Name:          "type",
			Shorthand:     "t",
			Description:   "only show queries of this type",
			DefaultValue:  "all",
			AllowedValues: []string{"all", "flat", "tree", "oneHop"},
		},
	},
}

func runQueries(ctx context.Context, flags queriesFlags) error {
	queries, err := tfs.FromContext(ctx).Queries(ctx, flags.Project, flags.Depth)
	if err != nil {
		return err
	}

	queries = filterQueries(queries, flags.Type)

	logger := log.From(ctx)
	if len(queries) == 0 {
		logger.Infof("no queries found in project %s", flags.Project)
		return nil
	}

	rows := [][]string{{"Path", "Type", "Public"}}
	rows = append(rows, lo.Map(queries, func(q tfs.QueryDefinition, _ int) []string {
		visibility := "private"
		if q.IsPublic {
			visibility = "public"
		}
		return []string{q.Path, q.Type, visibility}
	})...)

	logger.PrintlnUnstyled(tables.Render(rows))
	return nil
}

func filterQueries(queries []tfs.QueryDefinition, queryType string) []tfs.QueryDefinition {
	if queryType == "" || queryType == "all" {
		return queries
	}
	return lo.Filter(queries, func(q tfs.QueryDefinition, _ int) bool {
		return q.Type == queryType
	})
}

// requireProject backfills the project flag from config and errors when
// neither is set.
func requireProject[F interface{}](get func(*F) *string) func(cmd *cobra.Command, flags *F) error {
	return func(cmd *cobra.Command, flags *F) error {
		project := get(flags)
		if *project == "" {
			*project = config.GetDefaultProject()
		}
		if *project == "" {
			return errors.New("no project given: pass --project or set one with 'witctl auth login'")
		}
		return cmd.Flags().Set("project", *project)
	}
}
