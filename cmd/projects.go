package cmd

import (
	"context"

	"github.com/samber/lo"

	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/model"
	"github.com/witctl/witctl/internal/tables"
	"github.com/witctl/witctl/internal/tfs"
)

type projectsFlags struct{}

var projectsCmd = &model.ExecutableCommand[projectsFlags]{
	Usage:        "projects",
	Short:        "List the team projects in the connected collection",
	Run:          runProjects,
	RequiresAuth: true,
}

func runProjects(ctx context.Context, _ projectsFlags) error {
	projects, err := tfs.FromContext(ctx).Projects(ctx)
	if err != nil {
		return err
	}

	logger := log.From(ctx)
	if len(projects) == 0 {
		logger.Info("no team projects found")
		return nil
	}

	rows := [][]string{{"Name", "State", "Description"}}
	rows = append(rows, lo.Map(projects, func(p tfs.Project, _ int) []string {
		return []string{p.Name, p.State, p.Description}
	})...)

	logger.PrintlnUnstyled(tables.Render(rows))
	return nil
}
