package cmd

import (
	"context"

	"github.com/samber/lo"

	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/model"
	"github.com/witctl/witctl/internal/tables"
	"github.com/witctl/witctl/internal/tfs"
)

type collectionsFlags struct{}

var collectionsCmd = &model.ExecutableCommand[collectionsFlags]{
	Usage:        "collections",
	Short:        "List the team project collections on the server",
	Run:          runCollections,
	RequiresAuth: true,
}

func runCollections(ctx context.Context, _ collectionsFlags) error {
	collections, err := tfs.FromContext(ctx).Collections(ctx)
	if err != nil {
		return err
	}

	logger := log.From(ctx)
	if len(collections) == 0 {
		logger.Info("no project collections found")
		return nil
	}

	rows := [][]string{{"Name", "Id", "Url"}}
	rows = append(rows, lo.Map(collections, func(c tfs.Collection, _ int) []string {
		return []string{c.Name, c.ID, c.URL}
	})...)

	logger.PrintlnUnstyled(tables.Render(rows))
	return nil
}
