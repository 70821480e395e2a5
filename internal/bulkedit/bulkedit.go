package bulkedit

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/witctl/witctl/internal/log"
)

// Service is the slice of the tracking client the editor needs.
type Service interface {
	QueryWorkItemIDs(ctx context.Context, project, wiql string) ([]int, error)
	WorkItemFields(ctx context.Context, ids []int, fieldRef string) (map[int]interface{}, error)
	SetWorkItemField(ctx context.Context, id int, fieldRef string, value interface{}) error
}

type Params struct {
	Project      string
	WorkItemType string
	FieldRef     string
	Value        string
	// Wiql overrides the query built from Project and WorkItemType.
	Wiql   string
	DryRun bool
}

type ItemError struct {
	ID  int
	Err error
}

type Summary struct {
	Matched int
	Edited  int
	Skipped int
	Failed  []ItemError
}

// BuildWiql assembles the flat query used when the caller does not supply one.
func BuildWiql(project, workItemType string) string {
	wiql := "SELECT [System.Id] FROM WorkItems"
	clauses := ""
	if project != "" {
		clauses = fmt.Sprintf("[System.TeamProject] = '%s'", escape(project))
	}
	if workItemType != "" {
		if clauses != "" {
			clauses += " AND "
		}
		clauses += fmt.Sprintf("[System.WorkItemType] = '%s'", escape(workItemType))
	}
	if clauses != "" {
		wiql += " WHERE " + clauses
	}
	return wiql + " ORDER BY [System.Id]"
}

func escape(s string) string {
	out := ""
	for _, r := range s {
		if r == '\'' {
			out += "''"
			continue
		}
		out += string(r)
	}
	return out
}

// Run queries for matching work items and writes the desired field value to
// every item not already carrying it. Writes are sequential; a failed write is
// recorded and the loop continues. The run only fails outright when the query
// or the field read fails, or when every attempted write failed.
func Run(ctx context.Context, svc Service, params Params) (*Summary, error) {
	if params.FieldRef == "" {
		return nil, errors.New("no field reference name given")
	}

	logger := log.From(ctx)

	wiql := params.Wiql
	if wiql == "" {
		wiql = BuildWiql(params.Project, params.WorkItemType)
	}

	ids, err := svc.QueryWorkItemIDs(ctx, params.Project, wiql)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Matched: len(ids)}
	if len(ids) == 0 {
		return summary, nil
	}

	current, err := svc.WorkItemFields(ctx, ids, params.FieldRef)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if value, ok := current[id]; ok && value != nil && fmt.Sprint(value) == params.Value {
			summary.Skipped++
			continue
		}

		if params.DryRun {
			logger.Infof("would set %s on work item %d", params.FieldRef, id)
			summary.Edited++
			continue
		}

		if err := svc.SetWorkItemField(ctx, id, params.FieldRef, params.Value); err != nil {
			logger.Warnf("work item %d: %s", id, err)
			summary.Failed = append(summary.Failed, ItemError{ID: id, Err: err})
			continue
		}
		summary.Edited++
	}

	if summary.Edited == 0 && len(summary.Failed) > 0 {
		return summary, errors.Errorf("all %d attempted edits failed", len(summary.Failed))
	}

	return summary, nil
}
