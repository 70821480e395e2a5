package bulkedit_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witctl/witctl/internal/bulkedit"
)

type fakeService struct {
	items map[int]interface{}

	failWrites map[int]error
	queryErr   error

	writes []int
}

func (f *fakeService) QueryWorkItemIDs(_ context.Context, _, _ string) ([]int, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	var ids []int
	for id := range f.items {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeService) WorkItemFields(_ context.Context, ids []int, _ string) (map[int]interface{}, error) {
	values := make(map[int]interface{}, len(ids))
	for _, id := range ids {
		values[id] = f.items[id]
	}
	return values, nil
}

func (f *fakeService) SetWorkItemField(_ context.Context, id int, _ string, value interface{}) error {
	if err, ok := f.failWrites[id]; ok {
		return err
	}

	f.writes = append(f.writes, id)
	f.items[id] = value
	return nil
}

func TestBuildWiql(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		project      string
		workItemType string
		want         string
	}{
		{
			name:         "project and type",
			project:      "Fabrikam",
			workItemType: "Bug",
			want:         "SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = 'Fabrikam' AND [System.WorkItemType] = 'Bug' ORDER BY [System.Id]",
		},
		{
			name:    "project only",
			project: "Fabrikam",
			want:    "SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = 'Fabrikam' ORDER BY [System.Id]",
		},
		{
			name: "no filters",
			want: "SELECT [System.Id] FROM WorkItems ORDER BY [System.Id]",
		},
		{
			name:    "quotes escaped",
			project: "Fab'rikam",
			want:    "SELECT [System.Id] FROM WorkItems WHERE [System.TeamProject] = 'Fab''rikam' ORDER BY [System.Id]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bulkedit.BuildWiql(tt.project, tt.workItemType))
		})
	}
}

func TestRunEditsOnlyItemsNotAtValue(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		items: map[int]interface{}{
			1: "2 - Medium",
			2: "1 - High",
			3: nil,
		},
	}

	summary, err := bulkedit.Run(context.Background(), svc, bulkedit.Params{
		Project:      "Fabrikam",
		WorkItemType: "Bug",
		FieldRef:     "Microsoft.VSTS.Common.Severity",
		Value:        "1 - High",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 2, summary.Edited)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Failed)

	assert.ElementsMatch(t, []int{1, 3}, svc.writes)
	assert.Equal(t, "1 - High", svc.items[1])
	assert.Equal(t, "1 - High", svc.items[3])
}

func TestRunDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		items: map[int]interface{}{
			1: "old",
			2: "new",
		},
	}

	summary, err := bulkedit.Run(context.Background(), svc, bulkedit.Params{
		FieldRef: "Custom.Field",
		Value:    "new",
		DryRun:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Edited)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, svc.writes)
	assert.Equal(t, "old", svc.items[1])
}

func TestRunCollectsPerItemFailures(t *testing.T) {
	t.Parallel()

	svc := &fakeService{
		items: map[int]interface{}{
			1: "old",
			2: "old",
		},
		failWrites: map[int]error{
			2: errors.New("field is read-only"),
		},
	}

	summary, err := bulkedit.Run(context.Background(), svc, bulkedit.Params{
		FieldRef: "Custom.Field",
		Value:    "new",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Edited)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, 2, summary.Failed[0].ID)
}

func TestRunFailsWhenEveryWriteFails(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("no permission")
	svc := &fakeService{
		items:      map[int]interface{}{1: "old"},
		failWrites: map[int]error{1: writeErr},
	}

	summary, err := bulkedit.Run(context.Background(), svc, bulkedit.Params{
		FieldRef: "Custom.Field",
		Value:    "new",
	})
	require.Error(t, err)
	require.Len(t, summary.Failed, 1)
}

func TestRunQueryFailureIsFatal(t *testing.T) {
	t.Parallel()

	svc := &fakeService{queryErr: errors.New("query not allowed")}

	_, err := bulkedit.Run(context.Background(), svc, bulkedit.Params{
		FieldRef: "Custom.Field",
		Value:    "new",
	})
	assert.Error(t, err)
}

func TestRunRequiresFieldRef(t *testing.T) {
	t.Parallel()

	_, err := bulkedit.Run(context.Background(), &fakeService{}, bulkedit.Params{Value: "x"})
	assert.Error(t, err)
}
