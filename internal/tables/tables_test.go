package tables_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/witctl/witctl/internal/tables"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{
			name: "simple table with matching number of columns",
			rows: [][]string{
				{"Reference Name", "Source", "Target"},
				{"System.Title", "Title", "Title"},
				{"Custom.Sev", "Severity", "Sev"},
			},
			want: `
| Reference Name | Source   | Target |
| -------------- | -------- | ------ |
| System.Title   | Title    | Title  |
| Custom.Sev     | Severity | Sev    |`,
		},
		{
			name: "short rows padded with empty cells",
			rows: [][]string{
				{"Name", "Path"},
				{"Active Bugs"},
			},
			want: `
| Name        | Path |
| ----------- | ---- |
| Active Bugs |      |`,
		},
		{
			name: "pipes escaped",
			rows: [][]string{
				{"Name"},
				{"a|b"},
			},
			want: `
| Name |
| ---- |
| a\|b |`,
		},
		{
			name: "escaped pipes count toward the column width",
			rows: [][]string{
				{"Name"},
				{"a|b|c"},
			},
			want: `
| Name    |
| ------- |
| a\|b\|c |`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tables.Render(tt.rows)
			assert.Equal(t, strings.TrimPrefix(tt.want, "\n"), got)
		})
	}
}
