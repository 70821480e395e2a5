package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/witctl/witctl/internal/tfs"
)

func TestFilterQueries(t *testing.T) {
	t.Parallel()

	queries := []tfs.QueryDefinition{
		{Path: "Shared Queries/Active Bugs", Type: "flat"},
		{Path: "Shared Queries/Feature Tree", Type: "tree"},
		{Path: "My Queries/Linked Items", Type: "oneHop"},
	}

	tests := []struct {
		name      string
		queryType string
		wantPaths []string
	}{
		{
			name:      "all keeps every query",
			queryType: "all",
			wantPaths: []string{"Shared Queries/Active Bugs", "Shared Queries/Feature Tree", "My Queries/Linked Items"},
		},
		{
			name:      "empty keeps every query",
			queryType: "",
			wantPaths: []string{"Shared Queries/Active Bugs", "Shared Queries/Feature Tree", "My Queries/Linked Items"},
		},
		{
			name:      "flat keeps only flat queries",
			queryType: "flat",
			wantPaths: []string{"Shared Queries/Active Bugs"},
		},
		{
			name:      "oneHop keeps only one-hop queries",
			queryType: "oneHop",
			wantPaths: []string{"My Queries/Linked Items"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := filterQueries(queries, tt.queryType)

			paths := make([]string, 0, len(got))
			for _, q := range got {
				paths = append(paths, q.Path)
			}
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}
