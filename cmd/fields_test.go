package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witctl/witctl/internal/fields"
)

func TestCompareRows(t *testing.T) {
	t.Parallel()

	merged := []fields.MergedEntry{
		{ReferenceName: "Custom.Env", TargetName: pointer.To("Environment")},
		{ReferenceName: "System.Title", SourceName: pointer.To("Title"), TargetName: pointer.To("Title")},
		{ReferenceName: "Custom.Severity", SourceName: pointer.To("Severity")},
	}

	rows := compareRows(merged)

	assert.Equal(t, [][]string{
		{"Reference Name", "Source Name", "Target Name"},
		{"Custom.Env", "-", "Environment"},
		{"Custom.Severity", "Severity", "-"},
		{"System.Title", "Title", "Title"},
	}, rows)
}

func TestRenderName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", renderName(nil))
	assert.Equal(t, "Title", renderName(pointer.To("Title")))
	assert.Equal(t, "", renderName(pointer.To("")))
}

func TestFilterFields(t *testing.T) {
	t.Parallel()

	defs := []fields.FieldDetails{
		{ReferenceName: "System.Title", Name: "Title"},
		{ReferenceName: "System.State", Name: "State"},
		{ReferenceName: "Custom.Severity", Name: "Severity"},
	}

	assert.Equal(t, defs, filterFields(defs, nil))

	got := filterFields(defs, []string{"Custom.Severity", "System.Title"})
	assert.Equal(t, []fields.FieldDetails{
		{ReferenceName: "System.Title", Name: "Title"},
		{ReferenceName: "Custom.Severity", Name: "Severity"},
	}, got)

	assert.Empty(t, filterFields(defs, []string{"Custom.Env"}))
}

func TestFieldsExportRefusesOverwrite(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(out, []byte("fields: []\n"), 0o644))

	err := runFieldsExport(context.Background(), fieldsExportFlags{Out: out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
