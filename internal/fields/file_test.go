package fields_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witctl/witctl/internal/fields"
)

func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	doc := fields.Document{
		ServerURL:  "https://tfs.example.com/tfs",
		Project:    "Fabrikam",
		ExportedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Fields: []fields.FieldDetails{
			{
				ReferenceName: "System.Title",
				Name:          "Title",
				Type:          "string",
				Usage:         "workItem",
				IsQueryable:   true,
				CanSortBy:     true,
			},
			{
				ReferenceName: "Custom.Severity",
				Name:          "Severity",
				Type:          "string",
				IsPicklist:    true,
			},
		},
	}

	for _, ext := range []string{"yaml", "json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fields."+ext)

			require.NoError(t, fields.SaveDocument(path, doc))

			loaded, err := fields.LoadDocument(path)
			require.NoError(t, err)
			assert.Equal(t, doc, *loaded)
		})
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	t.Parallel()

	_, err := fields.LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDocumentRecords(t *testing.T) {
	t.Parallel()

	doc := fields.Document{
		Fields: []fields.FieldDetails{
			{ReferenceName: "System.Title", Name: "Title", Type: "string"},
			{ReferenceName: "System.State", Name: "State", Type: "string"},
		},
	}

	assert.Equal(t, []fields.FieldRecord{
		{ReferenceName: "System.Title", Name: "Title"},
		{ReferenceName: "System.State", Name: "State"},
	}, doc.Records())
}
