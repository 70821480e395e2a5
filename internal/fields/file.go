package fields

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is an exported field list: the full field definitions plus where
// and when they came from. YAML by default, JSON when the file extension says
// so.
type Document struct {
	ServerURL  string         `json:"serverUrl,omitempty" yaml:"serverUrl,omitempty"`
	Project    string         `json:"project,omitempty" yaml:"project,omitempty"`
	ExportedAt time.Time      `json:"exportedAt,omitempty" yaml:"exportedAt,omitempty"`
	Fields     []FieldDetails `json:"fields" yaml:"fields"`
}

func (d Document) Records() []FieldRecord {
	return Records(d.Fields)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// LoadDocument reads an exported field list from a YAML or JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading field list %s", path)
	}

	var doc Document
	if isJSON(path) {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing field list %s", path)
	}

	return &doc, nil
}

// SaveDocument writes an exported field list to a YAML or JSON file.
func SaveDocument(path string, doc Document) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return errors.Wrap(err, "marshalling field list")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing field list %s", path)
	}

	return nil
}
