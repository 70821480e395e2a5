package tfs

// Fixed-shape records returned by the client. The vendor SDK hands back
// pointer-heavy generated structs; these are the flattened forms the rest of
// the tool works with.

type Collection struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

type Project struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	State       string `json:"state,omitempty" yaml:"state,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

type QueryDefinition struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	IsPublic bool   `json:"isPublic" yaml:"isPublic"`
	Wiql     string `json:"wiql,omitempty" yaml:"wiql,omitempty"`
}
