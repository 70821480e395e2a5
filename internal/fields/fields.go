package fields

// FieldRecord is the minimal identity of a field definition: the stable,
// locale-independent reference name and the display name it currently carries
// on one side of a comparison.
type FieldRecord struct {
	ReferenceName string `json:"referenceName" yaml:"referenceName"`
	Name          string `json:"name" yaml:"name"`
}

// FieldDetails is the full fixed-shape field definition as reported by the
// tracking service.
type FieldDetails struct {
	ReferenceName string `json:"referenceName" yaml:"referenceName"`
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	Usage         string `json:"usage,omitempty" yaml:"usage,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	ReadOnly      bool   `json:"readOnly" yaml:"readOnly"`
	CanSortBy     bool   `json:"canSortBy" yaml:"canSortBy"`
	IsQueryable   bool   `json:"isQueryable" yaml:"isQueryable"`
	IsIdentity    bool   `json:"isIdentity" yaml:"isIdentity"`
	IsPicklist    bool   `json:"isPicklist" yaml:"isPicklist"`
	IsDeleted     bool   `json:"isDeleted" yaml:"isDeleted"`
}

func (d FieldDetails) Record() FieldRecord {
	return FieldRecord{ReferenceName: d.ReferenceName, Name: d.Name}
}

// Records projects a detailed field list down to the identity pairs the merge
// operates on.
func Records(details []FieldDetails) []FieldRecord {
	records := make([]FieldRecord, len(details))
	for i, d := range details {
		records[i] = d.Record()
	}
	return records
}
