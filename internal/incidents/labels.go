package incidents

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

//go:embed labels.yaml
var defaultLabelsYAML []byte

// LabelTable maps ServiceNow enum codes to display labels. It is never
// modified after construction.
type LabelTable struct {
	labels map[string]string
}

// NewLabelTable copies m into a new table.
func NewLabelTable(m map[string]string) LabelTable {
	labels := make(map[string]string, len(m))
	for k, v := range m {
		labels[k] = v
	}
	return LabelTable{labels: labels}
}

// Lookup returns the label for code, or code itself when the table has no
// entry. An empty code gives an empty string.
func (t LabelTable) Lookup(code string) string {
	if code == "" {
		return ""
	}
	if label, ok := t.labels[code]; ok {
		return label
	}
	return code
}

// Len returns the number of entries.
func (t LabelTable) Len() int { return len(t.labels) }

// Codes returns the table's codes in sorted order.
func (t LabelTable) Codes() []string {
	codes := make([]string, 0, len(t.labels))
	for code := range t.labels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Merge returns a new table with overrides applied on top of t.
func (t LabelTable) Merge(overrides map[string]string) LabelTable {
	merged := make(map[string]string, len(t.labels)+len(overrides))
	for k, v := range t.labels {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return LabelTable{labels: merged}
}

// LabelSet groups the tables used to render incidents and node specs.
type LabelSet struct {
	State   LabelTable
	Urgency LabelTable
	Impact  LabelTable
}

type labelsFile struct {
	State   map[string]string `yaml:"state"`
	Urgency map[string]string `yaml:"urgency"`
	Impact  map[string]string `yaml:"impact"`
}

// ParseLabels reads a label set from YAML with state, urgency and impact
// maps.
func ParseLabels(data []byte) (LabelSet, error) {
	var f labelsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return LabelSet{}, fmt.Errorf("parsing labels: %w", err)
	}
	return LabelSet{
		State:   NewLabelTable(f.State),
		Urgency: NewLabelTable(f.Urgency),
		Impact:  NewLabelTable(f.Impact),
	}, nil
}

// DefaultLabels returns the standard ServiceNow incident labels.
func DefaultLabels() LabelSet {
	set, err := ParseLabels(defaultLabelsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded labels: %v", err))
	}
	return set
}

// WithOverrides returns a copy of s with the given entries replacing or
// extending each table.
func (s LabelSet) WithOverrides(state, urgency, impact map[string]string) LabelSet {
	return LabelSet{
		State:   s.State.Merge(state),
		Urgency: s.Urgency.Merge(urgency),
		Impact:  s.Impact.Merge(impact),
	}
}
