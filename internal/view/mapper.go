package view

import (
	"fmt"
	"regexp"
	"time"

	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/incidents"
)

const (
	iconSrc          = "servicenow"
	defaultComponent = "servicenow"
	unnamedTitle     = "Unnamed component"
	noDescription    = "No description"

	badgeBackground = "bg-gray-100"
	badgeText       = "text-gray-700"
)

var (
	schemePrefix   = regexp.MustCompile(`^https?://`)
	instanceSuffix = regexp.MustCompile(`\.service-now\.com$`)
)

// Props is the node card view model.
type Props struct {
	IconSrc             string         `json:"iconSrc"`
	CollapsedBackground string         `json:"collapsedBackground"`
	Collapsed           bool           `json:"collapsed"`
	Title               string         `json:"title"`
	EventSections       []EventSection `json:"eventSections,omitempty"`
	Metadata            []MetadataItem `json:"metadata"`
	Specs               []Spec         `json:"specs,omitempty"`
	IncludeEmptyState   bool           `json:"includeEmptyState"`
	EventStateMap       StateMap       `json:"eventStateMap"`
}

// MetadataItem is a single icon + label line under the node title.
type MetadataItem struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Spec is a labelled group of badges describing the node configuration.
type Spec struct {
	Title        string      `json:"title"`
	TooltipTitle string      `json:"tooltipTitle"`
	Values       []SpecValue `json:"values"`
}

type SpecValue struct {
	Badges []Badge `json:"badges"`
}

type Badge struct {
	Label     string `json:"label"`
	BgColor   string `json:"bgColor"`
	TextColor string `json:"textColor"`
}

// EventSection summarises the latest execution on the node card.
type EventSection struct {
	ReceivedAt    *time.Time             `json:"receivedAt,omitempty"`
	EventTitle    string                 `json:"eventTitle"`
	EventSubtitle string                 `json:"eventSubtitle"`
	EventState    incidents.DisplayState `json:"eventState"`
	EventID       string                 `json:"eventId"`
}

// Details is the execution details panel: display label → value.
type Details map[string]any

// IncidentRow is one line of the incident table in Details.
type IncidentRow struct {
	Number           string `json:"number"`
	ShortDescription string `json:"short_description"`
	State            string `json:"state"`
	Urgency          string `json:"urgency"`
	Impact           string `json:"impact"`
	SysID            string `json:"sys_id"`
	SysCreatedOn     string `json:"sys_created_on"`
}

// ErrorDetail is the discriminated error entry in Details.
type ErrorDetail struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

const (
	detailCheckedAt = "Checked at"
	detailIncidents = "Incidents"
	detailError     = "Error"
)

// Options configures a Mapper. Zero values fall back to defaults.
type Options struct {
	Labels     incidents.LabelSet
	Format     Formatter
	Colors     ColorClasses
	StateMap   StateMap
	Triggers   Triggers
	Registries Registries
}

// Mapper maps execution snapshots of the get incidents component to view
// models.
type Mapper struct {
	labels     incidents.LabelSet
	format     Formatter
	colors     ColorClasses
	stateMap   StateMap
	triggers   Triggers
	registries Registries
}

// NewMapper builds a Mapper. The incidents state registry is always
// registered under incidents.ComponentName.
func NewMapper(opts Options) *Mapper {
	m := &Mapper{
		labels:   opts.Labels,
		format:   opts.Format,
		colors:   opts.Colors,
		stateMap: IncidentsStateMap().Merge(opts.StateMap),
		triggers: opts.Triggers,
	}
	if m.labels.State.Len() == 0 && m.labels.Urgency.Len() == 0 && m.labels.Impact.Len() == 0 {
		m.labels = incidents.DefaultLabels()
	}

	m.registries = make(Registries, len(opts.Registries)+1)
	for k, v := range opts.Registries {
		m.registries[k] = v
	}
	m.registries[incidents.ComponentName] = m.StateRegistry()
	return m
}

// StateRegistry returns the state map and classifier for get incidents.
func (m *Mapper) StateRegistry() StateRegistry {
	return StateRegistry{StateMap: m.stateMap, GetState: incidents.Classify}
}

// Labels returns the label tables the mapper renders with.
func (m *Mapper) Labels() incidents.LabelSet { return m.labels }

// Props builds the node card for doc.
func (m *Mapper) Props(doc *execution.Document) Props {
	if doc == nil {
		doc = &execution.Document{}
	}

	componentName := doc.Component.Name
	if componentName == "" {
		componentName = defaultComponent
	}

	latest := doc.Latest()
	props := Props{
		IconSrc:             iconSrc,
		CollapsedBackground: m.colors.BackgroundColorClass(doc.Component.Color),
		Collapsed:           doc.Node.IsCollapsed,
		Title:               title(doc),
		Metadata:            m.metadataList(doc.Node),
		Specs:               m.specs(doc.Node),
		IncludeEmptyState:   latest == nil,
		EventStateMap:       m.stateMapFor(componentName),
	}
	if latest != nil {
		props.EventSections = m.eventSections(doc, latest, componentName)
	}
	return props
}

// Subtitle returns "<n> incidents · <ago>" or "no incidents · <ago>". The
// time part is left out when the execution has no creation time.
func (m *Mapper) Subtitle(exec *execution.Execution) string {
	list := incidents.Incidents(exec)
	count := "no incidents"
	if len(list) > 0 {
		count = fmt.Sprintf("%d incidents", len(list))
	}
	if exec == nil || exec.CreatedAt == nil {
		return count
	}
	return count + " · " + m.format.TimeAgo(*exec.CreatedAt)
}

// ExecutionDetails builds the details panel for exec.
func (m *Mapper) ExecutionDetails(exec *execution.Execution) Details {
	details := Details{}
	if exec == nil {
		return details
	}

	if exec.CreatedAt != nil {
		details[detailCheckedAt] = m.format.CheckedAt(*exec.CreatedAt)
	}

	if rows := m.incidentRows(incidents.Incidents(exec)); len(rows) > 0 {
		details[detailIncidents] = rows
	}

	if incidents.HasError(exec) {
		details[detailError] = ErrorDetail{Type: "error", Message: exec.ResultMessage}
	}

	return details
}

func (m *Mapper) incidentRows(list []incidents.Record) []IncidentRow {
	if len(list) == 0 {
		return nil
	}
	rows := make([]IncidentRow, len(list))
	for i, rec := range list {
		desc := rec.ShortDescription
		if desc == "" {
			desc = noDescription
		}
		rows[i] = IncidentRow{
			Number:           rec.Number,
			ShortDescription: desc,
			State:            m.labels.State.Lookup(rec.State),
			Urgency:          m.labels.Urgency.Lookup(rec.Urgency),
			Impact:           m.labels.Impact.Lookup(rec.Impact),
			SysID:            rec.SysID,
			SysCreatedOn:     rec.SysCreatedOn,
		}
	}
	return rows
}

func title(doc *execution.Document) string {
	for _, t := range []string{doc.Node.Name, doc.Component.Label, doc.Component.Name} {
		if t != "" {
			return t
		}
	}
	return unnamedTitle
}

func (m *Mapper) metadataList(node execution.Node) []MetadataItem {
	metadata := []MetadataItem{}
	md := incidents.DecodeNodeMetadata(node.Metadata)
	if md.InstanceURL != "" {
		name := schemePrefix.ReplaceAllString(md.InstanceURL, "")
		name = instanceSuffix.ReplaceAllString(name, "")
		metadata = append(metadata, MetadataItem{Icon: "globe", Label: name})
	}
	return metadata
}

func (m *Mapper) specs(node execution.Node) []Spec {
	cfg := incidents.DecodeConfiguration(node.Configuration)
	md := incidents.DecodeNodeMetadata(node.Metadata)

	var specs []Spec
	if cfg.AssignmentGroup != "" {
		label := cfg.AssignmentGroup
		if md.AssignmentGroup != nil && md.AssignmentGroup.Name != "" {
			label = md.AssignmentGroup.Name
		}
		specs = append(specs, badgeSpec("Group", "Assignment Group", label))
	}
	if cfg.State != "" {
		specs = append(specs, badgeSpec("State", "State Filter", m.labels.State.Lookup(cfg.State)))
	}
	if cfg.Urgency != "" {
		specs = append(specs, badgeSpec("Urgency", "Urgency Filter", m.labels.Urgency.Lookup(cfg.Urgency)))
	}
	return specs
}

func badgeSpec(title, tooltip, label string) Spec {
	return Spec{
		Title:        title,
		TooltipTitle: tooltip,
		Values: []SpecValue{{
			Badges: []Badge{{Label: label, BgColor: badgeBackground, TextColor: badgeText}},
		}},
	}
}

func (m *Mapper) eventSections(doc *execution.Document, exec *execution.Execution, componentName string) []EventSection {
	var triggerComponent string
	if exec.RootEvent != nil {
		if n := doc.FindNode(exec.RootEvent.NodeID); n != nil {
			triggerComponent = n.ComponentName
		}
	}
	eventTitle, _ := m.triggers.Lookup(triggerComponent).TitleAndSubtitle(exec.RootEvent)

	section := EventSection{
		ReceivedAt:    exec.CreatedAt,
		EventTitle:    eventTitle,
		EventSubtitle: m.Subtitle(exec),
		EventState:    m.stateFor(componentName)(exec),
	}
	if exec.RootEvent != nil {
		section.EventID = exec.RootEvent.ID
	}
	return []EventSection{section}
}

func (m *Mapper) stateMapFor(componentName string) StateMap {
	if reg, ok := m.registries.Lookup(componentName); ok && reg.StateMap != nil {
		return reg.StateMap
	}
	return m.stateMap
}

func (m *Mapper) stateFor(componentName string) StateFunc {
	if reg, ok := m.registries.Lookup(componentName); ok && reg.GetState != nil {
		return reg.GetState
	}
	return incidents.Classify
}
