package view

import (
	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/incidents"
)

// Rendering is everything the canvas shows for one node.
type Rendering struct {
	Props    Props                  `json:"props"`
	State    incidents.DisplayState `json:"state"`
	Rule     string                 `json:"rule"`
	Channel  string                 `json:"channel,omitempty"`
	Subtitle string                 `json:"subtitle,omitempty"`
	Details  Details                `json:"details,omitempty"`
	Count    int                    `json:"count"`
}

// Build maps a whole document. Subtitle and details describe the latest
// execution and are empty when there is none.
func (m *Mapper) Build(doc *execution.Document) Rendering {
	r := Rendering{Props: m.Props(doc)}

	latest := doc.Latest()
	r.State, r.Rule = incidents.Explain(latest)
	if latest == nil {
		return r
	}

	if ch, ok := incidents.ActiveChannel(latest); ok {
		r.Channel = ch.String()
	}
	r.Subtitle = m.Subtitle(latest)
	r.Details = m.ExecutionDetails(latest)
	r.Count = len(incidents.Incidents(latest))
	return r
}
