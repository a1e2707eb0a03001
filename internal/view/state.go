package view

import (
	"strings"

	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/incidents"
)

// StateStyle is how one display state looks in the event list.
type StateStyle struct {
	Icon            string `json:"icon"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
	BadgeColor      string `json:"badgeColor"`
}

// StateMap maps display states to their style.
type StateMap map[incidents.DisplayState]StateStyle

// DefaultStateMap covers the states every component shares.
func DefaultStateMap() StateMap {
	return StateMap{
		incidents.StateNeutral: {
			Icon: "circle", TextColor: "text-gray-500", BackgroundColor: "bg-gray-50", BadgeColor: "bg-gray-400",
		},
		incidents.StateRunning: {
			Icon: "refresh-cw", TextColor: "text-gray-800", BackgroundColor: "bg-sky-100", BadgeColor: "bg-sky-500",
		},
		incidents.StateError: {
			Icon: "triangle-alert", TextColor: "text-gray-800", BackgroundColor: "bg-red-100", BadgeColor: "bg-red-500",
		},
		incidents.StateCancelled: {
			Icon: "circle-slash-2", TextColor: "text-gray-800", BackgroundColor: "bg-gray-100", BadgeColor: "bg-gray-500",
		},
		incidents.StateFailed: {
			Icon: "circle-x", TextColor: "text-gray-800", BackgroundColor: "bg-red-100", BadgeColor: "bg-red-500",
		},
	}
}

// IncidentsStateMap is the default map extended with the severity states.
func IncidentsStateMap() StateMap {
	m := DefaultStateMap()
	m[incidents.StateClear] = StateStyle{
		Icon: "circle-check", TextColor: "text-gray-800", BackgroundColor: "bg-gray-100", BadgeColor: "bg-gray-500",
	}
	m[incidents.StateLow] = StateStyle{
		Icon: "alert-triangle", TextColor: "text-gray-800", BackgroundColor: "bg-yellow-100", BadgeColor: "bg-yellow-500",
	}
	m[incidents.StateHigh] = StateStyle{
		Icon: "circle-x", TextColor: "text-gray-800", BackgroundColor: "bg-red-100", BadgeColor: "bg-red-500",
	}
	return m
}

// Merge returns a copy of m with overrides applied.
func (m StateMap) Merge(overrides StateMap) StateMap {
	out := make(StateMap, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Style returns the style for s, falling back to neutral.
func (m StateMap) Style(s incidents.DisplayState) StateStyle {
	if style, ok := m[s]; ok {
		return style
	}
	return m[incidents.StateNeutral]
}

// StateFunc classifies an execution.
type StateFunc func(*execution.Execution) incidents.DisplayState

// StateRegistry pairs a component's state map with its classifier.
type StateRegistry struct {
	StateMap StateMap
	GetState StateFunc
}

// Registries holds state registries keyed by component name.
type Registries map[string]StateRegistry

// Lookup finds the registry for a component. Names may carry an
// integration prefix ("servicenow.getIncidents").
func (r Registries) Lookup(componentName string) (StateRegistry, bool) {
	if reg, ok := r[componentName]; ok {
		return reg, true
	}
	if i := strings.LastIndex(componentName, "."); i >= 0 {
		reg, ok := r[componentName[i+1:]]
		return reg, ok
	}
	return StateRegistry{}, false
}
