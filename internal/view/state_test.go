package view

import (
	"testing"
	"time"

	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/incidents"
)

func TestIncidentsStateMap(t *testing.T) {
	m := IncidentsStateMap()
	tests := []struct {
		state incidents.DisplayState
		icon  string
		badge string
	}{
		{incidents.StateClear, "circle-check", "bg-gray-500"},
		{incidents.StateLow, "alert-triangle", "bg-yellow-500"},
		{incidents.StateHigh, "circle-x", "bg-red-500"},
	}
	for _, tt := range tests {
		s := m.Style(tt.state)
		if s.Icon != tt.icon || s.BadgeColor != tt.badge {
			t.Errorf("%s = %+v, want icon %s badge %s", tt.state, s, tt.icon, tt.badge)
		}
	}
	for _, st := range []incidents.DisplayState{
		incidents.StateNeutral, incidents.StateError, incidents.StateCancelled,
		incidents.StateRunning, incidents.StateFailed,
	} {
		if _, ok := m[st]; !ok {
			t.Errorf("state map missing %s", st)
		}
	}
}

func TestStateMap_StyleFallback(t *testing.T) {
	m := IncidentsStateMap()
	if got := m.Style("bogus"); got != m[incidents.StateNeutral] {
		t.Errorf("Style(bogus) = %+v, want neutral", got)
	}
}

func TestStateMap_Merge(t *testing.T) {
	base := IncidentsStateMap()
	merged := base.Merge(StateMap{incidents.StateHigh: {Icon: "flame"}})
	if merged[incidents.StateHigh].Icon != "flame" {
		t.Error("override not applied")
	}
	if base[incidents.StateHigh].Icon != "circle-x" {
		t.Error("merge must not modify the base map")
	}
}

func TestRegistries_Lookup(t *testing.T) {
	m := testMapper()
	regs := Registries{incidents.ComponentName: m.StateRegistry()}

	for _, name := range []string{"getIncidents", "servicenow.getIncidents"} {
		reg, ok := regs.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		exec := &execution.Execution{State: execution.StatePending}
		if got := reg.GetState(exec); got != incidents.StateRunning {
			t.Errorf("GetState() = %q, want running", got)
		}
	}
	if _, ok := regs.Lookup("servicenow.createIncident"); ok {
		t.Error("Lookup(createIncident) should not be found")
	}
}

func TestTriggers_Fallback(t *testing.T) {
	tests := []struct {
		name string
		ev   *execution.Event
		want string
	}{
		{"nil event", nil, "Event"},
		{"title field", &execution.Event{Data: map[string]any{"title": "Deploy finished"}}, "Deploy finished"},
		{"name field", &execution.Event{Data: map[string]any{"name": "nightly"}}, "nightly"},
		{"no fields", &execution.Event{Data: map[string]any{"other": 1}}, "Event"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Triggers(nil).Lookup("unknown").TitleAndSubtitle(tt.ev)
			if got != tt.want {
				t.Errorf("title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatter_TimeAgo(t *testing.T) {
	f := Formatter{Now: func() time.Time { return testNow }}
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{30 * time.Second, "30 seconds ago"},
		{10 * time.Minute, "10 minutes ago"},
		{26 * time.Hour, "1 day ago"},
	}
	for _, tt := range tests {
		if got := f.TimeAgo(testNow.Add(-tt.d)); got != tt.want {
			t.Errorf("TimeAgo(-%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestColorClasses(t *testing.T) {
	c := ColorClasses{"brand": "bg-brand-50"}
	tests := []struct {
		color string
		want  string
	}{
		{"brand", "bg-brand-50"},
		{"red", "bg-red-100"},
		{"", "bg-gray-100"},
		{"chartreuse", "bg-gray-100"},
	}
	for _, tt := range tests {
		if got := c.BackgroundColorClass(tt.color); got != tt.want {
			t.Errorf("BackgroundColorClass(%q) = %q, want %q", tt.color, got, tt.want)
		}
	}
	if got := ColorClasses(nil).BackgroundColorClass("green"); got != "bg-green-100" {
		t.Errorf("nil classes green = %q", got)
	}
}
