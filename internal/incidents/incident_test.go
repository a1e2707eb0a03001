package incidents

import (
	"testing"

	"github.com/sznuper/incidentview/internal/execution"
)

func TestIncidents_MissingField(t *testing.T) {
	exec := &execution.Execution{Outputs: execution.Outputs{
		High: []execution.Payload{{Data: map[string]any{"total": 3}}},
	}}
	if got := Incidents(exec); len(got) != 0 {
		t.Errorf("incidents = %v, want empty", got)
	}
}

func TestIncidents_NoPayload(t *testing.T) {
	if got := Incidents(&execution.Execution{}); len(got) != 0 {
		t.Errorf("incidents = %v, want empty", got)
	}
	if got := Incidents(nil); len(got) != 0 {
		t.Errorf("incidents = %v, want empty", got)
	}
}

func TestIncidents_NilData(t *testing.T) {
	exec := &execution.Execution{Outputs: execution.Outputs{Clear: []execution.Payload{{Type: PayloadType}}}}
	if got := Incidents(exec); len(got) != 0 {
		t.Errorf("incidents = %v, want empty", got)
	}
}

func TestDecodeResponse_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		count      int
		total      int
		recognized bool
	}{
		{"not an object", "oops", 0, 0, false},
		{"list instead of object", []any{1, 2}, 0, 0, false},
		{"incidents not a list", map[string]any{"incidents": "x"}, 0, 0, true},
		{"skips bad entries", map[string]any{"incidents": []any{"x", map[string]any{"number": "INC1"}}}, 1, 1, true},
		{"total from payload", map[string]any{"incidents": []any{}, "total": float64(7)}, 0, 7, true},
		{"total as string", map[string]any{"incidents": []any{}, "total": "4"}, 0, 4, true},
		{"bad total falls back to count", map[string]any{"incidents": []any{map[string]any{}}, "total": "many"}, 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := DecodeResponse(tt.data)
			if len(resp.Incidents) != tt.count {
				t.Errorf("incidents = %d, want %d", len(resp.Incidents), tt.count)
			}
			if resp.Total != tt.total {
				t.Errorf("total = %d, want %d", resp.Total, tt.total)
			}
			if resp.Recognized != tt.recognized {
				t.Errorf("recognized = %v, want %v", resp.Recognized, tt.recognized)
			}
		})
	}
}

func TestDecodeResponse_WeakFields(t *testing.T) {
	data := map[string]any{"incidents": []any{
		map[string]any{
			"sys_id":            "abc123",
			"number":            "INC0010001",
			"short_description": "Email down",
			"state":             float64(2),
			"urgency":           float64(1),
			"impact":            "2",
			"sys_created_on":    "2026-01-15 10:30:00",
			"assignment_group":  map[string]any{"value": "grp1"},
		},
	}}
	resp := DecodeResponse(data)
	if len(resp.Incidents) != 1 {
		t.Fatalf("incidents = %d, want 1", len(resp.Incidents))
	}
	rec := resp.Incidents[0]
	if rec.Urgency != "1" || rec.State != "2" || rec.Impact != "2" {
		t.Errorf("record = %+v, want numeric codes as strings", rec)
	}
	if rec.ShortDescription != "Email down" {
		t.Errorf("short_description = %q, want %q", rec.ShortDescription, "Email down")
	}
}

func TestDecodeResponse_Typed(t *testing.T) {
	resp := DecodeResponse(&Response{Incidents: []Record{{Number: "INC1"}}, Total: 1})
	if !resp.Recognized || len(resp.Incidents) != 1 {
		t.Errorf("resp = %+v, want typed response passed through", resp)
	}
	if got := DecodeResponse((*Response)(nil)); got.Recognized {
		t.Error("nil *Response should be unrecognized")
	}
}

func TestDecodeConfiguration(t *testing.T) {
	cfg := DecodeConfiguration(map[string]any{
		"assignmentGroup": "grp1",
		"state":           "1,2",
		"urgency":         "1",
		"limit":           float64(25),
	})
	if cfg.AssignmentGroup != "grp1" || cfg.State != "1,2" || cfg.Urgency != "1" || cfg.Limit != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
	if got := DecodeConfiguration(nil); got != (Configuration{}) {
		t.Errorf("nil config = %+v, want zero", got)
	}
}

func TestDecodeNodeMetadata(t *testing.T) {
	md := DecodeNodeMetadata(map[string]any{
		"instanceUrl":     "https://dev12345.service-now.com",
		"assignmentGroup": map[string]any{"id": "grp1", "name": "Network"},
	})
	if md.InstanceURL != "https://dev12345.service-now.com" {
		t.Errorf("instanceUrl = %q", md.InstanceURL)
	}
	if md.AssignmentGroup == nil || md.AssignmentGroup.Name != "Network" {
		t.Errorf("assignmentGroup = %+v, want Network", md.AssignmentGroup)
	}
	if md.Caller != nil {
		t.Errorf("caller = %+v, want nil", md.Caller)
	}
}
