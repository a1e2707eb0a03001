package incidents

import (
	"testing"

	"github.com/sznuper/incidentview/internal/execution"
)

func incidentsPayload(urgencies ...string) []execution.Payload {
	list := make([]any, len(urgencies))
	for i, u := range urgencies {
		list[i] = map[string]any{"number": "INC00" + u, "urgency": u}
	}
	return []execution.Payload{{
		Type: PayloadType,
		Data: map[string]any{"incidents": list, "total": len(list)},
	}}
}

func finished(outputs execution.Outputs) *execution.Execution {
	return &execution.Execution{
		State:   execution.StateFinished,
		Result:  execution.ResultPassed,
		Outputs: outputs,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		exec *execution.Execution
		want DisplayState
	}{
		{"nil execution", nil, StateNeutral},
		{"no state", &execution.Execution{Result: execution.ResultPassed}, StateNeutral},
		{
			"error reason",
			&execution.Execution{
				State:         execution.StateFinished,
				Result:        execution.ResultPassed,
				ResultReason:  execution.ResultReasonError,
				ResultMessage: "boom",
			},
			StateError,
		},
		{
			"error reason while running",
			&execution.Execution{
				State:         execution.StateStarted,
				ResultReason:  execution.ResultReasonError,
				ResultMessage: "boom",
			},
			StateError,
		},
		{
			"failed with message",
			&execution.Execution{
				State:         execution.StateFinished,
				Result:        execution.ResultFailed,
				ResultMessage: "401 Unauthorized",
			},
			StateError,
		},
		{
			"failed but error resolved",
			&execution.Execution{
				State:         execution.StateFinished,
				Result:        execution.ResultFailed,
				ResultReason:  execution.ResultReasonErrorResolved,
				ResultMessage: "was broken",
			},
			StateFailed,
		},
		{
			"error reason without message",
			&execution.Execution{
				State:        execution.StateFinished,
				Result:       execution.ResultCancelled,
				ResultReason: execution.ResultReasonError,
			},
			StateCancelled,
		},
		{
			"cancelled",
			&execution.Execution{State: execution.StateFinished, Result: execution.ResultCancelled},
			StateCancelled,
		},
		{"pending", &execution.Execution{State: execution.StatePending}, StateRunning},
		{"started", &execution.Execution{State: execution.StateStarted}, StateRunning},
		{"high channel", finished(execution.Outputs{High: incidentsPayload("1")}), StateHigh},
		{"low channel", finished(execution.Outputs{Low: incidentsPayload("2")}), StateLow},
		{"clear channel", finished(execution.Outputs{Clear: incidentsPayload()}), StateClear},
		{
			"high wins over low",
			finished(execution.Outputs{High: incidentsPayload("1"), Low: incidentsPayload("3")}),
			StateHigh,
		},
		{
			"channel wins over data",
			finished(execution.Outputs{Low: incidentsPayload("1")}),
			StateLow,
		},
		{"default with high urgency", finished(execution.Outputs{Default: incidentsPayload("3", "1")}), StateHigh},
		{"default with low urgency", finished(execution.Outputs{Default: incidentsPayload("2", "3")}), StateLow},
		{"default without incidents", finished(execution.Outputs{Default: incidentsPayload()}), StateClear},
		{"no outputs", finished(execution.Outputs{}), StateClear},
		{
			"finished but failed without message",
			&execution.Execution{State: execution.StateFinished, Result: execution.ResultFailed},
			StateFailed,
		},
		{"unknown state", &execution.Execution{State: "STATE_WAITING"}, StateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.exec); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExplain_RuleName(t *testing.T) {
	state, rule := Explain(&execution.Execution{State: execution.StatePending})
	if state != StateRunning || rule != "running" {
		t.Errorf("Explain() = (%q, %q), want (running, running)", state, rule)
	}
}

func TestRules_Order(t *testing.T) {
	want := []string{"absent", "error", "cancelled", "running", "passed", "failed"}
	got := Rules()
	if len(got) != len(want) {
		t.Fatalf("rules = %d, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.Name != want[i] {
			t.Errorf("rule[%d] = %q, want %q", i, r.Name, want[i])
		}
	}
	if !got[len(got)-1].Match(&execution.Execution{State: "anything"}) {
		t.Error("last rule must match everything")
	}
}

func TestHasError(t *testing.T) {
	if HasError(nil) {
		t.Error("nil execution has no error")
	}
	if HasError(&execution.Execution{ResultReason: execution.ResultReasonError}) {
		t.Error("error without message should not count")
	}
	if !HasError(&execution.Execution{ResultReason: execution.ResultReasonError, ResultMessage: "x"}) {
		t.Error("error reason with message should count")
	}
}

// An execution without a state is neutral even when it carries an error
// reason and message: the absent rule runs before the error rule.
func TestClassify_AbsentStateBeatsError(t *testing.T) {
	exec := &execution.Execution{
		Result:        execution.ResultFailed,
		ResultReason:  execution.ResultReasonError,
		ResultMessage: "connection refused",
	}
	if !HasError(exec) {
		t.Fatal("HasError should still report the error")
	}
	state, rule := Explain(exec)
	if state != StateNeutral || rule != "absent" {
		t.Errorf("Explain = (%q, %q), want (neutral, absent)", state, rule)
	}
}
