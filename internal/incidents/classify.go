package incidents

import "github.com/sznuper/incidentview/internal/execution"

// DisplayState drives the icon and colour of an execution in the UI.
type DisplayState string

const (
	StateNeutral   DisplayState = "neutral"
	StateError     DisplayState = "error"
	StateCancelled DisplayState = "cancelled"
	StateRunning   DisplayState = "running"
	StateHigh      DisplayState = "high"
	StateLow       DisplayState = "low"
	StateClear     DisplayState = "clear"
	StateFailed    DisplayState = "failed"
)

// Rule is one row of the classification table. Resolve is only called when
// Match returned true.
type Rule struct {
	Name    string
	Match   func(*execution.Execution) bool
	Resolve func(*execution.Execution) DisplayState
}

// rules are evaluated in order; the first match wins. The last rule always
// matches.
var rules = []Rule{
	{
		Name:    "absent",
		Match:   func(e *execution.Execution) bool { return e == nil || e.State == "" },
		Resolve: constant(StateNeutral),
	},
	{
		Name:    "error",
		Match:   HasError,
		Resolve: constant(StateError),
	},
	{
		Name:    "cancelled",
		Match:   func(e *execution.Execution) bool { return e.Result == execution.ResultCancelled },
		Resolve: constant(StateCancelled),
	},
	{
		Name: "running",
		Match: func(e *execution.Execution) bool {
			return e.State == execution.StatePending || e.State == execution.StateStarted
		},
		Resolve: constant(StateRunning),
	},
	{
		Name: "passed",
		Match: func(e *execution.Execution) bool {
			return e.State == execution.StateFinished && e.Result == execution.ResultPassed
		},
		Resolve: passedState,
	},
	{
		Name:    "failed",
		Match:   func(*execution.Execution) bool { return true },
		Resolve: constant(StateFailed),
	},
}

// Rules returns the classification table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify returns the display state of an execution.
func Classify(exec *execution.Execution) DisplayState {
	state, _ := classify(exec)
	return state
}

// Explain returns the display state together with the name of the rule that
// produced it.
func Explain(exec *execution.Execution) (DisplayState, string) {
	return classify(exec)
}

func classify(exec *execution.Execution) (DisplayState, string) {
	for _, r := range rules {
		if r.Match(exec) {
			return r.Resolve(exec), r.Name
		}
	}
	return StateFailed, "failed"
}

// HasError reports whether the execution ended with an error that should be
// shown to the user. A failed result whose error was later resolved does not
// count.
func HasError(exec *execution.Execution) bool {
	if exec == nil || exec.ResultMessage == "" {
		return false
	}
	if exec.ResultReason == execution.ResultReasonError {
		return true
	}
	return exec.Result == execution.ResultFailed && exec.ResultReason != execution.ResultReasonErrorResolved
}

// passedState maps the active channel to a state. When the execution only
// emitted on the default channel, the incidents themselves decide.
func passedState(exec *execution.Execution) DisplayState {
	ch, ok := ActiveChannel(exec)
	if ok && ch != ChannelDefault {
		return channelState(ch)
	}
	return channelState(SeverityChannel(Incidents(exec)))
}

func channelState(ch Channel) DisplayState {
	switch ch {
	case ChannelHigh:
		return StateHigh
	case ChannelLow:
		return StateLow
	default:
		return StateClear
	}
}

func constant(s DisplayState) func(*execution.Execution) DisplayState {
	return func(*execution.Execution) DisplayState { return s }
}
