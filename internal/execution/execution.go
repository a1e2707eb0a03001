package execution

import "time"

// State is the lifecycle state of a node execution.
type State string

const (
	StatePending  State = "STATE_PENDING"
	StateStarted  State = "STATE_STARTED"
	StateFinished State = "STATE_FINISHED"
)

// Result is the outcome of a finished (or aborted) execution.
type Result string

const (
	ResultPassed    Result = "RESULT_PASSED"
	ResultFailed    Result = "RESULT_FAILED"
	ResultCancelled Result = "RESULT_CANCELLED"
)

// ResultReason qualifies a Result.
type ResultReason string

const (
	ResultReasonOK            ResultReason = "RESULT_REASON_OK"
	ResultReasonError         ResultReason = "RESULT_REASON_ERROR"
	ResultReasonErrorResolved ResultReason = "RESULT_REASON_ERROR_RESOLVED"
)

// Execution is a read-only snapshot of one node execution.
type Execution struct {
	ID            string
	State         State
	Result        Result
	ResultReason  ResultReason
	ResultMessage string
	CreatedAt     *time.Time
	Outputs       Outputs
	RootEvent     *Event
}

// Event is the event that triggered the workflow run an execution belongs to.
type Event struct {
	ID        string         `json:"id"`
	NodeID    string         `json:"nodeId"`
	Channel   string         `json:"channel,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
}

// Payload is a single item emitted on an output channel. Data has no fixed
// shape at this level.
type Payload struct {
	Type      string     `json:"type,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Data      any        `json:"data,omitempty"`
}

// Outputs holds the payloads an execution emitted, split by the channels
// the incidents action knows about. Payloads on any other channel name end
// up in Unrecognized.
type Outputs struct {
	High         []Payload
	Low          []Payload
	Clear        []Payload
	Default      []Payload
	Unrecognized map[string][]Payload
}

// Empty reports whether no known channel carries a payload.
func (o Outputs) Empty() bool {
	return len(o.High) == 0 && len(o.Low) == 0 && len(o.Clear) == 0 && len(o.Default) == 0
}

// Channel returns the payloads emitted on the named channel.
func (o Outputs) Channel(name string) []Payload {
	switch name {
	case channelHigh:
		return o.High
	case channelLow:
		return o.Low
	case channelClear:
		return o.Clear
	case channelDefault:
		return o.Default
	default:
		return o.Unrecognized[name]
	}
}
