package incidents

import "github.com/sznuper/incidentview/internal/execution"

// Channel is an output channel of the get incidents action.
type Channel string

const (
	ChannelHigh    Channel = "high"
	ChannelLow     Channel = "low"
	ChannelClear   Channel = "clear"
	ChannelDefault Channel = "default"
)

// priority is the order channels are scanned in. The first non-empty one is
// the active channel.
var priority = []Channel{ChannelHigh, ChannelLow, ChannelClear, ChannelDefault}

// Priority returns the channel scan order, highest first.
func Priority() []Channel {
	out := make([]Channel, len(priority))
	copy(out, priority)
	return out
}

func (c Channel) String() string { return string(c) }

// firstPayload scans channels in priority order and returns the first
// payload found together with the channel it came from.
func firstPayload(exec *execution.Execution) (Channel, *execution.Payload, bool) {
	if exec == nil {
		return "", nil, false
	}
	for _, ch := range priority {
		payloads := exec.Outputs.Channel(string(ch))
		if len(payloads) > 0 {
			return ch, &payloads[0], true
		}
	}
	return "", nil, false
}

// FirstPayload returns the first payload of the active channel.
func FirstPayload(exec *execution.Execution) (*execution.Payload, bool) {
	_, p, ok := firstPayload(exec)
	return p, ok
}

// ActiveChannel returns the channel that supplied the first payload.
func ActiveChannel(exec *execution.Execution) (Channel, bool) {
	ch, _, ok := firstPayload(exec)
	return ch, ok
}

// SeverityChannel picks the channel a list of incidents routes to: clear
// when there are none, high when any is urgency 1, low otherwise.
func SeverityChannel(records []Record) Channel {
	if len(records) == 0 {
		return ChannelClear
	}
	for _, r := range records {
		if r.Urgency == UrgencyHigh {
			return ChannelHigh
		}
	}
	return ChannelLow
}
