package execution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	channelHigh    = "high"
	channelLow     = "low"
	channelClear   = "clear"
	channelDefault = "default"
)

// fields is one JSON object split into its raw members. Every member is
// decoded on its own so a badly typed field only loses that field.
type fields map[string]json.RawMessage

// objectFields returns the members of msg, or nil when msg is not an object.
func objectFields(msg json.RawMessage) fields {
	var f fields
	if err := json.Unmarshal(msg, &f); err != nil {
		return nil
	}
	return f
}

func (f fields) str(key string) string {
	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return ""
	}
	return s
}

func (f fields) boolean(key string) bool {
	var b bool
	if err := json.Unmarshal(f[key], &b); err != nil {
		return false
	}
	return b
}

func (f fields) object(key string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(f[key], &m); err != nil {
		return nil
	}
	return m
}

func (f fields) list(key string) []json.RawMessage {
	var l []json.RawMessage
	if err := json.Unmarshal(f[key], &l); err != nil {
		return nil
	}
	return l
}

func (f fields) timestamp(key string) *time.Time {
	return parseTime(f.str(key))
}

// Decode parses a single execution snapshot. Only input that is not a JSON
// object is an error; badly typed fields degrade to zero values.
func Decode(data []byte) (*Execution, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding execution: %w", err)
	}
	return f.execution(), nil
}

// DecodeDocument parses a render document. It accepts either the full form
// ({"node", "component", "nodes", "executions"}) or a bare execution, which
// is wrapped into a document with a single execution and an empty node.
// Executions that are not objects are skipped.
func DecodeDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding document: empty input")
	}

	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	if !f.isDocument() {
		return &Document{Executions: []*Execution{f.execution()}}, nil
	}

	doc := &Document{
		Node:      decodeNode(f["node"]),
		Component: decodeComponent(f["component"]),
	}
	for _, msg := range f.list("nodes") {
		if nf := objectFields(msg); nf != nil {
			doc.Nodes = append(doc.Nodes, nf.node())
		}
	}
	if ef := objectFields(f["execution"]); ef != nil {
		doc.Executions = append(doc.Executions, ef.execution())
	}
	for _, msg := range f.list("executions") {
		if ef := objectFields(msg); ef != nil {
			doc.Executions = append(doc.Executions, ef.execution())
		}
	}
	return doc, nil
}

func (f fields) isDocument() bool {
	for _, key := range []string{"node", "component", "nodes", "executions", "execution"} {
		if _, ok := f[key]; ok {
			return true
		}
	}
	return false
}

func decodeNode(msg json.RawMessage) Node {
	f := objectFields(msg)
	if f == nil {
		return Node{}
	}
	return f.node()
}

func (f fields) node() Node {
	return Node{
		ID:            f.str("id"),
		Name:          f.str("name"),
		ComponentName: f.str("componentName"),
		IsCollapsed:   f.boolean("isCollapsed"),
		Configuration: f.object("configuration"),
		Metadata:      f.object("metadata"),
	}
}

func decodeComponent(msg json.RawMessage) Component {
	f := objectFields(msg)
	return Component{
		Name:  f.str("name"),
		Label: f.str("label"),
		Color: f.str("color"),
	}
}

func (f fields) execution() *Execution {
	exec := &Execution{
		ID:            f.str("id"),
		State:         State(f.str("state")),
		Result:        Result(f.str("result")),
		ResultReason:  ResultReason(f.str("resultReason")),
		ResultMessage: f.str("resultMessage"),
		CreatedAt:     f.timestamp("createdAt"),
		Outputs:       convertOutputs(objectFields(f["outputs"])),
	}
	if ev := objectFields(f["rootEvent"]); ev != nil {
		exec.RootEvent = &Event{
			ID:        ev.str("id"),
			NodeID:    ev.str("nodeId"),
			Channel:   ev.str("channel"),
			Data:      ev.object("data"),
			CreatedAt: ev.timestamp("createdAt"),
		}
	}
	return exec
}

// convertOutputs splits the raw channel map into the known channels. A
// channel whose value is not a list is dropped, as is any list entry that
// is not an object.
func convertOutputs(raw fields) Outputs {
	var out Outputs
	for name := range raw {
		payloads := convertPayloads(raw.list(name))
		if payloads == nil {
			continue
		}
		switch name {
		case channelHigh:
			out.High = payloads
		case channelLow:
			out.Low = payloads
		case channelClear:
			out.Clear = payloads
		case channelDefault:
			out.Default = payloads
		default:
			if out.Unrecognized == nil {
				out.Unrecognized = make(map[string][]Payload)
			}
			out.Unrecognized[name] = payloads
		}
	}
	return out
}

func convertPayloads(items []json.RawMessage) []Payload {
	var payloads []Payload
	for _, msg := range items {
		f := objectFields(msg)
		if f == nil {
			continue
		}
		var data any
		_ = json.Unmarshal(f["data"], &data)
		payloads = append(payloads, Payload{
			Type:      f.str("type"),
			Timestamp: f.timestamp("timestamp"),
			Data:      data,
		})
	}
	return payloads
}

// parseTime accepts RFC 3339 with or without fractional seconds. Anything
// else is treated as absent.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
