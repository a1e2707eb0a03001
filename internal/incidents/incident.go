package incidents

import (
	"github.com/mitchellh/mapstructure"

	"github.com/sznuper/incidentview/internal/execution"
)

// PayloadType is the payload type the get incidents action emits.
const PayloadType = "servicenow.incidents"

// UrgencyHigh is the ServiceNow urgency code for high urgency.
const UrgencyHigh = "1"

// Record is one ServiceNow incident as it appears in the action output.
type Record struct {
	SysID            string `json:"sys_id" mapstructure:"sys_id"`
	Number           string `json:"number" mapstructure:"number"`
	ShortDescription string `json:"short_description" mapstructure:"short_description"`
	State            string `json:"state" mapstructure:"state"`
	Urgency          string `json:"urgency" mapstructure:"urgency"`
	Impact           string `json:"impact" mapstructure:"impact"`
	SysCreatedOn     string `json:"sys_created_on" mapstructure:"sys_created_on"`
}

// Response is the decoded data of a get incidents payload.
type Response struct {
	Incidents []Record `json:"incidents"`
	Total     int      `json:"total"`
	// Recognized is false when the payload data did not look like an
	// incidents response at all.
	Recognized bool `json:"-"`
}

// DecodeResponse turns untyped payload data into a Response. It never fails:
// data that is not an object gives an unrecognized, empty response, and
// incident entries that cannot be decoded are skipped.
func DecodeResponse(data any) Response {
	switch v := data.(type) {
	case Response:
		v.Recognized = true
		return v
	case *Response:
		if v == nil {
			return Response{}
		}
		out := *v
		out.Recognized = true
		return out
	}

	m, ok := data.(map[string]any)
	if !ok {
		return Response{}
	}

	resp := Response{Recognized: true}
	if list, ok := m["incidents"].([]any); ok {
		for _, item := range list {
			var rec Record
			if err := decodeWeak(item, &rec); err != nil {
				continue
			}
			resp.Incidents = append(resp.Incidents, rec)
		}
	}

	resp.Total = len(resp.Incidents)
	if raw, ok := m["total"]; ok {
		var total int
		if err := decodeWeak(raw, &total); err == nil {
			resp.Total = total
		}
	}
	return resp
}

// Incidents returns the incident list from the first payload of the active
// channel. Missing or malformed data gives an empty list.
func Incidents(exec *execution.Execution) []Record {
	p, ok := FirstPayload(exec)
	if !ok || p.Data == nil {
		return nil
	}
	return DecodeResponse(p.Data).Incidents
}

func decodeWeak(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
