package view

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/incidents"
)

// TemplateData holds all data available to output templates.
type TemplateData struct {
	View      map[string]string
	Node      map[string]string
	Execution map[string]string
	Incidents []map[string]string
}

// BuildTemplateData flattens a rendering into string maps so templates can
// use {{view.subtitle}} style access.
func BuildTemplateData(r Rendering, doc *execution.Document) TemplateData {
	view := map[string]string{
		"title":       r.Props.Title,
		"subtitle":    r.Subtitle,
		"state":       string(r.State),
		"state_emoji": stateEmoji(r.State),
		"rule":        r.Rule,
		"channel":     r.Channel,
		"count":       strconv.Itoa(r.Count),
		"checked_at":  "",
		"error":       "",
	}
	if checked, ok := r.Details[detailCheckedAt].(string); ok {
		view["checked_at"] = checked
	}
	if e, ok := r.Details[detailError].(ErrorDetail); ok {
		view["error"] = e.Message
	}

	node := map[string]string{"id": "", "name": "", "component": ""}
	exec := map[string]string{"id": "", "state": "", "result": "", "result_reason": "", "result_message": ""}
	if doc != nil {
		node["id"] = doc.Node.ID
		node["name"] = doc.Node.Name
		node["component"] = doc.Component.Name
		if latest := doc.Latest(); latest != nil {
			exec["id"] = latest.ID
			exec["state"] = string(latest.State)
			exec["result"] = string(latest.Result)
			exec["result_reason"] = string(latest.ResultReason)
			exec["result_message"] = latest.ResultMessage
		}
	}

	rows, _ := r.Details[detailIncidents].([]IncidentRow)
	list := make([]map[string]string, len(rows))
	for i, row := range rows {
		list[i] = map[string]string{
			"number":            row.Number,
			"short_description": row.ShortDescription,
			"state":             row.State,
			"urgency":           row.Urgency,
			"impact":            row.Impact,
			"sys_id":            row.SysID,
			"sys_created_on":    row.SysCreatedOn,
		}
	}

	return TemplateData{
		View:      view,
		Node:      node,
		Execution: exec,
		Incidents: list,
	}
}

func stateEmoji(s incidents.DisplayState) string {
	switch s {
	case incidents.StateHigh, incidents.StateError, incidents.StateFailed:
		return "\U0001f534" // 🔴
	case incidents.StateLow:
		return "\U0001f7e1" // 🟡
	case incidents.StateClear:
		return "\U0001f7e2" // 🟢
	case incidents.StateRunning:
		return "\u23f3" // ⏳
	default:
		return "\u26aa" // ⚪
	}
}

// Render executes a Go text/template string with Sprig functions and the
// accessor functions (view, node, execution, incidents).
func Render(tmplStr string, data TemplateData) (string, error) {
	t, err := Parse(tmplStr, data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Parse compiles a template with the same function map Render uses.
func Parse(tmplStr string, data TemplateData) (*template.Template, error) {
	funcMap := sprig.TxtFuncMap()

	// {{view.state}}: "view" returns the map, ".state" reads a key.
	funcMap["view"] = func() map[string]string { return data.View }
	funcMap["node"] = func() map[string]string { return data.Node }
	funcMap["execution"] = func() map[string]string { return data.Execution }
	funcMap["incidents"] = func() []map[string]string { return data.Incidents }

	t, err := template.New("output").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return t, nil
}
