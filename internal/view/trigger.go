package view

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/sznuper/incidentview/internal/execution"
)

// TriggerRenderer renders the root event of a run for the event list.
type TriggerRenderer interface {
	TitleAndSubtitle(ev *execution.Event) (title, subtitle string)
}

// TriggerFunc adapts a function to TriggerRenderer.
type TriggerFunc func(ev *execution.Event) (string, string)

func (f TriggerFunc) TitleAndSubtitle(ev *execution.Event) (string, string) { return f(ev) }

// Triggers holds trigger renderers keyed by component name.
type Triggers map[string]TriggerRenderer

// Lookup returns the renderer for componentName, or the fallback renderer.
func (t Triggers) Lookup(componentName string) TriggerRenderer {
	if r, ok := t[componentName]; ok && r != nil {
		return r
	}
	return fallbackTrigger
}

// fallbackTrigger uses a title or name field from the event data.
var fallbackTrigger = TriggerFunc(func(ev *execution.Event) (string, string) {
	if ev == nil {
		return "Event", ""
	}
	for _, key := range []string{"title", "name"} {
		if v, ok := ev.Data[key]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s, ev.Channel
			}
		}
	}
	return "Event", ev.Channel
})

// TemplateTrigger renders the title and subtitle from text/template strings
// evaluated against the event ({{.id}}, {{.nodeId}}, {{.channel}}, {{.data}}).
// A template that fails to render falls back to the default renderer.
type TemplateTrigger struct {
	Title    string
	Subtitle string
}

func (t TemplateTrigger) TitleAndSubtitle(ev *execution.Event) (string, string) {
	fallbackTitle, fallbackSubtitle := fallbackTrigger(ev)

	data := map[string]any{"id": "", "nodeId": "", "channel": "", "data": map[string]any{}}
	if ev != nil {
		data["id"] = ev.ID
		data["nodeId"] = ev.NodeID
		data["channel"] = ev.Channel
		if ev.Data != nil {
			data["data"] = ev.Data
		}
	}

	title, err := renderEvent(t.Title, data)
	if err != nil || title == "" {
		title = fallbackTitle
	}
	subtitle := fallbackSubtitle
	if t.Subtitle != "" {
		if s, err := renderEvent(t.Subtitle, data); err == nil {
			subtitle = s
		}
	}
	return title, subtitle
}

func renderEvent(tmplStr string, data map[string]any) (string, error) {
	tmpl, err := template.New("trigger").Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
