package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/sznuper/incidentview/internal/incidents"
	"github.com/sznuper/incidentview/internal/runner"
	"github.com/sznuper/incidentview/internal/view"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorRed    = lipgloss.Color("196")
	colorBlue   = lipgloss.Color("39")
	colorGray   = lipgloss.Color("245")
)

// printer writes run results as styled text or JSON.
type printer struct {
	w      io.Writer
	format string

	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
	err   lipgloss.Style
	badge map[incidents.DisplayState]lipgloss.Style
}

// useColor decides whether w gets ANSI colours for the color option.
func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newPrinter(w io.Writer, format string, color bool) *printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	badge := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(c)
	}
	return &printer{
		w:      w,
		format: format,
		title:  r.NewStyle().Bold(true),
		label:  r.NewStyle().Foreground(colorBlue),
		muted:  r.NewStyle().Foreground(colorGray),
		err:    r.NewStyle().Foreground(colorRed),
		badge: map[incidents.DisplayState]lipgloss.Style{
			incidents.StateHigh:      badge(colorRed),
			incidents.StateFailed:    badge(colorRed),
			incidents.StateError:     badge(colorRed),
			incidents.StateLow:       badge(colorYellow),
			incidents.StateClear:     badge(colorGreen),
			incidents.StateRunning:   badge(colorBlue),
			incidents.StateCancelled: badge(colorGray),
			incidents.StateNeutral:   badge(colorGray),
		},
	}
}

// Print writes one result. Failed results are written to the same writer so
// watch output stays in order.
func (p *printer) Print(res runner.Result) error {
	if p.format == "json" {
		return p.printJSON(res)
	}
	p.printText(res)
	return nil
}

type jsonResult struct {
	Source    string          `json:"source"`
	Rendering *view.Rendering `json:"rendering,omitempty"`
	Output    string          `json:"output,omitempty"`
	Error     *jsonError      `json:"error,omitempty"`
}

type jsonError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Stderr  string `json:"stderr,omitempty"`
}

func (p *printer) printJSON(res runner.Result) error {
	out := jsonResult{Source: res.SourceURI, Output: res.Output}
	if res.Err != nil {
		out.Error = &jsonError{Stage: res.ErrStage, Message: res.Err.Error(), Stderr: res.Stderr}
	} else {
		out.Rendering = &res.Rendering
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (p *printer) printText(res runner.Result) {
	if res.Err != nil {
		fmt.Fprintf(p.w, "%s %s\n", p.err.Render("✗"), res.SourceURI)
		fmt.Fprintf(p.w, "  %s\n", p.err.Render(fmt.Sprintf("Error (%s): %s", res.ErrStage, res.Err)))
		if res.Stderr != "" {
			fmt.Fprintf(p.w, "  Stderr: %s\n", strings.TrimSpace(res.Stderr))
		}
		return
	}

	if res.Output != "" {
		fmt.Fprint(p.w, res.Output)
		if !strings.HasSuffix(res.Output, "\n") {
			fmt.Fprintln(p.w)
		}
		return
	}

	r := res.Rendering
	data := view.BuildTemplateData(r, res.Document)

	state := strings.ToUpper(string(r.State))
	fmt.Fprintf(p.w, "%s %s\n", p.badge[r.State].Render("["+state+"]"), p.title.Render(r.Props.Title))
	if r.Subtitle != "" {
		fmt.Fprintf(p.w, "  %s\n", p.muted.Render(r.Subtitle))
	}
	for _, m := range r.Props.Metadata {
		fmt.Fprintf(p.w, "  %s %s\n", p.label.Render(m.Icon), m.Label)
	}
	for _, s := range r.Props.Specs {
		var labels []string
		for _, v := range s.Values {
			for _, b := range v.Badges {
				labels = append(labels, b.Label)
			}
		}
		fmt.Fprintf(p.w, "  %s %s\n", p.label.Render(s.Title+":"), strings.Join(labels, ", "))
	}
	for _, e := range r.Props.EventSections {
		fmt.Fprintf(p.w, "  %s %s", p.label.Render("Event:"), e.EventTitle)
		if e.EventSubtitle != "" {
			fmt.Fprintf(p.w, " %s", p.muted.Render("("+e.EventSubtitle+")"))
		}
		fmt.Fprintln(p.w)
	}

	if v := data.View["checked_at"]; v != "" {
		fmt.Fprintf(p.w, "  %s %s\n", p.label.Render("Checked at:"), v)
	}
	for _, inc := range data.Incidents {
		fmt.Fprintf(p.w, "  %s %s %s\n",
			p.title.Render(inc["number"]),
			inc["short_description"],
			p.muted.Render(fmt.Sprintf("[%s, urgency %s, impact %s]", inc["state"], inc["urgency"], inc["impact"])),
		)
	}
	if v := data.View["error"]; v != "" {
		fmt.Fprintf(p.w, "  %s\n", p.err.Render("Error: "+v))
	}
}
