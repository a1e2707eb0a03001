package runner

import (
	"time"

	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/view"
)

// Result captures the outcome of rendering one snapshot source.
// Errors are stored in Err/ErrStage rather than returned, so the caller always
// has something to display.
type Result struct {
	SourceURI  string
	SourcePath string
	Document   *execution.Document
	Rendering  view.Rendering
	Output     string // rendered output template, empty without one
	Duration   time.Duration
	Err        error
	ErrStage   string // "resolve", "load", "decode", "template"
	Stderr     string
}
