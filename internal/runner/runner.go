package runner

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sznuper/incidentview/internal/config"
	"github.com/sznuper/incidentview/internal/execution"
	"github.com/sznuper/incidentview/internal/incidents"
	"github.com/sznuper/incidentview/internal/snapshot"
	"github.com/sznuper/incidentview/internal/view"
)

// Runner orchestrates the resolve → load → decode → map → template pipeline.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	mapper *view.Mapper
	stdin  io.Reader
}

// Option customises a Runner.
type Option func(*Runner)

// WithClock fixes the clock used for relative times.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.mapper = NewMapper(r.cfg, now) }
}

// WithStdin sets the reader used for the "-" source.
func WithStdin(stdin io.Reader) Option {
	return func(r *Runner) { r.stdin = stdin }
}

// New creates a Runner with the given config and logger.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: logger,
		mapper: NewMapper(cfg, time.Now),
		stdin:  os.Stdin,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mapper returns the view mapper built from the config.
func (r *Runner) Mapper() *view.Mapper { return r.mapper }

// NewMapper builds a view mapper from the config's labels, colours, state
// styles and trigger templates.
func NewMapper(cfg *config.Config, now func() time.Time) *view.Mapper {
	labels := incidents.DefaultLabels().WithOverrides(cfg.Labels.State, cfg.Labels.Urgency, cfg.Labels.Impact)

	states := make(view.StateMap, len(cfg.States))
	for name, s := range cfg.States {
		states[incidents.DisplayState(name)] = view.StateStyle{
			Icon:            s.Icon,
			TextColor:       s.TextColor,
			BackgroundColor: s.BackgroundColor,
			BadgeColor:      s.BadgeColor,
		}
	}

	triggers := make(view.Triggers, len(cfg.Triggers))
	for name, t := range cfg.Triggers {
		triggers[name] = view.TemplateTrigger{Title: t.Title, Subtitle: t.Subtitle}
	}

	return view.NewMapper(view.Options{
		Labels:   labels,
		Format:   view.Formatter{Now: now, Location: cfg.Options.Location()},
		Colors:   view.ColorClasses(cfg.Colors),
		StateMap: states,
		Triggers: triggers,
	})
}

// Run renders the configured default snapshot source.
func (r *Runner) Run(ctx context.Context, tmpl string) Result {
	return r.RunSource(ctx, r.cfg.Options.Snapshot, tmpl)
}

// RunSource renders a single snapshot source. tmpl is optional; when set,
// the output template is rendered into Result.Output.
func (r *Runner) RunSource(ctx context.Context, uri, tmpl string) Result {
	log := r.logger.With("source", uri)
	start := time.Now()

	result := Result{SourceURI: uri}
	fail := func(stage string, err error) Result {
		result.Err = err
		result.ErrStage = stage
		result.Duration = time.Since(start)
		log.Error(stage+" failed", "error", err)
		return result
	}

	// Stage 1: Resolve snapshot URI.
	log.Info("resolving snapshot")
	src, err := snapshot.Resolve(uri, r.cfg.Options.SnapshotsDir)
	if err != nil {
		return fail("resolve", err)
	}
	result.SourcePath = src.Path
	log.Debug("snapshot resolved", "path", src.Path, "scheme", src.Scheme)

	// Stage 2: Load raw bytes.
	timeout := r.cfg.Options.TimeoutDuration()
	log.Info("loading snapshot", "timeout", timeout)
	loaded, err := snapshot.Load(ctx, src, snapshot.LoadOpts{
		Timeout: timeout,
		Stdin:   r.stdin,
	})
	if loaded != nil {
		result.Stderr = loaded.Stderr
	}
	if err != nil {
		return fail("load", err)
	}
	log.Debug("snapshot loaded", "bytes", len(loaded.Data), "duration", loaded.Duration, "stderr", loaded.Stderr)

	// Stage 3: Decode document.
	log.Info("decoding snapshot")
	doc, err := execution.DecodeDocument(loaded.Data)
	if err != nil {
		return fail("decode", err)
	}
	result.Document = doc
	log.Debug("snapshot decoded", "executions", len(doc.Executions), "node", doc.Node.ID)

	// Stage 4: Map to view models. This cannot fail.
	result.Rendering = r.mapper.Build(doc)
	log.Debug("view built",
		"state", result.Rendering.State,
		"rule", result.Rendering.Rule,
		"channel", result.Rendering.Channel,
		"incidents", result.Rendering.Count,
	)

	// Stage 5: Render output template.
	if tmpl != "" {
		log.Info("rendering template")
		out, err := view.Render(tmpl, view.BuildTemplateData(result.Rendering, doc))
		if err != nil {
			return fail("template", err)
		}
		result.Output = out
	}

	result.Duration = time.Since(start)
	log.Info("render completed", "state", result.Rendering.State, "duration", result.Duration)
	return result
}
