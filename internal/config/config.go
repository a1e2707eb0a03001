package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/goccy/go-yaml"
)

//go:embed example.yaml
var exampleYAML []byte

type Config struct {
	Options  Options                `yaml:"options"`
	Labels   Labels                 `yaml:"labels"`
	Colors   map[string]string      `yaml:"colors" validate:"dive,required"`
	States   map[string]StateStyle  `yaml:"states" validate:"dive,keys,oneof=neutral error cancelled running high low clear failed,endkeys"`
	Triggers map[string]TriggerSpec `yaml:"triggers" validate:"dive"`
	Template string                 `yaml:"template"`
}

// Options are scalar settings. Every field is also a CLI flag derived from
// its yaml tag, so they must all be strings.
type Options struct {
	Snapshot     string `yaml:"snapshot"`
	SnapshotsDir string `yaml:"snapshots_dir"`
	Timeout      string `yaml:"timeout" validate:"omitempty,duration"`
	Format       string `yaml:"format" validate:"omitempty,oneof=text json"`
	LogLevel     string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Timezone     string `yaml:"timezone" validate:"omitempty,timezone"`
	Refresh      string `yaml:"refresh" validate:"omitempty,cronspec"`
	Color        string `yaml:"color" validate:"omitempty,oneof=auto always never"`
}

// Labels override entries of the built-in ServiceNow label tables.
type Labels struct {
	State   map[string]string `yaml:"state"`
	Urgency map[string]string `yaml:"urgency"`
	Impact  map[string]string `yaml:"impact"`
}

type StateStyle struct {
	Icon            string `yaml:"icon" validate:"required"`
	TextColor       string `yaml:"text_color" validate:"required"`
	BackgroundColor string `yaml:"background_color" validate:"required"`
	BadgeColor      string `yaml:"badge_color" validate:"required"`
}

// TriggerSpec renders a trigger's root event from templates. Title handles
// both a plain string and an object with title/subtitle.
type TriggerSpec struct {
	Title    string `yaml:"title" validate:"required"`
	Subtitle string `yaml:"subtitle"`
}

func (t *TriggerSpec) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		t.Title = str
		return nil
	}

	type triggerAlias TriggerSpec
	var obj triggerAlias
	if err := unmarshal(&obj); err != nil {
		return fmt.Errorf("triggers: must be a title template string or an object with title/subtitle")
	}
	*t = TriggerSpec(obj)
	return nil
}

// Defaults returns the settings used when no config file exists.
func Defaults() *Config {
	return &Config{
		Options: Options{
			Timeout:  "10s",
			Format:   "text",
			LogLevel: "warn",
			Refresh:  "@every 1m",
			Color:    "auto",
		},
	}
}

// Example returns the commented example config written by init.
func Example() []byte {
	out := make([]byte, len(exampleYAML))
	copy(out, exampleYAML)
	return out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse expands env vars in data and decodes it. Options left empty take
// their value from Defaults.
func Parse(data []byte) (*Config, error) {
	data, err := envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := Defaults().Options
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&c.Options.Timeout, d.Timeout)
	fill(&c.Options.Format, d.Format)
	fill(&c.Options.LogLevel, d.LogLevel)
	fill(&c.Options.Refresh, d.Refresh)
	fill(&c.Options.Color, d.Color)
}
