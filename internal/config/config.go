package config

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/editsys/internal/config/loader"
)

// DefaultPath is the configuration file read when none is named.
const DefaultPath = "editsys.toml"

// Config holds every editsys setting.
type Config struct {
	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
	Script  ScriptConfig  `toml:"script"`
	Report  ReportConfig  `toml:"report"`
	Metrics MetricsConfig `toml:"metrics"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// Format is console or json.
	Format string `toml:"format"`
	// File is the output path. Empty or "-" writes to stderr.
	File string `toml:"file"`
}

// HistoryConfig configures the undo history.
type HistoryConfig struct {
	// Limit caps the undo stack. Zero means unbounded.
	Limit int `toml:"limit"`
}

// ScriptConfig configures the Lua runner.
type ScriptConfig struct {
	// Timeout bounds one script run. Zero means no timeout.
	Timeout Duration `toml:"timeout"`
}

// ReportConfig configures the report printed after a run.
type ReportConfig struct {
	// Format is auto, json, text or dump.
	Format string `toml:"format"`
	// Pretty indents JSON output.
	Pretty bool `toml:"pretty"`
}

// MetricsConfig configures the prometheus collectors.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// Duration is a time.Duration written as a string such as "5s" in
// configuration files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"console", "json"}
	reportFormats = []string{"auto", "json", "text", "dump"}
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Script: ScriptConfig{
			Timeout: Duration(10 * time.Second),
		},
		Report: ReportConfig{
			Format: "auto",
			Pretty: true,
		},
		Metrics: MetricsConfig{
			Namespace: "editsys",
		},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// WithFS reads configuration files through fs.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnv replaces the environment variable source.
func WithEnv(env *loader.EnvLoader) Option {
	return func(o *options) {
		o.env = env
	}
}

// Load builds a Config from the defaults, the file at path and the
// EDITSYS_ environment variables, later sources winning. A missing file is
// not an error. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	o := &options{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(loader.DefaultEnvPrefix),
	}
	for _, opt := range opts {
		opt(o)
	}

	merged, err := Default().toMap()
	if err != nil {
		return nil, err
	}

	if path != "" {
		file, err := loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	env, err := o.env.Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, env)

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap converts c to the generic form the loaders produce.
func (c *Config) toMap() (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return m, nil
}

// decode converts a merged map into a Config, rejecting unknown keys.
func decode(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}

	cfg := &Config{}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("%w:\n%s", ErrUnknownSetting, serr.String())
		}
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Validate checks every setting and reports all failures at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		fail("log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		fail("log.format", "must be console or json", c.Log.Format)
	}
	if c.History.Limit < 0 {
		fail("history.limit", "must not be negative", c.History.Limit)
	}
	if c.Script.Timeout < 0 {
		fail("script.timeout", "must not be negative", c.Script.Timeout.Std())
	}
	if !slices.Contains(reportFormats, c.Report.Format) {
		fail("report.format", "must be one of auto, json, text, dump", c.Report.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		fail("metrics.namespace", "must be set when metrics are enabled", c.Metrics.Namespace)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
