// Package main is the entry point for editsys, which runs a Lua editing
// script against a fresh document and prints the resulting state.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/dshills/editsys/internal/config"
	"github.com/dshills/editsys/internal/document"
	"github.com/dshills/editsys/internal/engine"
	"github.com/dshills/editsys/internal/engine/history"
	"github.com/dshills/editsys/internal/logging"
	"github.com/dshills/editsys/internal/metrics"
	"github.com/dshills/editsys/internal/report"
	"github.com/dshills/editsys/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks command line mistakes, which exit with status 2.
var errUsage = errors.New("usage")

type options struct {
	ConfigPath string
	Format     string
	LogLevel   string
	Metrics    bool
	Script     string

	showVersion bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "editsys %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	format, err := resolveFormat(cfg.Report.Format, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger, syncLog, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = syncLog() }()

	e := engine.New(
		engine.WithLogger(logger),
		engine.WithLimit(cfg.History.Limit),
	)
	doc := document.New(e.History())
	defer doc.Close()

	var (
		registry  *prometheus.Registry
		collector *metrics.Collector
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		collector = metrics.New(registry, cfg.Metrics.Namespace)
		collector.Observe(e.History())
		defer collector.Close()
	}

	runner := script.New(doc, e.History(),
		script.WithTimeout(cfg.Script.Timeout.Std()),
		script.WithLogger(logger.Named("script")),
		script.WithOutput(stdout),
	)
	defer runner.Close()

	start := time.Now()
	runErr := e.Apply(func(*history.History) error {
		return runner.RunFile(ctx, opts.Script)
	})
	if collector != nil {
		collector.ObserveScript(time.Since(start), runErr)
	}

	status := 0
	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		status = 1
	}

	if err := report.Write(stdout, report.Build(doc, e), format, report.Options{Pretty: cfg.Report.Pretty}); err != nil {
		fmt.Fprintf(stderr, "Error: writing report: %v\n", err)
		return 1
	}

	if registry != nil {
		if err := metrics.WriteText(stderr, registry); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	return status
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("editsys", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (default "+config.DefaultPath+")")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.Format, "format", "", "Report format (auto, json, text, dump)")
	fs.StringVar(&opts.Format, "f", "", "Report format (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.Metrics, "metrics", false, "Print metrics to stderr after the run")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "editsys - run an editing script with undo history\n\n")
		fmt.Fprintf(stderr, "Usage: editsys [options] script.lua\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  editsys edit.lua              Run a script, report as text or JSON\n")
		fmt.Fprintf(stderr, "  editsys -f dump edit.lua      Print a Go-syntax dump of the result\n")
		fmt.Fprintf(stderr, "  editsys -metrics edit.lua     Also print prometheus metrics\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.showVersion {
		return opts, nil
	}

	switch fs.NArg() {
	case 1:
		opts.Script = fs.Arg(0)
	case 0:
		fs.Usage()
		return opts, fmt.Errorf("%w: missing script", errUsage)
	default:
		return opts, fmt.Errorf("%w: expected one script, got %d", errUsage, fs.NArg())
	}

	return opts, nil
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(opts options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Format != "" {
		cfg.Report.Format = opts.Format
	}
	if opts.Metrics {
		cfg.Metrics.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveFormat turns "auto" into text on a terminal and JSON otherwise.
func resolveFormat(name string, out io.Writer) (report.Format, error) {
	if name != "auto" {
		return report.ParseFormat(name)
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return report.FormatText, nil
	}
	return report.FormatJSON, nil
}
