// Package main is the entry point for solverterm, which runs GLPK (or replays
// a captured GLPK log) with its terminal output routed through configurable
// listeners.
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

	"github.com/dshills/solverterm/internal/app"
	"github.com/dshills/solverterm/internal/config"
	"github.com/dshills/solverterm/internal/glpk"
	"github.com/dshills/solverterm/internal/replay"
	"github.com/dshills/solverterm/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	replayPath string
	format     string
	model      string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.LogLevel),
		Output: os.Stderr,
		Prefix: "solverterm",
	})

	var engine *replay.Engine
	var installer terminal.Installer = glpk.TermHook{}
	if opts.replayPath != "" {
		engine = replay.NewEngine()
		installer = engine
	}

	application, err := app.New(app.Options{
		Config:    cfg,
		Installer: installer,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("%v", err)
		}
	}()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if engine != nil {
		if err := runReplay(ctx, engine, opts.replayPath, logger); err != nil {
			logger.Error("%v", err)
			return 1
		}
		return 0
	}

	if err := runModel(opts, logger); err != nil {
		logger.Error("%v", err)
		return 1
	}
	return 0
}

func runReplay(ctx context.Context, engine *replay.Engine, path string, logger *app.Logger) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening solver log: %w", err)
		}
		defer f.Close()
		r = f
	}

	stats, err := engine.Run(ctx, r, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("replayed %d lines: %d shown, %d suppressed", stats.Lines, stats.Shown, stats.Suppressed)
	return nil
}

func runModel(opts options, logger *app.Logger) error {
	format, err := modelFormat(opts)
	if err != nil {
		return err
	}

	if v, err := glpk.Version(); err == nil {
		logger.Debug("GLPK %s", v)
	}

	res, err := glpk.SolveFile(opts.model, format)
	if err != nil {
		return err
	}
	logger.Info("%s", describeResult(res))
	if res.MIP && res.Tree.Total() > 0 {
		logger.Debug("branch-and-cut callbacks: %s", res.Tree)
	}
	return nil
}

func describeResult(res glpk.Result) string {
	if !res.MIP {
		return fmt.Sprintf("LP status %s, objective %g", res.Status, res.Objective)
	}
	return fmt.Sprintf("MIP status %s, objective %g, %d improved solutions",
		res.Status, res.Objective, res.Tree[glpk.ReasonBingo])
}

func modelFormat(opts options) (glpk.Format, error) {
	if opts.format != "" {
		return glpk.ParseFormat(opts.format)
	}
	return glpk.FormatForPath(opts.model)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&opts.replayPath, "replay", "", "Replay a captured solver log instead of solving ('-' for stdin)")
	flag.StringVar(&opts.format, "format", "", "Model format (cplex, mps, fixed-mps, mathprog); inferred from the extension by default")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "solverterm - route GLPK terminal output through listeners\n\n")
		fmt.Fprintf(os.Stderr, "Usage: solverterm [options] MODEL\n")
		fmt.Fprintf(os.Stderr, "       solverterm [options] -replay LOG\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  solverterm -c solverterm.toml transport.lp   Solve with configured listeners\n")
		fmt.Fprintf(os.Stderr, "  solverterm -replay glpk.log -c quiet.yaml    Preview a filter on a saved log\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("solverterm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		if v, err := glpk.Version(); err == nil {
			fmt.Printf("GLPK: %s\n", v)
		}
		os.Exit(0)
	}

	if opts.replayPath == "" {
		if flag.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "Error: expected exactly one model file\n\n")
			flag.Usage()
			os.Exit(1)
		}
		opts.model = flag.Arg(0)
	}

	return opts
}
