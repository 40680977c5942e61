// Package app assembles a terminal registry and its listeners from configuration.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/solverterm/internal/config"
	"github.com/dshills/solverterm/internal/console"
	"github.com/dshills/solverterm/internal/listener"
	"github.com/dshills/solverterm/internal/terminal"
)

// Options configures New.
type Options struct {
	// Config selects the listeners.
	Config config.Config

	// Installer connects the registry to the engine. Required.
	Installer terminal.Installer

	// Logger receives diagnostics. Defaults to NullLogger.
	Logger *Logger

	// Screen is used for the console listener instead of the controlling
	// terminal. The caller must have initialized it.
	Screen tcell.Screen
}

// App owns a registry and the listeners it created for it.
type App struct {
	mu     sync.Mutex
	cfg    config.Config
	logger *Logger

	registry   *terminal.Registry
	transcript *listener.Transcript
	script     *listener.Script
	console    *console.Console
	ownConsole bool

	stopWatch context.CancelFunc
	watchDone chan struct{}
	closed    bool
}

// New builds the registry and registers listeners in a fixed order:
// transcript, console, pattern, script, echo. Listeners are registered only
// when configured; with none configured the registry stays empty, the hook
// is never installed, and the engine prints as usual.
func New(opts Options) (*App, error) {
	if opts.Installer == nil {
		return nil, NewOperationError("create", "registry", errors.New("installer is required"))
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}

	a := &App{
		cfg:    opts.Config,
		logger: logger,
	}

	regOpts := []terminal.Option{terminal.WithLogger(logger.WithComponent("terminal"))}
	if a.cfg.Recover {
		regOpts = append(regOpts, terminal.WithRecover(func(err *terminal.PanicError) {
			logger.WithComponent("terminal").Error("listener dropped line %q: %v", err.Text, err.Value)
		}))
	}
	a.registry = terminal.New(opts.Installer, regOpts...)

	if err := a.register(opts.Screen); err != nil {
		_ = a.Close()
		return nil, err
	}

	if a.cfg.WatchScript && a.script != nil {
		a.startWatch()
	}
	return a, nil
}

// register creates configured listeners and adds them to the registry.
func (a *App) register(screen tcell.Screen) error {
	cfg := a.cfg

	if cfg.TranscriptDir != "" {
		tr, err := listener.NewTranscript(cfg.TranscriptDir)
		if err != nil {
			return NewOperationError("open", "transcript", err)
		}
		a.transcript = tr
		a.add("transcript", tr)
		a.logger.Info("writing transcript to %s", tr.Path())
	}

	if cfg.Console {
		var opts []console.Option
		if cfg.Scrollback > 0 {
			opts = append(opts, console.WithScrollback(cfg.Scrollback))
		}
		if screen != nil {
			a.console = console.New(screen, opts...)
		} else {
			c, err := console.NewTerminal(opts...)
			if err != nil {
				return NewOperationError("open", "console", err)
			}
			a.console = c
			a.ownConsole = true
		}
		a.add("console", a.console)
	}

	if len(cfg.Highlight) > 0 || len(cfg.Suppress) > 0 {
		p, err := listener.NewPattern(cfg.Highlight, cfg.Suppress, cfg.PatternDefault)
		if err != nil {
			return NewOperationError("compile", "patterns", err)
		}
		a.add("pattern", p)
	}

	if cfg.Script != "" {
		opts := []listener.ScriptOption{
			listener.WithScriptLogger(a.logger.WithComponent("script")),
		}
		if cfg.ScriptTimeoutMS > 0 {
			opts = append(opts, listener.WithScriptTimeout(cfg.ScriptTimeout()))
		}
		s, err := listener.NewScript(cfg.Script, opts...)
		if err != nil {
			return NewOperationError("load", cfg.Script, err)
		}
		a.script = s
		a.add("script", s)
	}

	if cfg.Echo {
		a.add("echo", listener.Echo(true))
	}
	return nil
}

func (a *App) add(name string, l terminal.Listener) {
	a.registry.Add(l)
	a.logger.WithField("listener", name).Debug("registered listener")
}

// Registry returns the registry the listeners are attached to.
func (a *App) Registry() *terminal.Registry {
	return a.registry
}

// Transcript returns the transcript listener, or nil if none is configured.
func (a *App) Transcript() *listener.Transcript {
	return a.transcript
}

// Reload re-reads the script listener. It is a no-op without a script.
func (a *App) Reload() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.script == nil {
		return nil
	}
	if err := a.script.Reload(); err != nil {
		return NewOperationError("reload", a.script.Path(), err)
	}
	a.logger.Info("reloaded script %s", a.script.Path())
	return nil
}

func (a *App) startWatch() {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	a.watchDone = make(chan struct{})
	path := a.script.Path()

	go func() {
		defer close(a.watchDone)
		err := config.Watch(ctx, path, func() {
			if err := a.Reload(); err != nil {
				a.logger.Warn("%v", err)
			}
		})
		if err != nil {
			a.logger.Warn("script watch stopped: %v", err)
		}
	}()
}

// Close stops the script watcher and releases listener resources. The
// registry keeps its listeners and the engine hook stays installed.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
		<-a.watchDone
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	if a.script != nil {
		a.script.Close()
	}
	if a.ownConsole {
		a.console.Close()
	}
	if a.transcript != nil {
		if err := a.transcript.Close(); err != nil {
			errs = append(errs, NewOperationError("close", "transcript", err))
		}
	}
	return errors.Join(errs...)
}
