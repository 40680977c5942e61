package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config selects and tunes the listeners registered on the terminal hook.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Echo registers a listener that always asks the engine to print.
	Echo bool `toml:"echo" yaml:"echo"`

	// Highlight and Suppress configure the pattern listener. It is only
	// registered when at least one expression is set.
	Highlight []string `toml:"highlight" yaml:"highlight"`
	Suppress  []string `toml:"suppress" yaml:"suppress"`

	// PatternDefault is the pattern listener's vote for unmatched lines.
	PatternDefault bool `toml:"pattern_default" yaml:"pattern_default"`

	// TranscriptDir enables per-session transcripts.
	TranscriptDir string `toml:"transcript_dir" yaml:"transcript_dir"`

	// Script is a Lua file defining output(line).
	Script string `toml:"script" yaml:"script"`

	// ScriptTimeoutMS bounds each script call. Zero uses the listener default.
	ScriptTimeoutMS int `toml:"script_timeout_ms" yaml:"script_timeout_ms"`

	// WatchScript reloads the script when it changes on disk.
	WatchScript bool `toml:"watch_script" yaml:"watch_script"`

	// Console renders output in a full-screen view instead of stdout.
	Console bool `toml:"console" yaml:"console"`

	// Scrollback is the console's line limit. Zero uses the console default.
	Scrollback int `toml:"scrollback" yaml:"scrollback"`

	// Recover isolates listener panics instead of letting them reach the engine.
	Recover bool `toml:"recover" yaml:"recover"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
	}
}

// ScriptTimeout returns the script timeout as a duration.
func (c Config) ScriptTimeout() time.Duration {
	return time.Duration(c.ScriptTimeoutMS) * time.Millisecond
}

// Load reads the file at path on top of Default().
// An empty path or a missing file returns Default() without error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(path, data, &cfg); err != nil {
		return cfg, err
	}

	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// decode unmarshals data using the decoder for the file extension.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return perr
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// resolvePaths makes relative file settings relative to dir.
func (c *Config) resolvePaths(dir string) {
	if c.Script != "" && !filepath.IsAbs(c.Script) {
		c.Script = filepath.Join(dir, c.Script)
	}
	if c.TranscriptDir != "" && !filepath.IsAbs(c.TranscriptDir) {
		c.TranscriptDir = filepath.Join(dir, c.TranscriptDir)
	}
}

// Validate checks settings that can be verified without side effects.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log_level", Message: fmt.Sprintf("%q must be debug, info, warn, or error", c.LogLevel)}
	}

	for _, group := range []struct {
		field string
		exprs []string
	}{
		{"highlight", c.Highlight},
		{"suppress", c.Suppress},
	} {
		for _, expr := range group.exprs {
			if _, err := regexp.Compile(expr); err != nil {
				return &ValidationError{Field: group.field, Message: err.Error()}
			}
		}
	}

	if c.ScriptTimeoutMS < 0 {
		return &ValidationError{Field: "script_timeout_ms", Message: "must not be negative"}
	}
	if c.Scrollback < 0 {
		return &ValidationError{Field: "scrollback", Message: "must not be negative"}
	}
	if c.WatchScript && c.Script == "" {
		return &ValidationError{Field: "watch_script", Message: "requires script"}
	}
	return nil
}
