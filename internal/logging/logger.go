// Package logging provides config-driven categorized logging for gridedit.
// Every category is a named child of one zap logger.
// Logging is controlled by debug_mode in the config - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gridedit/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup, shutdown, CLI commands
	CategoryGrid      Category = "grid"      // Cell and row mutations
	CategoryHistory   Category = "history"   // Snapshot stack and cursor moves
	CategoryLifecycle Category = "lifecycle" // Row-count reconciliation
	CategorySession   Category = "session"   // Gesture dispatch and faults
	CategoryUI        Category = "ui"        // Terminal UI events
	CategoryConfig    Category = "config"    // Config load and hot reload
	CategoryAudit     Category = "audit"     // Mirrored audit trail
)

// Options control where output goes when no log file is configured.
type Options struct {
	// Verbose forces debug mode at debug level (the --verbose flag)
	Verbose bool
	// Stderr writes to stderr when no file is configured; the TUI leaves
	// this off so log lines never land on the screen
	Stderr bool
}

// Logger hands out category loggers.
type Logger struct {
	base *zap.Logger
	cfg  config.LoggingConfig

	mu    sync.RWMutex
	named map[Category]*zap.Logger
}

// New builds a Logger from the logging config.
func New(cfg config.LoggingConfig, opts Options) (*Logger, error) {
	if opts.Verbose {
		cfg.DebugMode = true
		cfg.Level = "debug"
	}

	l := &Logger{cfg: cfg, named: make(map[Category]*zap.Logger)}

	output := cfg.File
	if output == "" && opts.Stderr {
		output = "stderr"
	}
	if !cfg.DebugMode || output == "" {
		// Silent no-op in production mode
		l.base = zap.NewNop()
		return l, nil
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.Format != "json" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{output}

	base, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l.base = base
	l.base.Named(string(CategoryBoot)).Debug("Logging initialized",
		zap.String("level", level.String()),
		zap.String("output", output),
		zap.Int("category_filters", len(cfg.Categories)))
	return l, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zap.NewNop(), named: make(map[Category]*zap.Logger)}
}

// Wrap turns an existing zap logger into a Logger with every category on.
func Wrap(base *zap.Logger) *Logger {
	return &Logger{
		base:  base,
		cfg:   config.LoggingConfig{DebugMode: true},
		named: make(map[Category]*zap.Logger),
	}
}

// Enabled returns whether a category writes anything.
func (l *Logger) Enabled(category Category) bool {
	return l.cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) the logger for the given category.
// Returns a no-op logger if debug mode or the category is disabled.
func (l *Logger) Get(category Category) *zap.Logger {
	if !l.Enabled(category) {
		return zap.NewNop()
	}

	l.mu.RLock()
	if zl, ok := l.named[category]; ok {
		l.mu.RUnlock()
		return zl
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if zl, ok := l.named[category]; ok {
		return zl
	}
	zl := l.base.Named(string(category))
	l.named[category] = zl
	return zl
}

// Base returns the root zap logger.
func (l *Logger) Base() *zap.Logger { return l.base }

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.base.Sync() }
