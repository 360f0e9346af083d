package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"gridedit/cmd/gridedit/ui"
	"gridedit/internal/config"
	"gridedit/internal/logging"
	"gridedit/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var noWatch bool

// newSession builds a session from the loaded config.
func newSession() *session.Session {
	auditor := logging.NewAuditor(logging.DefaultAuditSize, logs.Get(logging.CategoryAudit))
	return session.New(
		session.WithLogger(logs),
		session.WithAuditor(auditor),
		session.WithMaxDepth(cfg.History.MaxDepth),
	)
}

// runInteractive starts the terminal editor alongside the config watcher.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := newSession()
	model := ui.NewModel(s, cfg, logs.Get(logging.CategoryUI))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(gctx)
	defer cancel()

	if !noWatch {
		g.Go(func() error {
			return watchConfig(ctx, p)
		})
	}

	g.Go(func() error {
		// Leaving the editor stops the watcher.
		defer cancel()
		final, err := p.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("editor: %w", err)
		}
		if m, ok := final.(ui.Model); ok && m.Fault() != nil {
			return fmt.Errorf("editor stopped: %w", m.Fault())
		}
		return nil
	})

	err := g.Wait()
	logger.Info("Editor exited",
		zap.Int("rows", s.Rows()),
		zap.Int64("audit_events", s.Auditor().Total()),
		zap.Error(err))
	return err
}

// watchConfig forwards config file changes to the program until ctx is done.
// A watcher that cannot start is logged and otherwise ignored.
func watchConfig(ctx context.Context, p *tea.Program) error {
	clog := logs.Get(logging.CategoryConfig)
	w, err := config.NewWatcher(configPath, func(c *config.Config) {
		p.Send(ui.ConfigChangedMsg{Config: c})
	}, config.WithWatcherLogger(clog))
	if err != nil {
		clog.Warn("Config watcher unavailable", zap.Error(err))
		return nil
	}
	if err := w.Run(ctx); err != nil {
		clog.Warn("Config watcher failed", zap.String("path", w.Path()), zap.Error(err))
	}
	return nil
}
