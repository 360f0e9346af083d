package ui

import (
	"gridedit/internal/config"
	"gridedit/internal/grid"
	"gridedit/internal/session"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// MsgEmptyCell is shown when the user tries to pick up an empty cell.
const MsgEmptyCell = "There is nothing to pick up there."

// ConfigChangedMsg carries a reloaded configuration into the program.
type ConfigChangedMsg struct {
	Config *config.Config
}

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusWarn
	statusError
)

// Model is the bubbletea model of the editor.
type Model struct {
	session *session.Session
	cfg     *config.Config
	logger  *zap.Logger

	keys    KeyMap
	help    help.Model
	styles  Styles
	palette *Palette
	cache   *RenderCache
	layout  LayoutConfig

	cursor grid.Position
	width  int
	height int

	status     string
	statusKind statusKind

	// overlay is the glamour cheat sheet; hints is the one-line key help.
	overlay  bool
	hints    bool
	helpText string

	fault error
}

// NewModel creates the model for s. A nil cfg uses the defaults.
func NewModel(s *session.Session, cfg *config.Config, logger *zap.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		session: s,
		cfg:     cfg,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		styles:  NewStyles(ThemeFor(cfg.UI.Theme)),
		palette: NewPalette(cfg.UI.PaletteSeed),
		cache:   NewRenderCache(0),
		hints:   cfg.UI.ShowHelp,
	}
	m.palette.Assign(s.Snapshot())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Fault returns the error that stopped the program, if any.
func (m Model) Fault() error {
	return m.fault
}

// Cursor returns the keyboard cursor.
func (m Model) Cursor() grid.Position {
	return m.cursor
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.statusKind = kind
	m.status = msg
}

func (m *Model) clearStatus() {
	m.setStatus(statusNone, "")
}

// clampCursor keeps the cursor inside the grid after the row count changed.
func (m *Model) clampCursor() {
	rows := m.session.Rows()
	if m.cursor.Row >= rows {
		m.cursor.Row = rows - 1
	}
	if m.cursor.Row < 0 {
		m.cursor.Row = 0
	}
	m.cursor.Col = min(max(m.cursor.Col, 0), grid.Columns-1)
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.styles = NewStyles(ThemeFor(cfg.UI.Theme))
	m.hints = cfg.UI.ShowHelp
	m.helpText = ""
	m.cache.Clear()
	m.logger.Debug("Config applied",
		zap.String("theme", cfg.UI.Theme),
		zap.Bool("show_help", cfg.UI.ShowHelp))
}
