package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gridedit/internal/grid"
	"gridedit/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	replayAudit  bool
	replayStrict bool
)

// replayCmd applies a command script without the terminal UI
var replayCmd = &cobra.Command{
	Use:   "replay [file|-]",
	Short: "Apply a command script and print the resulting grid",
	Long: `Reads one command per line and applies it to a fresh grid:

  swap R,C R,C   move the value at R,C onto R,C (alias: move)
  add            append a row of generated values
  remove         remove the last row
  reset          restore the starting grid
  undo / redo    step through history

Blank lines and text after # are ignored. With no file, or "-", the script
is read from stdin. Refused commands are reported and skipped unless --strict
is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in, name = f, args[0]
	}

	cmds, err := session.ParseScript(in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("Replaying script", zap.String("script", name), zap.Int("commands", len(cmds)))

	out := cmd.OutOrStdout()
	s := newSession()
	refused := 0
	for i, c := range cmds {
		err := s.Apply(c)
		if err == nil {
			continue
		}
		if errors.Is(err, session.ErrFaulted) {
			return fmt.Errorf("command %d (%s): %w", i+1, c, err)
		}
		refused++
		fmt.Fprintf(cmd.ErrOrStderr(), "command %d (%s) refused: %v\n", i+1, c, err)
		if replayStrict {
			return fmt.Errorf("command %d (%s): %w", i+1, c, err)
		}
	}

	fmt.Fprint(out, formatGrid(s.CurrentValues()))
	h := s.History()
	fmt.Fprintf(out, "rows: %d  history: %d/%d  undo: %t  redo: %t  refused: %d\n",
		s.Rows(), h.Cursor+1, h.Len, h.CanUndo, h.CanRedo, refused)

	if replayAudit {
		fmt.Fprintln(out)
		for _, e := range s.Auditor().Events() {
			fmt.Fprintln(out, e.String())
		}
	}
	return nil
}

// formatGrid renders cells as right-aligned columns, one grid row per line.
func formatGrid(cells []session.CellValue) string {
	var b strings.Builder
	for i, c := range cells {
		text := c.Value.String()
		if c.Value.IsEmpty() {
			text = "."
		}
		fmt.Fprintf(&b, "%6s", text)
		if (i+1)%grid.Columns == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
