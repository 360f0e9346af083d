package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridedit/internal/config"
	"gridedit/internal/grid"
	"gridedit/internal/logging"
	"gridedit/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupGlobals stands in for PersistentPreRunE.
func setupGlobals(t *testing.T) {
	t.Helper()
	cfg = config.DefaultConfig()
	logs = logging.Nop()
	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	replayAudit, replayStrict, configForce = false, false, false
}

func newTestCommand(stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

const replayScript = `# swap corners, grow, step through history
swap 0,0 2,2
add
undo
redo
remove
remove   # refused: only the initial rows are left
`

func TestReplay_Stdin(t *testing.T) {
	setupGlobals(t)
	cmd, out, errOut := newTestCommand(replayScript)

	if err := runReplay(cmd, nil); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}

	want := "   900   200   300\n" +
		"   400   500   600\n" +
		"   700   800   100\n" +
		"rows: 3  history: 4/4  undo: true  redo: false  refused: 1\n"
	if out.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out.String(), want)
	}
	if !strings.Contains(errOut.String(), "command 6 (remove) refused") {
		t.Errorf("expected refusal on stderr, got %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), session.MsgMinimum) {
		t.Errorf("expected refusal message %q, got %q", session.MsgMinimum, errOut.String())
	}
}

func TestReplay_File(t *testing.T) {
	setupGlobals(t)
	path := filepath.Join(t.TempDir(), "script.txt")
	if err := os.WriteFile(path, []byte("add\nadd\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd, out, _ := newTestCommand("")

	if err := runReplay(cmd, []string{path}); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}
	if !strings.Contains(out.String(), "  1300  1400  1500\n") {
		t.Errorf("expected second added row, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "rows: 5") {
		t.Errorf("expected 5 rows, got:\n%s", out.String())
	}
}

func TestReplay_Strict(t *testing.T) {
	setupGlobals(t)
	replayStrict = true
	cmd, out, _ := newTestCommand("remove\nadd\n")

	err := runReplay(cmd, nil)
	if err == nil {
		t.Fatal("expected strict replay to fail on the refused remove")
	}
	if !strings.Contains(err.Error(), "command 1 (remove)") {
		t.Errorf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no grid output, got:\n%s", out.String())
	}
}

func TestReplay_Audit(t *testing.T) {
	setupGlobals(t)
	replayAudit = true
	cmd, out, _ := newTestCommand("add\nundo\nundo\n")

	if err := runReplay(cmd, nil); err != nil {
		t.Fatalf("runReplay failed: %v", err)
	}
	for _, want := range []string{
		`session_start(1, "start", true, 3, 0).`,
		`gesture_applied(2, "add", true, 4, 1).`,
		`undo(3, "undo", true, 3, 0).`,
		`undo(4, "undo", false, 3, 0).`,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("audit trail missing %s in:\n%s", want, out.String())
		}
	}
}

func TestReplay_SyntaxError(t *testing.T) {
	setupGlobals(t)
	cmd, _, _ := newTestCommand("add\nflip 0,0\n")

	err := runReplay(cmd, nil)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected line number in error, got %v", err)
	}
}

func TestReplay_MissingFile(t *testing.T) {
	setupGlobals(t)
	cmd, _, _ := newTestCommand("")
	if err := runReplay(cmd, []string{filepath.Join(t.TempDir(), "nope.txt")}); err == nil {
		t.Fatal("expected an error for a missing script")
	}
}

func TestFormatGrid(t *testing.T) {
	cells := []session.CellValue{
		{Row: 0, Col: 0, Value: 100},
		{Row: 0, Col: 1, Value: grid.Empty},
		{Row: 0, Col: 2, Value: 300},
	}
	if got, want := formatGrid(cells), "   100     .   300\n"; got != want {
		t.Errorf("formatGrid = %q, want %q", got, want)
	}
}

func TestConfigInit(t *testing.T) {
	setupGlobals(t)
	cmd, out, _ := newTestCommand("")

	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit failed: %v", err)
	}
	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if loaded.Name != "gridedit" {
		t.Errorf("expected default name, got %q", loaded.Name)
	}

	// A second run leaves the file alone.
	out.Reset()
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("second runConfigInit failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("expected existing-file notice, got %q", out.String())
	}
}

func TestRootCommand_Version(t *testing.T) {
	setupGlobals(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", configPath, "version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), "gridedit "+version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	setupGlobals(t)
	if err := os.WriteFile(configPath, []byte("ui:\n  theme: neon\n"), 0644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--config", configPath, "version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}
