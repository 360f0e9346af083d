package session

import (
	"errors"
	"strings"
	"testing"

	"gridedit/internal/grid"

	"github.com/google/go-cmp/cmp"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantOK  bool
		wantErr bool
	}{
		{line: "swap 0,0 2,2", want: Command{Kind: CommandSwap, From: pos(0, 0), To: pos(2, 2)}, wantOK: true},
		{line: "  MOVE 1,2   0,1 ", want: Command{Kind: CommandSwap, From: pos(1, 2), To: pos(0, 1)}, wantOK: true},
		{line: "add", want: Command{Kind: CommandAddRow}, wantOK: true},
		{line: "remove # drop the last row", want: Command{Kind: CommandRemoveRow}, wantOK: true},
		{line: "reset", want: Command{Kind: CommandReset}, wantOK: true},
		{line: "undo", want: Command{Kind: CommandUndo}, wantOK: true},
		{line: "redo", want: Command{Kind: CommandRedo}, wantOK: true},
		{line: "", wantOK: false},
		{line: "   # just a comment", wantOK: false},
		{line: "swap 0,0", wantErr: true},
		{line: "swap a,0 1,1", wantErr: true},
		{line: "swap 00 1,1", wantErr: true},
		{line: "add 3", wantErr: true},
		{line: "shuffle", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok, err := ParseCommand(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrSyntax) {
					t.Fatalf("expected ErrSyntax, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommandString_RoundTrips(t *testing.T) {
	cmds := []Command{
		{Kind: CommandSwap, From: pos(2, 1), To: pos(0, 0)},
		{Kind: CommandAddRow},
		{Kind: CommandRemoveRow},
		{Kind: CommandReset},
		{Kind: CommandUndo},
		{Kind: CommandRedo},
	}
	for _, c := range cmds {
		got, ok, err := ParseCommand(c.String())
		if err != nil || !ok {
			t.Fatalf("ParseCommand(%q) = %v, %v", c.String(), ok, err)
		}
		if got != c {
			t.Errorf("round trip of %q gave %+v", c.String(), got)
		}
	}
}

func TestParseScript(t *testing.T) {
	script := `# build a taller grid
add
add

swap 4,2 0,0
undo
`
	cmds, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	want := []Command{
		{Kind: CommandAddRow},
		{Kind: CommandAddRow},
		{Kind: CommandSwap, From: pos(4, 2), To: pos(0, 0)},
		{Kind: CommandUndo},
	}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScript_ReportsLine(t *testing.T) {
	_, err := ParseScript(strings.NewReader("add\nadd\nfly\n"))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected line number in %q", err)
	}
}

func TestReplayScript(t *testing.T) {
	cmds, err := ParseScript(strings.NewReader("add\nswap 3,0 0,0\nremove\nundo\nundo\n"))
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	s := New()
	for _, c := range cmds {
		if err := s.Apply(c); err != nil {
			t.Fatalf("Apply(%s) failed: %v", c, err)
		}
	}
	want := grid.Snapshot{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000, 1100, 1200}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("replayed state mismatch (-want +got):\n%s", diff)
	}
}
