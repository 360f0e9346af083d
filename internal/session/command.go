package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gridedit/internal/grid"
)

// ErrSyntax is returned for a script line that is not a command.
var ErrSyntax = errors.New("invalid command")

// CommandKind identifies a gesture of the command stream.
type CommandKind int

const (
	CommandSwap CommandKind = iota + 1
	CommandAddRow
	CommandRemoveRow
	CommandReset
	CommandUndo
	CommandRedo
)

var kindNames = map[CommandKind]string{
	CommandSwap:      "swap",
	CommandAddRow:    "add",
	CommandRemoveRow: "remove",
	CommandReset:     "reset",
	CommandUndo:      "undo",
	CommandRedo:      "redo",
}

func (k CommandKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is one discrete gesture. From and To are only used by swaps.
type Command struct {
	Kind CommandKind
	From grid.Position
	To   grid.Position
}

// String renders the command in script form.
func (c Command) String() string {
	if c.Kind == CommandSwap {
		return fmt.Sprintf("swap %d,%d %d,%d", c.From.Row, c.From.Col, c.To.Row, c.To.Col)
	}
	return c.Kind.String()
}

// ParseCommand parses one script line. Blank lines and lines starting with
// '#' report ok=false and no error.
func ParseCommand(line string) (cmd Command, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, false, nil
	}

	switch fields[0] {
	case "swap", "move":
		if len(fields) != 3 {
			return Command{}, false, fmt.Errorf("%w: swap takes two positions, got %q", ErrSyntax, line)
		}
		from, err := parsePosition(fields[1])
		if err != nil {
			return Command{}, false, err
		}
		to, err := parsePosition(fields[2])
		if err != nil {
			return Command{}, false, err
		}
		return Command{Kind: CommandSwap, From: from, To: to}, true, nil
	}

	for kind, name := range kindNames {
		if kind == CommandSwap || fields[0] != name {
			continue
		}
		if len(fields) != 1 {
			return Command{}, false, fmt.Errorf("%w: %s takes no arguments", ErrSyntax, name)
		}
		return Command{Kind: kind}, true, nil
	}
	return Command{}, false, fmt.Errorf("%w: unknown command %q", ErrSyntax, fields[0])
}

func parsePosition(s string) (grid.Position, error) {
	r, c, found := strings.Cut(s, ",")
	if !found {
		return grid.Position{}, fmt.Errorf("%w: position %q is not ROW,COL", ErrSyntax, s)
	}
	row, err := strconv.Atoi(r)
	if err != nil {
		return grid.Position{}, fmt.Errorf("%w: row %q: %v", ErrSyntax, r, err)
	}
	col, err := strconv.Atoi(c)
	if err != nil {
		return grid.Position{}, fmt.Errorf("%w: col %q: %v", ErrSyntax, c, err)
	}
	return grid.Position{Row: row, Col: col}, nil
}

// ParseScript reads one command per line.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		cmd, ok, err := ParseCommand(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			cmds = append(cmds, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}
