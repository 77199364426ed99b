package app

import (
	"fmt"
	"strings"

	"github.com/devdash/devdash/internal/errors"
)

// CommandKind is a command palette verb.
type CommandKind int

const (
	CmdRefresh CommandKind = iota
	CmdReload
	CmdToggleCompact
	CmdFocus
	CmdQuit
	CmdHelp
)

// String returns the canonical spelling of the verb.
func (k CommandKind) String() string {
	switch k {
	case CmdRefresh:
		return "refresh"
	case CmdReload:
		return "reload"
	case CmdToggleCompact:
		return "compact"
	case CmdFocus:
		return "focus"
	case CmdQuit:
		return "quit"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// PaletteCommand is a parsed palette line. Pane is set only for CmdFocus.
type PaletteCommand struct {
	Kind CommandKind
	Pane Pane
}

// FocusUsage is the hint shown for a malformed focus command.
const FocusUsage = "usage: focus <pane>"

// PaletteHelp lists the palette vocabulary for the footer.
const PaletteHelp = "commands: refresh | reload | compact | focus <pane> | quit"

// ParseCommand parses one palette line. Matching is case-insensitive and
// ignores extra whitespace. Failures are ErrInput errors whose Message is
// suitable for the footer.
func ParseCommand(input string) (PaletteCommand, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return PaletteCommand{}, errors.New(errors.ErrInput, "empty command", PaletteHelp)
	}

	verb, args := fields[0], fields[1:]
	switch verb {
	case "refresh", "r":
		return PaletteCommand{Kind: CmdRefresh}, nil
	case "reload":
		return PaletteCommand{Kind: CmdReload}, nil
	case "compact":
		return PaletteCommand{Kind: CmdToggleCompact}, nil
	case "quit", "q", "exit":
		return PaletteCommand{Kind: CmdQuit}, nil
	case "help", "h":
		return PaletteCommand{Kind: CmdHelp}, nil
	case "focus", "f":
		if len(args) != 1 {
			return PaletteCommand{}, errors.New(errors.ErrInput, FocusUsage,
				"panes: git system prs docker aws plugins, or 1-6")
		}
		pane, ok := ParsePane(args[0])
		if !ok {
			return PaletteCommand{}, errors.New(errors.ErrInput,
				fmt.Sprintf("unknown pane: %s", args[0]), FocusUsage)
		}
		return PaletteCommand{Kind: CmdFocus, Pane: pane}, nil
	default:
		return PaletteCommand{}, errors.New(errors.ErrInput,
			fmt.Sprintf("unknown command: %s", verb), PaletteHelp)
	}
}

// EnterCommandMode opens the palette with empty input. Any open detail modal
// is closed.
func (s *State) EnterCommandMode() {
	s.mode = ModeCommandPalette
	s.input = s.input[:0]
	s.detail = nil
}

// ExitCommandMode closes the palette and discards its input.
func (s *State) ExitCommandMode() {
	if s.mode == ModeCommandPalette {
		s.mode = ModeNormal
	}
	s.input = s.input[:0]
}

// AppendCommandInput adds r to the palette line.
func (s *State) AppendCommandInput(r rune) {
	if s.mode != ModeCommandPalette {
		return
	}
	s.input = append(s.input, r)
}

// BackspaceCommandInput removes the last rune of the palette line.
func (s *State) BackspaceCommandInput() {
	if len(s.input) > 0 {
		s.input = s.input[:len(s.input)-1]
	}
}

// CommandInput returns the palette line typed so far.
func (s *State) CommandInput() string {
	return string(s.input)
}

// SubmitCommand parses the palette line and closes the palette whether or
// not parsing succeeded.
func (s *State) SubmitCommand() (PaletteCommand, error) {
	cmd, err := ParseCommand(s.CommandInput())
	s.ExitCommandMode()
	return cmd, err
}
