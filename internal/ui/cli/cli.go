// Package cli implements a command-line UI for the game: it prints boards, moves and results.
package cli

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/janpfeifer/pacmanGo/internal/match"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"strings"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// UI prints to a writer, os.Stdout by default.
type UI struct {
	color, clearScreen bool
	w                  io.Writer
}

// New creates a UI printing to os.Stdout. If color is set, ANSI colors are used.
func New(color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		w:           os.Stdout,
	}
}

// WithWriter makes the UI print to w. Output is not centered unless w is os.Stdout.
func (ui *UI) WithWriter(w io.Writer) *UI {
	ui.w = w
	return ui
}

// terminalWidth returns the width of the terminal, or 0 if not writing to one.
func (ui *UI) terminalWidth() int {
	f, ok := ui.w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			fmt.Fprintln(ui.w)
			continue
		}
		fmt.Fprintf(ui.w, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// Print the board with a header line, and its summary.
func (ui *UI) Print(board *Board) {
	if ui.clearScreen {
		fmt.Fprint(ui.w, "\033c")
	}
	fmt.Fprintf(ui.w, "\n%sMove #%d%s\n\n", ui.boldStart(), board.MoveNumber, ui.colorEnd())
	ui.PrintBoard(board)
	fmt.Fprintln(ui.w)
	fmt.Fprintf(ui.w, "\t%s\n", board.Summary())
}

// PrintBoard prints the board, one character per cell.
func (ui *UI) PrintBoard(board *Board) {
	l := board.Layout()
	var sb strings.Builder
	for y := l.Height - 1; y >= 0; y-- {
		for x := range l.Width {
			cell := board.CellAt(Pos{x, y})
			sb.WriteString(ui.colorStart(cell))
			sb.WriteByte(cell)
			sb.WriteString(ui.colorEnd())
		}
		sb.WriteByte('\n')
	}
	ui.printCentered(strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAction prints the action taken by an agent, with its value if it is Pacman.
func (ui *UI) PrintAction(board *Board, agentIdx int, action Action, value float64) {
	if agentIdx == PacmanIndex {
		fmt.Fprintf(ui.w, "\t%sPacman%s: %s (value=%.3f)\n", ui.colorStart('P'), ui.colorEnd(), action, value)
		return
	}
	fmt.Fprintf(ui.w, "\t%sGhost #%d%s: %s\n", ui.colorStart('G'), agentIdx, ui.colorEnd(), action)
}

// PrintResult prints the outcome of a match.
func (ui *UI) PrintResult(result *match.Result) {
	var msg string
	switch {
	case result.Win:
		msg = fmt.Sprintf("*** PACMAN WINS!! Score %.0f in %d moves ***", result.Score, result.Moves)
	case result.Lose:
		msg = fmt.Sprintf("*** PACMAN WAS CAUGHT: score %.0f in %d moves ***", result.Score, result.Moves)
	default:
		msg = fmt.Sprintf("*** STOPPED after %d moves: score %.0f ***", result.Moves, result.Score)
	}
	fmt.Fprintln(ui.w)
	if ui.color {
		background := "10"
		if !result.Win {
			background = "9"
		}
		msg = lipgloss.NewStyle().
			Background(lipgloss.Color(background)).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2).
			Render(msg)
	}
	ui.printCentered(msg)
	fmt.Fprintln(ui.w)
}

// PrintTable prints a table with the given headers, used to report statistics over many matches.
func (ui *UI) PrintTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if ui.color {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true).Foreground(lipgloss.Color("11"))
			}
			return style
		})
	}
	ui.printCentered(t.Render())
}

// colorStart returns the ANSI sequence to print the given layout cell.
func (ui *UI) colorStart(cell byte) string {
	if !ui.color {
		return ""
	}
	switch cell {
	case 'P':
		return "\033[93;1m"
	case 'G':
		return "\033[91;1m"
	case 'S':
		return "\033[97;44;1m"
	case '%':
		return "\033[34m"
	case 'o':
		return "\033[97;1m"
	}
	return ""
}

func (ui *UI) boldStart() string {
	if !ui.color {
		return ""
	}
	return "\033[37;03;1m"
}

func (ui *UI) colorEnd() string {
	if !ui.color {
		return ""
	}
	return "\033[39;49;0m"
}
