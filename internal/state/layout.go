package state

import (
	"cmp"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/pkg/errors"
	"slices"
	"strings"
)

// Layout is the static part of a game: walls and the initial positions of everything else.
// It is shared, read-only, by all the boards of a game.
type Layout struct {
	Name          string
	Width, Height int

	walls       []bool
	food        []Pos
	capsules    []Pos
	pacmanStart Pos
	ghostStarts []Pos
}

// ParseLayout parses a layout in the classic text format:
//
//	% wall, . food, o capsule, P Pacman, G (or 1-4) ghost, space is empty.
//
// The first line of text is the top row of the maze. All rows must have the same width,
// and there must be exactly one Pacman.
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, errors.Errorf("layout %q is empty", name)
	}
	l := &Layout{
		Name:   name,
		Width:  len(lines[0]),
		Height: len(lines),
	}
	l.walls = make([]bool, l.Width*l.Height)

	type ghostStart struct {
		order int
		pos   Pos
	}
	var ghosts []ghostStart
	numPacman := 0
	for row, line := range lines {
		if len(line) != l.Width {
			return nil, errors.Errorf("layout %q: row %d has width %d, expected %d", name, row, len(line), l.Width)
		}
		y := l.Height - 1 - row
		for x, char := range line {
			pos := Pos{x, y}
			switch char {
			case '%':
				l.walls[l.index(pos)] = true
			case '.':
				l.food = append(l.food, pos)
			case 'o':
				l.capsules = append(l.capsules, pos)
			case 'P':
				l.pacmanStart = pos
				numPacman++
			case 'G':
				ghosts = append(ghosts, ghostStart{1, pos})
			case '1', '2', '3', '4':
				ghosts = append(ghosts, ghostStart{int(char - '0'), pos})
			case ' ':
			default:
				return nil, errors.Errorf("layout %q: invalid character %q at row %d, column %d", name, char, row, x)
			}
		}
	}
	if numPacman != 1 {
		return nil, errors.Errorf("layout %q must have exactly one Pacman, got %d", name, numPacman)
	}

	// Ghosts are ordered by their number ("G" is 1), then by position.
	slices.SortStableFunc(ghosts, func(a, b ghostStart) int {
		return cmp.Or(cmp.Compare(a.order, b.order), cmp.Compare(a.pos[0], b.pos[0]), cmp.Compare(a.pos[1], b.pos[1]))
	})
	for _, g := range ghosts {
		l.ghostStarts = append(l.ghostStarts, g.pos)
	}
	SortPositions(l.food)
	SortPositions(l.capsules)
	return l, nil
}

func (l *Layout) index(pos Pos) int {
	return pos[1]*l.Width + pos[0]
}

// IsWall returns whether pos is a wall. Positions outside the layout are walls.
func (l *Layout) IsWall(pos Pos) bool {
	if pos[0] < 0 || pos[1] < 0 || pos[0] >= l.Width || pos[1] >= l.Height {
		return true
	}
	return l.walls[l.index(pos)]
}

// NumGhosts in the layout.
func (l *Layout) NumGhosts() int {
	return len(l.ghostStarts)
}

// NewBoard returns the initial board of the layout, with at most numGhosts ghosts.
// A negative numGhosts uses all the ghosts of the layout.
func (l *Layout) NewBoard(numGhosts int) *Board {
	if numGhosts < 0 || numGhosts > len(l.ghostStarts) {
		numGhosts = len(l.ghostStarts)
	}
	b := &Board{
		layout: l,
		pacman: l.pacmanStart,
		ghosts: make([]Ghost, numGhosts),
	}
	for ii := range numGhosts {
		b.ghosts[ii] = Ghost{Pos: l.ghostStarts[ii], Start: l.ghostStarts[ii], Direction: Stop}
	}
	b.food = generics.SetWith(l.food...)
	b.capsules = generics.SetWith(l.capsules...)
	return b
}
