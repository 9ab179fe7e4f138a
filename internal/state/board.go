package state

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"slices"
	"strings"
)

// Scoring and timing rules of the classic game.
const (
	TimePenalty = 1   // Subtracted for every Pacman move.
	FoodScore   = 10  // Eating one food.
	WinScore    = 500 // Eating the last food.
	LoseScore   = 500 // Subtracted when caught by a ghost.
	GhostScore  = 200 // Eating a scared ghost.

	// ScaredTime is the number of ghost moves a ghost stays scared after Pacman eats a capsule.
	ScaredTime = 40
)

// Board is a Pacman game position. It implements State.
//
// Boards are immutable once created: Act returns a new Board. Food and capsule sets are
// only copied when a move changes them, so successors are cheap.
type Board struct {
	layout   *Layout
	pacman   Pos
	ghosts   []Ghost
	food     generics.Set[Pos]
	capsules generics.Set[Pos]
	score    float64
	win      bool
	lose     bool

	// MoveNumber counts Pacman moves since the start of the game.
	MoveNumber int
}

// Assert Board is a State.
var _ State = (*Board)(nil)

// Layout returns the static layout of the board.
func (b *Board) Layout() *Layout {
	return b.layout
}

// NumAgents implements State.
func (b *Board) NumAgents() int {
	return 1 + len(b.ghosts)
}

// IsWin implements State.
func (b *Board) IsWin() bool {
	return b.win
}

// IsLose implements State.
func (b *Board) IsLose() bool {
	return b.lose
}

// IsFinished returns whether the game is over.
func (b *Board) IsFinished() bool {
	return b.win || b.lose
}

// Score implements State.
func (b *Board) Score() float64 {
	return b.score
}

// PacmanPosition implements State.
func (b *Board) PacmanPosition() Pos {
	return b.pacman
}

// Food implements State. Positions are sorted with SortPositions.
func (b *Board) Food() []Pos {
	return sortedPositions(b.food)
}

// NumFood returns the number of food remaining.
func (b *Board) NumFood() int {
	return len(b.food)
}

// HasFood implements State.
func (b *Board) HasFood(pos Pos) bool {
	return b.food.Has(pos)
}

// Capsules implements State. Positions are sorted with SortPositions.
func (b *Board) Capsules() []Pos {
	return sortedPositions(b.capsules)
}

// HasCapsule returns whether there is a capsule at pos.
func (b *Board) HasCapsule(pos Pos) bool {
	return b.capsules.Has(pos)
}

// Ghosts implements State. The returned slice is a copy.
func (b *Board) Ghosts() []Ghost {
	return slices.Clone(b.ghosts)
}

func sortedPositions(set generics.Set[Pos]) []Pos {
	positions := slices.Collect(set.All())
	SortPositions(positions)
	return positions
}

// LegalActions implements State.
//
// Pacman can move to any non-wall neighbor or Stop. Ghosts can't stop, and can only
// reverse their direction if there is no other option.
func (b *Board) LegalActions(agentIdx int) []Action {
	b.checkAgent(agentIdx)
	if b.IsFinished() {
		return nil
	}
	if agentIdx == PacmanIndex {
		actions := b.possibleMoves(b.pacman)
		return append(actions, Stop)
	}
	ghost := b.ghosts[agentIdx-1]
	actions := b.possibleMoves(ghost.Pos)
	if reverse := ghost.Direction.Reverse(); reverse != Stop && len(actions) > 1 {
		actions = slices.DeleteFunc(actions, func(a Action) bool { return a == reverse })
	}
	return actions
}

// possibleMoves from pos that don't run into a wall, in the order of Directions.
func (b *Board) possibleMoves(pos Pos) []Action {
	actions := make([]Action, 0, len(Directions)+1)
	for _, action := range Directions {
		if !b.layout.IsWall(pos.Add(action.Vector())) {
			actions = append(actions, action)
		}
	}
	return actions
}

func (b *Board) checkAgent(agentIdx int) {
	if agentIdx < 0 || agentIdx >= b.NumAgents() {
		exceptions.Panicf("invalid agent index %d for board with %d agents", agentIdx, b.NumAgents())
	}
}

// Successor implements State: it is the same as Act.
func (b *Board) Successor(agentIdx int, action Action) State {
	return b.Act(agentIdx, action)
}

// Act returns the board after agentIdx takes the action.
//
// It panics if the board is finished or if the action is not legal: the searchers only
// ever play actions returned by LegalActions, so this is always a bug in the caller.
func (b *Board) Act(agentIdx int, action Action) *Board {
	b.checkAgent(agentIdx)
	if b.IsFinished() {
		exceptions.Panicf("agent %d can't play %s: board already finished at move #%d", agentIdx, action, b.MoveNumber)
	}
	if !slices.Contains(b.LegalActions(agentIdx), action) {
		exceptions.Panicf("illegal action %s for agent %d at move #%d", action, agentIdx, b.MoveNumber)
	}
	newB := b.clone()
	if agentIdx == PacmanIndex {
		newB.movePacman(action)
	} else {
		newB.moveGhost(agentIdx-1, action)
	}
	return newB
}

// clone makes a copy of the board sharing the food and capsule sets: they must be cloned
// before being modified.
func (b *Board) clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.ghosts = slices.Clone(b.ghosts)
	return newB
}

func (b *Board) movePacman(action Action) {
	b.pacman = b.pacman.Add(action.Vector())
	b.score -= TimePenalty
	b.MoveNumber++
	if b.food.Has(b.pacman) {
		b.food = b.food.Clone()
		delete(b.food, b.pacman)
		b.score += FoodScore
		if len(b.food) == 0 && !b.lose {
			b.win = true
			b.score += WinScore
		}
	}
	if b.capsules.Has(b.pacman) {
		b.capsules = b.capsules.Clone()
		delete(b.capsules, b.pacman)
		for ii := range b.ghosts {
			b.ghosts[ii].ScaredTimer = ScaredTime
		}
	}
	for ii := range b.ghosts {
		b.checkCollision(ii)
	}
}

func (b *Board) moveGhost(ghostIdx int, action Action) {
	ghost := &b.ghosts[ghostIdx]
	ghost.Pos = ghost.Pos.Add(action.Vector())
	ghost.Direction = action
	if ghost.ScaredTimer > 0 {
		ghost.ScaredTimer--
	}
	b.checkCollision(ghostIdx)
}

// checkCollision between Pacman and the ghost: a scared ghost is eaten and sent back to its
// start, otherwise Pacman is caught.
func (b *Board) checkCollision(ghostIdx int) {
	ghost := &b.ghosts[ghostIdx]
	if ghost.Pos != b.pacman {
		return
	}
	if ghost.IsScared() {
		b.score += GhostScore
		ghost.Pos = ghost.Start
		ghost.Direction = Stop
		ghost.ScaredTimer = 0
		return
	}
	if !b.win {
		b.score -= LoseScore
		b.lose = true
	}
}

// WithScaredTimer returns a copy of the board with the given ghost's scared timer set.
// Mostly useful to build test positions.
func (b *Board) WithScaredTimer(ghostIdx, timer int) *Board {
	newB := b.clone()
	newB.ghosts[ghostIdx].ScaredTimer = timer
	return newB
}

// String returns the board in the layout text format. Scared ghosts are printed as "S".
func (b *Board) String() string {
	l := b.layout
	var sb strings.Builder
	for y := l.Height - 1; y >= 0; y-- {
		for x := range l.Width {
			sb.WriteByte(b.CellAt(Pos{x, y}))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// CellAt returns the layout character that represents what is at pos.
// Pacman and ghosts take precedence over food and capsules.
func (b *Board) CellAt(pos Pos) byte {
	if pos == b.pacman {
		return 'P'
	}
	for _, ghost := range b.ghosts {
		if ghost.Pos == pos {
			if ghost.IsScared() {
				return 'S'
			}
			return 'G'
		}
	}
	switch {
	case b.layout.IsWall(pos):
		return '%'
	case b.food.Has(pos):
		return '.'
	case b.capsules.Has(pos):
		return 'o'
	}
	return ' '
}

// Summary returns a one-line description of the board.
func (b *Board) Summary() string {
	status := "playing"
	if b.win {
		status = "won"
	} else if b.lose {
		status = "lost"
	}
	return fmt.Sprintf("move #%d: score=%.0f, food=%d, capsules=%d, %s",
		b.MoveNumber, b.score, len(b.food), len(b.capsules), status)
}
