// Package state defines the game state contract consumed by the evaluation functions and
// the searchers, and provides Board, a Pacman engine implementing it.
package state

import (
	"fmt"
	"sort"
)

// Action is one of the moves an agent can take in a turn.
type Action uint8

const (
	Stop Action = iota
	North
	South
	East
	West

	// NumActions is the number of distinct actions, including Stop.
	NumActions
)

var (
	actionNames   = [NumActions]string{"Stop", "North", "South", "East", "West"}
	actionVectors = [NumActions]Pos{{0, 0}, {0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	actionReverse = [NumActions]Action{Stop, South, North, West, East}

	// Directions enumerates the moving actions in the order legal actions are listed.
	Directions = [4]Action{North, South, East, West}
)

// String returns the action name.
func (a Action) String() string {
	if a >= NumActions {
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
	return actionNames[a]
}

// Vector returns the displacement of the action.
func (a Action) Vector() Pos {
	return actionVectors[a]
}

// Reverse returns the action going back the opposite way. Stop's reverse is Stop.
func (a Action) Reverse() Action {
	return actionReverse[a]
}

// Pos packages x, y position. The y coordinate grows northwards.
type Pos [2]int

// X coordinate of the position.
func (pos Pos) X() int {
	return pos[0]
}

// Y coordinate of the position.
func (pos Pos) Y() int {
	return pos[1]
}

// Add returns the position displaced by delta.
func (pos Pos) Add(delta Pos) Pos {
	return Pos{pos[0] + delta[0], pos[1] + delta[1]}
}

// Distance returns the manhattan distance of two positions.
func (pos Pos) Distance(pos2 Pos) int {
	return absInt(pos[0]-pos2[0]) + absInt(pos[1]-pos2[1])
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SortPositions sorts according to y first and then x.
func SortPositions(positions []Pos) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i][1] != positions[j][1] {
			return positions[i][1] < positions[j][1]
		}
		return positions[i][0] < positions[j][0]
	})
}

// Ghost is the observable state of one ghost.
type Ghost struct {
	Pos, Start Pos

	// Direction of the last move, Stop if it hasn't moved since (re)spawning.
	Direction Action

	// ScaredTimer counts down the moves during which the ghost can be eaten. Zero means dangerous.
	ScaredTimer int
}

// IsScared returns whether the ghost can currently be eaten.
func (g Ghost) IsScared() bool {
	return g.ScaredTimer > 0
}

// PacmanIndex is the agent index of the maximizing agent. Ghosts are indices 1 to NumAgents()-1.
const PacmanIndex = 0

// State is the contract the searchers and evaluation functions require from a game engine.
//
// Implementations must be immutable: Successor returns a new State and leaves the receiver untouched,
// so the same State can be shared by any number of search branches.
type State interface {
	// NumAgents returns the number of agents, Pacman (index 0) included.
	NumAgents() int

	// LegalActions for the agent. Terminal states have no legal actions.
	LegalActions(agentIdx int) []Action

	// Successor returns the state after agentIdx takes action.
	// It panics if action is not in LegalActions(agentIdx).
	Successor(agentIdx int, action Action) State

	// IsWin and IsLose are the terminal predicates.
	IsWin() bool
	IsLose() bool

	// Score is the engine's scalar score.
	Score() float64

	// PacmanPosition and the following are projections used only by evaluation functions.
	PacmanPosition() Pos

	// Food returns the positions with food remaining.
	Food() []Pos

	// HasFood returns whether there is food at pos.
	HasFood(pos Pos) bool

	// Ghosts returns one entry per ghost, in agent order (agent index 1 is Ghosts()[0]).
	Ghosts() []Ghost

	// Capsules returns the positions of the remaining capsules.
	Capsules() []Pos
}

// IsTerminal returns whether the state is won or lost.
func IsTerminal(s State) bool {
	return s.IsWin() || s.IsLose()
}
