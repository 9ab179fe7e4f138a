package heuristic

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	. "github.com/janpfeifer/pacmanGo/internal/state"
)

// Reflex evaluates a Pacman action by looking only at its immediate successor.
// It implements ai.ActionEvaluator.
type Reflex struct {
	// EatFood is added if the action lands on food.
	EatFood float64

	// NearestFood is divided by the distance to the nearest food left and added.
	NearestFood float64

	// SafeDistance: any ghost closer than this to the landing position vetoes the action.
	SafeDistance int
}

var _ ai.ActionEvaluator = (*Reflex)(nil)

// NewReflex returns the reflex action evaluator with its default weights.
func NewReflex() *Reflex {
	return &Reflex{EatFood: 10, NearestFood: 10, SafeDistance: 2}
}

// String implements ai.ActionEvaluator.
func (e *Reflex) String() string {
	return "reflex"
}

// EvaluateAction implements ai.ActionEvaluator. The action must be legal for Pacman in current.
//
// Landing next to a ghost, scared or not, is valued ai.LoseValue regardless of anything else.
func (e *Reflex) EvaluateAction(current State, action Action) float64 {
	successor := current.Successor(PacmanIndex, action)
	pacman := successor.PacmanPosition()
	for _, ghost := range successor.Ghosts() {
		if pacman.Distance(ghost.Pos) < e.SafeDistance {
			return ai.LoseValue
		}
	}

	var value float64
	if current.HasFood(pacman) {
		value += e.EatFood
	}
	if nearest, ok := generics.MinFunc(successor.Food(), pacman.Distance); ok {
		value += e.NearestFood / float64(max(nearest, 1))
	}
	return successor.Score() + value
}
