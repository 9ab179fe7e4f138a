package heuristic

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	. "github.com/janpfeifer/pacmanGo/internal/state"
)

// Weights of the terms of the Better evaluation function.
//
// The defaults order the priorities: not dying, then eating nearby food, clearing the
// board, hunting scared ghosts and finally collecting capsules.
type Weights struct {
	// NearestFood is divided by (distance to the nearest food + 1) and added.
	NearestFood float64

	// AverageFood multiplies the mean distance to all food, and is subtracted.
	AverageFood float64

	// FoodCount multiplies the number of food left, and is subtracted.
	FoodCount float64

	// GhostDanger is subtracted in full for a dangerous ghost closer than DangerDistance,
	// and divided by the distance for ghosts further away.
	GhostDanger float64

	// ScaredGhost is divided by (distance to a scared ghost + 1) and added.
	ScaredGhost float64

	// CapsuleCount multiplies the number of capsules left, and is subtracted.
	CapsuleCount float64

	// NearestCapsule is divided by the distance to the nearest capsule and added.
	NearestCapsule float64
}

// DangerDistance is the distance under which a dangerous ghost is about to catch Pacman.
const DangerDistance = 2

// DefaultWeights used by Better.
var DefaultWeights = Weights{
	NearestFood:    15,
	AverageFood:    0.25,
	FoodCount:      3,
	GhostDanger:    50,
	ScaredGhost:    40,
	CapsuleCount:   5,
	NearestCapsule: 6,
}

// WeightsFromParams returns DefaultWeights overridden by the "w_*" parameters.
func WeightsFromParams(params parameters.Params) (w Weights, err error) {
	w = DefaultWeights
	for _, field := range []struct {
		key   string
		value *float64
	}{
		{"w_nearest_food", &w.NearestFood},
		{"w_avg_food", &w.AverageFood},
		{"w_food_count", &w.FoodCount},
		{"w_ghost_danger", &w.GhostDanger},
		{"w_scared_ghost", &w.ScaredGhost},
		{"w_capsule_count", &w.CapsuleCount},
		{"w_nearest_capsule", &w.NearestCapsule},
	} {
		*field.value, err = parameters.PopParamOr(params, field.key, *field.value)
		if err != nil {
			return
		}
	}
	return
}

// Better is the composite evaluation function. It implements ai.Evaluator.
type Better struct {
	Weights Weights
}

var _ ai.Evaluator = (*Better)(nil)

// NewBetter returns the composite evaluation function with the given weights.
func NewBetter(weights Weights) *Better {
	return &Better{Weights: weights}
}

// String implements ai.Evaluator.
func (e *Better) String() string {
	if e.Weights == DefaultWeights {
		return "better"
	}
	return fmt.Sprintf("better%+v", e.Weights)
}

// Evaluate implements ai.Evaluator.
//
// Won and lost states evaluate to ai.WinValue and ai.LoseValue, before any other term is computed.
func (e *Better) Evaluate(s State) float64 {
	if isTerminal, value := ai.TerminalValue(s); isTerminal {
		return value
	}
	w := &e.Weights
	pacman := s.PacmanPosition()
	value := s.Score()

	if food := s.Food(); len(food) > 0 {
		distances := generics.SliceMap(food, pacman.Distance)
		nearest, _ := generics.MinFunc(distances, func(d int) int { return d })
		value += w.NearestFood / float64(nearest+1)
		value -= w.AverageFood * generics.Mean(distances)
		value -= w.FoodCount * float64(len(food))
	}

	for _, ghost := range s.Ghosts() {
		distance := pacman.Distance(ghost.Pos)
		switch {
		case ghost.IsScared():
			value += w.ScaredGhost / float64(distance+1)
		case distance < DangerDistance:
			value -= w.GhostDanger
		default:
			value -= w.GhostDanger / float64(distance)
		}
	}

	capsules := s.Capsules()
	value -= w.CapsuleCount * float64(len(capsules))
	if nearest, ok := generics.MinFunc(capsules, pacman.Distance); ok {
		value += w.NearestCapsule / float64(max(nearest, 1))
	}
	return value
}
