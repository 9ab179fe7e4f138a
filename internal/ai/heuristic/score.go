package heuristic

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	. "github.com/janpfeifer/pacmanGo/internal/state"
)

// Score evaluates a state by its engine score. Wins and losses are already reflected in
// the score by the engine, so no sentinel is used.
type Score struct{}

var _ ai.Evaluator = Score{}

// Evaluate implements ai.Evaluator.
func (Score) Evaluate(s State) float64 {
	return s.Score()
}

// String implements ai.Evaluator.
func (Score) String() string {
	return "score"
}
