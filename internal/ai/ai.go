// Package ai defines the standard interfaces that the evaluation functions used by the
// searchers have to implement.
package ai

import (
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"math"
)

var (
	// WinValue is the value of a won state: it dominates every other value.
	WinValue = math.Inf(1)

	// LoseValue is the value of a lost state.
	LoseValue = math.Inf(-1)
)

// Evaluator maps a state to how desirable it is for Pacman: higher is better.
//
// Evaluators are called by the searchers at cutoff nodes. They must not modify the state and
// must be safe for concurrent use.
type Evaluator interface {
	Evaluate(s State) float64
	String() string
}

// ActionEvaluator evaluates taking an action from the current state, typically by looking at
// the successor only. It is used by one-ply (reflex) searchers.
type ActionEvaluator interface {
	EvaluateAction(current State, action Action) float64
	String() string
}

// TerminalValue returns whether the state is terminal, and if so its sentinel value
// (WinValue or LoseValue). If isTerminal is false, value should be ignored.
func TerminalValue(s State) (isTerminal bool, value float64) {
	if s.IsWin() {
		return true, WinValue
	}
	if s.IsLose() {
		return true, LoseValue
	}
	return false, 0
}

// SuccessorEvaluator is an ActionEvaluator that evaluates Pacman's action by evaluating its
// immediate successor with an Evaluator.
type SuccessorEvaluator struct {
	Evaluator Evaluator
}

var _ ActionEvaluator = SuccessorEvaluator{}

// EvaluateAction implements ActionEvaluator.
func (e SuccessorEvaluator) EvaluateAction(current State, action Action) float64 {
	return e.Evaluator.Evaluate(current.Successor(PacmanIndex, action))
}

// String implements ActionEvaluator.
func (e SuccessorEvaluator) String() string {
	return "successor:" + e.Evaluator.String()
}
