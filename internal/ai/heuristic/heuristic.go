// Package heuristic implements the evaluation functions used by the Pacman searchers:
//
//   - Score: the raw engine score, the default cutoff evaluator.
//   - Better: a composite of food, ghost and capsule terms.
//   - Reflex: the one-ply action evaluator used by the reflex searcher.
//
// Importing the package registers the evaluators in the players package, under the
// "eval=<name>" configuration parameter.
package heuristic

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/pkg/errors"
)

// EvalParam is the configuration parameter that selects the evaluation function by name.
const EvalParam = "eval"

// DefaultEvaluator is used when no evaluation function is configured.
const DefaultEvaluator = "score"

// New returns the evaluation function with the given name. The "better" function reads its
// weights from params, popping the ones it uses.
func New(name string, params parameters.Params) (ai.Evaluator, error) {
	switch name {
	case "score", "scoreEvaluationFunction":
		return Score{}, nil
	case "better", "betterEvaluationFunction":
		weights, err := WeightsFromParams(params)
		if err != nil {
			return nil, err
		}
		return NewBetter(weights), nil
	}
	return nil, errors.Errorf("unknown evaluation function %q, valid values are \"score\" or \"better\"", name)
}

// NewFromParams creates the evaluation function selected by the "eval" parameter.
func NewFromParams(params parameters.Params) (ai.Evaluator, error) {
	name, err := parameters.PopParamOr(params, EvalParam, DefaultEvaluator)
	if err != nil {
		return nil, err
	}
	return New(name, params)
}

func init() {
	players.RegisteredEvaluators = append(players.RegisteredEvaluators, NewFromParams)
}
