// Package players provides a factory of AI Pacman players from configuration strings.
// It also allows evaluators and searchers to register themselves.
package players

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	. "github.com/janpfeifer/pacmanGo/internal/state"
)

// Player is anything that is able to play Pacman.
type Player interface {
	// Play returns the action chosen for Pacman in the given state, and its value as estimated by the player.
	Play(s State) (action Action, value float64, err error)

	// Finalize is called at the end of a match.
	Finalize()

	// String describes the player and its configuration.
	String() string
}

var (
	// RegisteredEvaluators is a list of evaluator builders. Each builder returns nil, nil if the evaluator
	// it knows about is not selected by the parameters.
	//
	// Builders should pop the parameters they use from params.
	RegisteredEvaluators []func(params parameters.Params) (ai.Evaluator, error)

	// RegisteredSearchers is a list of searcher builders, called with the evaluator that was configured.
	// Each builder returns nil, nil if the searcher it knows about is not selected by the parameters.
	//
	// Builders should pop the parameters they use from params.
	RegisteredSearchers []func(evaluator ai.Evaluator, params parameters.Params) (searchers.Searcher, error)
)

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// UI built.
	DefaultPlayerConfig = "minimax,depth=2,eval=score"
)
