package tree

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/pkg/errors"
)

// policyParams maps the configuration keys to the policy they select.
var policyParams = []struct {
	key    string
	policy Policy
}{
	{"minimax", Minimax},
	{"alphabeta", AlphaBeta},
	{"ab", AlphaBeta},
	{"expectimax", Expectimax},
}

// NewFromParams creates a tree Searcher if one of "minimax", "alphabeta" (or "ab") or
// "expectimax" is set. It returns nil, nil otherwise.
//
// The "depth" parameter sets the max depth in rounds, it defaults to DefaultMaxDepth.
func NewFromParams(evaluator ai.Evaluator, params parameters.Params) (searchers.Searcher, error) {
	var selected []Policy
	for _, p := range policyParams {
		isSet, err := parameters.PopParamOr(params, p.key, false)
		if err != nil {
			return nil, err
		}
		if isSet {
			selected = append(selected, p.policy)
		}
	}
	if len(selected) == 0 {
		return nil, nil
	}
	if len(selected) > 1 {
		return nil, errors.Errorf("more than one tree search selected: %v", selected)
	}
	depth, err := parameters.PopParamOr(params, "depth", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if depth < 0 {
		return nil, errors.Errorf("negative depth (%d given) not possible", depth)
	}
	return New(selected[0], evaluator).WithMaxDepth(depth), nil
}

// init registers NewFromParams as a potential searcher, so end users can use it.
func init() {
	players.RegisteredSearchers = append(players.RegisteredSearchers, NewFromParams)
}
