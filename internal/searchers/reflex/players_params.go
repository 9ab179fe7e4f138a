package reflex

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/ai/heuristic"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/pkg/errors"
)

// NewFromParams creates a reflex Searcher if either "reflex" or "greedy" is set, and returns nil, nil otherwise.
//
//   - reflex: uses the heuristic.Reflex action evaluator, the configured evaluator is not used.
//   - greedy: evaluates the successor of each action with the configured evaluator.
//   - seed (int): seeds the tie-breaking random source. Default is 0, which uses the global random source.
func NewFromParams(evaluator ai.Evaluator, params parameters.Params) (searchers.Searcher, error) {
	isReflex, err := parameters.PopParamOr(params, "reflex", false)
	if err != nil {
		return nil, err
	}
	isGreedy, err := parameters.PopParamOr(params, "greedy", false)
	if err != nil {
		return nil, err
	}
	if !isReflex && !isGreedy {
		return nil, nil
	}
	if isReflex && isGreedy {
		return nil, errors.New("\"reflex\" and \"greedy\" can't be used together")
	}
	var s *Searcher
	if isReflex {
		s = New(heuristic.NewReflex())
	} else {
		s = New(ai.SuccessorEvaluator{Evaluator: evaluator})
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, errors.Errorf("negative seed (%d given) not possible", seed)
	}
	if seed > 0 {
		s.WithSeed(uint64(seed))
	}
	return s, nil
}

func init() {
	players.RegisteredSearchers = append(players.RegisteredSearchers, NewFromParams)
}
