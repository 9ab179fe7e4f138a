package players

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"strings"
)

// SearcherEvaluator is a standard set up for an AI: a searcher and the evaluation function it uses.
// It implements the Player interface.
type SearcherEvaluator struct {
	Searcher  searchers.Searcher
	Evaluator ai.Evaluator

	// moves played, for logging.
	moves int
}

// New creates a new AI player given the configuration string.
//
// Args:
//
//   - config: a comma-separated list of parameters with optional values associated. Exactly one searcher
//     (e.g. "minimax", "alphabeta", "expectimax" or "reflex") must be selected. If empty, the default is given
//     by DefaultPlayerConfig. E.g.: "expectimax,depth=3,eval=better"
//
// Typical parameters:
//
//   - minimax, alphabeta (or ab), expectimax (bool): selects the tree searcher.
//   - reflex (bool): one-ply searcher using the reflex action evaluator.
//   - greedy (bool): one-ply searcher evaluating the successors with the configured evaluator.
//   - depth (int): max depth of the tree searchers, in rounds. Default is 2.
//   - eval (string): evaluation function, "score" (default) or "better".
//   - w_nearest_food, w_avg_food, w_food_count, w_ghost_danger, w_scared_ghost, w_capsule_count,
//     w_nearest_capsule (float): weights of the "better" evaluation function.
//   - seed (int): seed for the tie-breaking of the one-ply searchers.
//
// Unknown parameters are reported as an error.
func New(config string) (*SearcherEvaluator, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	params := parameters.NewFromConfigString(config)

	player := &SearcherEvaluator{}

	if len(RegisteredEvaluators) == 0 {
		return nil, errors.New("no registered evaluators. Perhaps you need to import _ \"github.com/janpfeifer/pacmanGo/internal/players/default\" to your binary ?")
	}
	if len(RegisteredSearchers) == 0 {
		return nil, errors.New("no registered searchers. Perhaps you need to import _ \"github.com/janpfeifer/pacmanGo/internal/players/default\" to your binary ?")
	}

	// Find evaluator.
	for _, builder := range RegisteredEvaluators {
		e, err := builder(params)
		if err != nil {
			return nil, errors.WithMessagef(err, "player config %q", config)
		}
		if e == nil {
			// Not this type of evaluator.
			continue
		}
		if player.Evaluator != nil {
			return nil, errors.Errorf("multiple evaluators defined in parameters %q", config)
		}
		player.Evaluator = e
	}
	if player.Evaluator == nil {
		return nil, errors.Errorf("no evaluators defined in parameters %q", config)
	}

	// Find searcher.
	for _, builder := range RegisteredSearchers {
		s, err := builder(player.Evaluator, params)
		if err != nil {
			return nil, errors.WithMessagef(err, "player config %q", config)
		}
		if s == nil {
			continue
		}
		if player.Searcher != nil {
			return nil, errors.Errorf("multiple searchers defined in parameters %q", config)
		}
		player.Searcher = s
	}
	if player.Searcher == nil {
		return nil, errors.Errorf("no searchers defined in parameters %q", config)
	}

	// Check that all parameters were processed.
	if len(params) > 0 {
		return nil, errors.Errorf("unknown AI parameters \"%s\" passed", strings.Join(params.Keys(), "\", \""))
	}
	if klog.V(1).Enabled() {
		klog.Infof("New player: %s", player)
	}
	return player, nil
}

// Assert that SearcherEvaluator is a Player.
var _ Player = &SearcherEvaluator{}

// String implements the Player interface.
func (p *SearcherEvaluator) String() string {
	if p.Searcher == nil {
		return "<finalized>"
	}
	return p.Searcher.String()
}

// Play implements the Player interface: it chooses Pacman's action in the given state.
func (p *SearcherEvaluator) Play(s State) (action Action, value float64, err error) {
	action, value, err = p.Searcher.Search(s)
	if err != nil {
		return Stop, value, errors.WithMessagef(err, "player %s", p)
	}
	p.moves++
	if klog.V(2).Enabled() {
		klog.Infof("Move #%d: AI (%s) playing %s, value=%.3f", p.moves, p, action, value)
	}
	return
}

// Finalize is called at the end of a match.
func (p *SearcherEvaluator) Finalize() {
	if klog.V(1).Enabled() {
		klog.Infof("Player (%s) finalized after %d moves", p, p.moves)
	}
	p.Evaluator = nil
	p.Searcher = nil
}
