// Package reflex implements a one-ply searcher: it evaluates each of Pacman's actions with an
// ai.ActionEvaluator and takes the best, breaking ties at random.
package reflex

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"sync"
)

// Searcher implements searchers.Searcher.
type Searcher struct {
	evaluator ai.ActionEvaluator

	// muRand protects rng, which is nil if using the global random source.
	muRand sync.Mutex
	rng    *rand.Rand
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a reflex searcher using the given action evaluator, and the global random source
// for tie-breaking.
func New(evaluator ai.ActionEvaluator) *Searcher {
	return &Searcher{evaluator: evaluator}
}

// WithSeed makes tie-breaking deterministic, with a random source seeded with seed.
func (s *Searcher) WithSeed(seed uint64) *Searcher {
	s.rng = rand.New(rand.NewPCG(seed, seed))
	return s
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	return fmt.Sprintf("reflex(eval=%s)", s.evaluator)
}

// Search implements searchers.Searcher.
func (s *Searcher) Search(st State) (action Action, value float64, err error) {
	actions := st.LegalActions(PacmanIndex)
	if len(actions) == 0 {
		return Stop, 0, searchers.ErrNoActions
	}
	values := make([]float64, len(actions))
	for ii, action := range actions {
		values[ii] = s.evaluator.EvaluateAction(st, action)
		if ii == 0 || values[ii] > value {
			value = values[ii]
		}
	}
	var best []Action
	for ii, v := range values {
		if v == value {
			best = append(best, actions[ii])
		}
	}
	action = best[s.intN(len(best))]
	if klog.V(2).Enabled() {
		klog.Infof("%s: action=%s, value=%.3f (%d tied of %d actions)", s, action, value, len(best), len(actions))
	}
	return action, value, nil
}

func (s *Searcher) intN(n int) int {
	if n == 1 {
		return 0
	}
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.muRand.Lock()
	defer s.muRand.Unlock()
	return s.rng.IntN(n)
}
