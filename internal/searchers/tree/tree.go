// Package tree implements the depth-limited game tree searchers: minimax, minimax with
// alpha-beta pruning, and expectimax.
//
// The three share one recursive walker. The search depth is counted in rounds: one round is
// one move of every agent, and the depth only increments when the turn wraps back to Pacman.
// Pacman (agent 0) maximizes; the ghosts minimize, or for Expectimax, choose uniformly at random.
//
// See: wikipedia.org/wiki/Minimax, wikipedia.org/wiki/Alpha-beta_pruning,
// wikipedia.org/wiki/Expectiminimax
package tree

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"k8s.io/klog/v2"
	"math"
	"time"
)

// Policy selects how the values of the children of a ghost node are combined.
type Policy int

const (
	// Minimax takes the minimum over the ghost actions.
	Minimax Policy = iota

	// AlphaBeta is Minimax with alpha-beta pruning: same results, fewer nodes.
	AlphaBeta

	// Expectimax takes the mean over the ghost actions.
	Expectimax
)

var policyNames = []string{"minimax", "alphabeta", "expectimax"}

// String returns the policy name, as used in the player configuration.
func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// DefaultMaxDepth for search, in rounds.
const DefaultMaxDepth = 2

// Searcher implements the searchers.Searcher interface.
//
// A Searcher holds only its configuration, so it can be used concurrently.
type Searcher struct {
	policy    Policy
	maxDepth  int
	evaluator ai.Evaluator
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a tree searcher with the given policy. It evaluates the cutoff nodes with the
// evaluator, and searches DefaultMaxDepth rounds deep, see WithMaxDepth.
func New(policy Policy, evaluator ai.Evaluator) *Searcher {
	return &Searcher{
		policy:    policy,
		maxDepth:  DefaultMaxDepth,
		evaluator: evaluator,
	}
}

// WithMaxDepth sets the max depth of search, in rounds (one move of every agent).
//
// At depth 0 the search picks the action whose immediate successor evaluates best.
func (s *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	if maxDepth < 0 {
		exceptions.Panicf("tree.Searcher: invalid negative max depth %d", maxDepth)
	}
	s.maxDepth = maxDepth
	return s
}

// Policy returns the policy configured.
func (s *Searcher) Policy() Policy {
	return s.policy
}

// MaxDepth returns the max depth configured, in rounds.
func (s *Searcher) MaxDepth() int {
	return s.maxDepth
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	return fmt.Sprintf("%s(depth=%d, eval=%s)", s.policy, s.maxDepth, s.evaluator)
}

// Search implements searchers.Searcher.
func (s *Searcher) Search(st State) (action Action, value float64, err error) {
	var stats searchers.Stats
	action, value, stats, err = s.SearchWithStats(st)
	if err == nil && klog.V(2).Enabled() {
		klog.Infof("%s: action=%s, value=%.3f, %s", s, action, value, stats)
	}
	return
}

// SearchWithStats is like Search, but also returns the statistics collected during the search.
func (s *Searcher) SearchWithStats(st State) (action Action, value float64, stats searchers.Stats, err error) {
	start := time.Now()
	w := &walker{Searcher: s}
	action, value, err = w.root(st)
	w.stats.Duration = time.Since(start)
	return action, value, w.stats, err
}

// walker holds the state of one search.
type walker struct {
	*Searcher
	stats searchers.Stats
}

// turn identifies whose move it is, and in which round.
type turn struct {
	depth, agentIdx int
}

// next returns the turn after t: depth increments when the move wraps back to Pacman.
func (t turn) next(numAgents int) turn {
	agentIdx := (t.agentIdx + 1) % numAgents
	depth := t.depth
	if agentIdx == PacmanIndex {
		depth++
	}
	return turn{depth: depth, agentIdx: agentIdx}
}

// root chooses Pacman's action: ties are broken in favor of the first action in the
// order given by LegalActions.
func (w *walker) root(st State) (bestAction Action, bestValue float64, err error) {
	actions := st.LegalActions(PacmanIndex)
	if len(actions) == 0 {
		return Stop, w.evaluate(st), searchers.ErrNoActions
	}
	alpha, beta := math.Inf(-1), math.Inf(1)
	next := turn{depth: 0, agentIdx: PacmanIndex}.next(st.NumAgents())
	for ii, action := range actions {
		value := w.value(w.successor(st, PacmanIndex, action), next, alpha, beta)
		if klog.V(3).Enabled() {
			klog.Infof("  %s: root action %s -> %.3f", w.policy, action, value)
		}
		if ii == 0 || value > bestValue {
			bestAction, bestValue = action, value
		}
		if w.policy == AlphaBeta {
			alpha = max(alpha, value)
		}
	}
	return
}

// value of the state at the given turn.
func (w *walker) value(st State, t turn, alpha, beta float64) float64 {
	if st.IsWin() || st.IsLose() || t.depth >= w.maxDepth {
		return w.evaluate(st)
	}
	actions := st.LegalActions(t.agentIdx)
	if len(actions) == 0 {
		// Agent is stuck: the state is evaluated as is.
		return w.evaluate(st)
	}
	switch {
	case t.agentIdx == PacmanIndex:
		return w.maxValue(st, actions, t, alpha, beta)
	case w.policy == Expectimax:
		return w.meanValue(st, actions, t)
	default:
		return w.minValue(st, actions, t, alpha, beta)
	}
}

func (w *walker) maxValue(st State, actions []Action, t turn, alpha, beta float64) float64 {
	next := t.next(st.NumAgents())
	value := math.Inf(-1)
	for _, action := range actions {
		value = max(value, w.value(w.successor(st, t.agentIdx, action), next, alpha, beta))
		if w.policy == AlphaBeta {
			if value > beta {
				// The minimizing ancestor will never allow this branch.
				w.stats.Prunes++
				return value
			}
			alpha = max(alpha, value)
		}
	}
	return value
}

func (w *walker) minValue(st State, actions []Action, t turn, alpha, beta float64) float64 {
	next := t.next(st.NumAgents())
	value := math.Inf(1)
	for _, action := range actions {
		value = min(value, w.value(w.successor(st, t.agentIdx, action), next, alpha, beta))
		if w.policy == AlphaBeta {
			if value < alpha {
				w.stats.Prunes++
				return value
			}
			beta = min(beta, value)
		}
	}
	return value
}

// meanValue is the value of a ghost choosing uniformly at random among its actions.
//
// A certain loss in any branch makes the mean a loss, even if another branch is a certain win.
func (w *walker) meanValue(st State, actions []Action, t turn) float64 {
	next := t.next(st.NumAgents())
	var sum float64
	var canWin, canLose bool
	for _, action := range actions {
		value := w.value(w.successor(st, t.agentIdx, action), next, math.Inf(-1), math.Inf(1))
		switch {
		case math.IsInf(value, -1):
			canLose = true
		case math.IsInf(value, 1):
			canWin = true
		default:
			sum += value
		}
	}
	switch {
	case canLose:
		return ai.LoseValue
	case canWin:
		return ai.WinValue
	}
	return sum / float64(len(actions))
}

func (w *walker) successor(st State, agentIdx int, action Action) State {
	w.stats.Nodes++
	return st.Successor(agentIdx, action)
}

func (w *walker) evaluate(st State) float64 {
	w.stats.Evals++
	return w.evaluator.Evaluate(st)
}
