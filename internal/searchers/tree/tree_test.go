package tree

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/ai/heuristic"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policies = []Policy{Minimax, AlphaBeta, Expectimax}

// sentinelEvaluator values terminal states with the win/lose sentinels, and others by their score.
type sentinelEvaluator struct{}

func (sentinelEvaluator) Evaluate(s State) float64 {
	if isTerminal, value := ai.TerminalValue(s); isTerminal {
		return value
	}
	return s.Score()
}

func (sentinelEvaluator) String() string { return "sentinel" }

// textbookTree is the classic 2-ply example: Pacman at the root, one ghost choosing among 3 leaves.
func textbookTree() *statetest.Node {
	L := statetest.Leaf
	return statetest.Branch(
		statetest.Branch(L(3), L(12), L(8)),
		statetest.Branch(L(2), L(4), L(6)),
		statetest.Branch(L(14), L(5), L(2)),
	)
}

func TestTextbookTree(t *testing.T) {
	for _, policy := range []Policy{Minimax, AlphaBeta} {
		t.Run(policy.String(), func(t *testing.T) {
			root := textbookTree()
			counter := statetest.Build(root, 2)
			action, value, stats, err := New(policy, heuristic.Score{}).WithMaxDepth(1).SearchWithStats(root)
			require.NoError(t, err)
			assert.Equal(t, Action(0), action)
			assert.Equal(t, 3.0, value)
			assert.Equal(t, counter.Successors, stats.Nodes)
			assert.Equal(t, len(counter.Evaluated), stats.Evals)
			if policy == AlphaBeta {
				assert.Equal(t, 2, stats.Prunes)
				assert.Equal(t, 7, stats.Evals)
			} else {
				assert.Zero(t, stats.Prunes)
				assert.Equal(t, 9, stats.Evals)
			}
		})
	}

	root := textbookTree()
	statetest.Build(root, 2)
	action, value, err := New(Expectimax, heuristic.Score{}).WithMaxDepth(1).Search(root)
	require.NoError(t, err)
	assert.Equal(t, Action(0), action, "means are 23/3, 4 and 7")
	assert.InDelta(t, 23.0/3, value, 1e-9)
}

// randomTree builds a tree with up to maxHeight successors from the root, with 0 to 3 children per
// node and integer values, so ties are common.
func randomTree(rng *rand.Rand, maxHeight int) *statetest.Node {
	node := statetest.Leaf(float64(rng.IntN(10)))
	if maxHeight == 0 {
		return node
	}
	numChildren := rng.IntN(4)
	for range numChildren {
		node.Children = append(node.Children, randomTree(rng, maxHeight-1))
	}
	return node
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for ii := range 200 {
		numAgents := 1 + ii%3
		maxDepth := ii % 4
		root := randomTree(rng, 7)
		root.Children = append(root.Children, randomTree(rng, 6)) // Root always has an action.
		statetest.Build(root, numAgents)

		wantAction, wantValue, wantStats, err := New(Minimax, heuristic.Score{}).WithMaxDepth(maxDepth).SearchWithStats(root)
		require.NoError(t, err)
		action, value, stats, err := New(AlphaBeta, heuristic.Score{}).WithMaxDepth(maxDepth).SearchWithStats(root)
		require.NoError(t, err)
		msg := fmt.Sprintf("tree #%d, numAgents=%d, maxDepth=%d", ii, numAgents, maxDepth)
		assert.Equal(t, wantValue, value, msg)
		assert.Equal(t, wantAction, action, msg)
		assert.LessOrEqual(t, stats.Nodes, wantStats.Nodes, msg)
	}
}

func TestSingleAgent(t *testing.T) {
	// With Pacman alone all policies maximize.
	rng := rand.New(rand.NewPCG(7, 11))
	for ii := range 50 {
		root := randomTree(rng, 5)
		root.Children = append(root.Children, randomTree(rng, 4))
		statetest.Build(root, 1)
		maxDepth := ii % 4
		wantAction, wantValue, err := New(Minimax, heuristic.Score{}).WithMaxDepth(maxDepth).Search(root)
		require.NoError(t, err)
		for _, policy := range policies[1:] {
			action, value, err := New(policy, heuristic.Score{}).WithMaxDepth(maxDepth).Search(root)
			require.NoError(t, err)
			assert.Equal(t, wantAction, action, "%s on tree #%d", policy, ii)
			assert.Equal(t, wantValue, value, "%s on tree #%d", policy, ii)
		}
	}
}

func TestExpectimaxMean(t *testing.T) {
	L := statetest.Leaf
	root := statetest.Branch(statetest.Branch(L(10), L(20)))
	statetest.Build(root, 2)
	_, value, err := New(Expectimax, heuristic.Score{}).WithMaxDepth(1).Search(root)
	require.NoError(t, err)
	assert.Equal(t, 15.0, value)

	_, value, err = New(Minimax, heuristic.Score{}).WithMaxDepth(1).Search(root)
	require.NoError(t, err)
	assert.Equal(t, 10.0, value)
}

func TestExpectimaxInfinities(t *testing.T) {
	win := &statetest.Node{Win: true}
	lose := &statetest.Node{Lose: true}
	root := statetest.Branch(statetest.Branch(win, lose, statetest.Leaf(3)))
	statetest.Build(root, 2)
	_, value, err := New(Expectimax, sentinelEvaluator{}).WithMaxDepth(1).Search(root)
	require.NoError(t, err)
	assert.Equal(t, ai.LoseValue, value)

	win = &statetest.Node{Win: true}
	root = statetest.Branch(statetest.Branch(win, statetest.Leaf(3)))
	statetest.Build(root, 2)
	_, value, err = New(Expectimax, sentinelEvaluator{}).WithMaxDepth(1).Search(root)
	require.NoError(t, err)
	assert.Equal(t, ai.WinValue, value)
	assert.False(t, math.IsNaN(value))
}

func TestRootTieBreak(t *testing.T) {
	L := statetest.Leaf
	for _, policy := range policies {
		root := statetest.Branch(L(5), L(7), L(5), L(7))
		statetest.Build(root, 1)
		action, value, err := New(policy, heuristic.Score{}).WithMaxDepth(1).Search(root)
		require.NoError(t, err)
		assert.Equal(t, Action(1), action, "first of the best actions for %s", policy)
		assert.Equal(t, 7.0, value)
	}
}

func TestDepthZeroIsGreedy(t *testing.T) {
	L := statetest.Leaf
	for _, policy := range policies {
		// The ghost moves below the root children would change the decision, but are not searched.
		root := statetest.Branch(
			&statetest.Node{Value: 1, Children: []*statetest.Node{L(100)}},
			&statetest.Node{Value: 2, Children: []*statetest.Node{L(-100)}},
		)
		counter := statetest.Build(root, 2)
		action, value, err := New(policy, heuristic.Score{}).WithMaxDepth(0).Search(root)
		require.NoError(t, err)
		assert.Equal(t, Action(1), action)
		assert.Equal(t, 2.0, value)
		assert.Equal(t, 2, counter.Successors)
	}
}

func TestDepthInRounds(t *testing.T) {
	for _, policy := range policies {
		for numAgents := 1; numAgents <= 4; numAgents++ {
			for maxDepth := 1; maxDepth <= 3; maxDepth++ {
				root := statetest.Chain(20, 1000)
				counter := statetest.Build(root, numAgents)
				_, value, err := New(policy, heuristic.Score{}).WithMaxDepth(maxDepth).Search(root)
				require.NoError(t, err)
				wantSuccessors := maxDepth * numAgents
				assert.Equal(t, wantSuccessors, counter.Successors, "%s, numAgents=%d, maxDepth=%d", policy, numAgents, maxDepth)
				require.Len(t, counter.Evaluated, 1)
				assert.Equal(t, wantSuccessors, counter.Evaluated[0].Depth)
				assert.Equal(t, float64(wantSuccessors), value)
			}
		}
	}
}

func TestStuckAgents(t *testing.T) {
	L := statetest.Leaf
	for _, policy := range policies {
		// First: the ghost has no moves and the state is evaluated as is.
		// Second: Pacman has no moves at its second turn.
		root := statetest.Branch(L(4), statetest.Branch(L(1)))
		counter := statetest.Build(root, 2)
		action, value, err := New(policy, heuristic.Score{}).WithMaxDepth(2).Search(root)
		require.NoError(t, err)
		assert.Equal(t, Action(0), action)
		assert.Equal(t, 4.0, value)
		assert.Equal(t, 3, counter.Successors)
	}
}

func TestTerminalShortCircuits(t *testing.T) {
	L := statetest.Leaf
	for _, policy := range policies {
		// The win node has children, which must not be searched.
		win := &statetest.Node{Value: 50, Win: true, Children: []*statetest.Node{L(1000)}}
		lose := &statetest.Node{Value: -50, Lose: true, Children: []*statetest.Node{L(1000)}}
		root := statetest.Branch(lose, win, statetest.Branch(L(10)))
		counter := statetest.Build(root, 3)
		action, value, err := New(policy, heuristic.Score{}).WithMaxDepth(3).Search(root)
		require.NoError(t, err)
		assert.Equal(t, Action(1), action)
		assert.Equal(t, 50.0, value)
		assert.Equal(t, 4, counter.Successors)
	}
}

func TestNoActions(t *testing.T) {
	for _, policy := range policies {
		root := &statetest.Node{Value: 11, Win: true}
		statetest.Build(root, 2)
		action, value, err := New(policy, heuristic.Score{}).Search(root)
		require.ErrorIs(t, err, searchers.ErrNoActions)
		assert.Equal(t, Stop, action)
		assert.Equal(t, 11.0, value)
	}
}

func TestBoardSearch(t *testing.T) {
	// Pacman between food (west) and a ghost (east): running into the ghost is never chosen.
	b, err := statetest.BuildBoard("corridor", "%%%%%%%\n%..P G%\n%%%%%%%\n")
	require.NoError(t, err)
	for _, policy := range policies {
		for maxDepth := range 4 {
			action, _, err := New(policy, heuristic.Score{}).WithMaxDepth(maxDepth).Search(b)
			require.NoError(t, err)
			assert.Equal(t, West, action, "%s, maxDepth=%d", policy, maxDepth)
		}
	}
}

func TestWithMaxDepth(t *testing.T) {
	s := New(AlphaBeta, heuristic.Score{})
	assert.Equal(t, DefaultMaxDepth, s.MaxDepth())
	assert.Equal(t, "alphabeta(depth=3, eval=score)", s.WithMaxDepth(3).String())
	assert.Panics(t, func() { s.WithMaxDepth(-1) })
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("ab,depth=3,eval=better")
	s, err := NewFromParams(heuristic.Score{}, params)
	require.NoError(t, err)
	ts, ok := s.(*Searcher)
	require.True(t, ok)
	assert.Equal(t, AlphaBeta, ts.Policy())
	assert.Equal(t, 3, ts.MaxDepth())
	assert.Equal(t, []string{"eval"}, params.Keys())

	s, err = NewFromParams(heuristic.Score{}, parameters.NewFromConfigString("expectimax"))
	require.NoError(t, err)
	assert.Equal(t, "expectimax(depth=2, eval=score)", s.String())

	s, err = NewFromParams(heuristic.Score{}, parameters.NewFromConfigString("reflex,depth=3"))
	require.NoError(t, err)
	assert.Nil(t, s)

	for _, config := range []string{"minimax,expectimax", "minimax,depth=-1", "minimax,depth=two", "ab=maybe"} {
		_, err = NewFromParams(heuristic.Score{}, parameters.NewFromConfigString(config))
		assert.Error(t, err, "config %q", config)
	}
}
