package reflex

import (
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

// constantEvaluator values every action the same.
type constantEvaluator struct{}

func (constantEvaluator) EvaluateAction(State, Action) float64 { return 1 }
func (constantEvaluator) String() string { return "constant" }

func TestSearch(t *testing.T) {
	b, err := statetest.BuildBoard("reflex", "%%%%%%\n%.P G%\n%%%%%%\n")
	require.NoError(t, err)
	s := New(heuristic.NewReflex())
	assert.Equal(t, "reflex(eval=reflex)", s.String())
	action, value, err := s.Search(b)
	require.NoError(t, err)
	assert.Equal(t, West, action)
	assert.Equal(t, 519.0, value)
}

func TestTieBreak(t *testing.T) {
	b, err := statetest.BuildBoard("open", "%%%%%\n%   %\n% P.%\n%   %\n%%%%%\n")
	require.NoError(t, err)
	legal := b.LegalActions(PacmanIndex)
	require.Len(t, legal, 5)

	// With a seed the choice is reproducible.
	seen := make(map[Action]bool)
	for seed := uint64(1); seed <= 40; seed++ {
		action, value, err := New(constantEvaluator{}).WithSeed(seed).Search(b)
		require.NoError(t, err)
		assert.Equal(t, 1.0, value)
		again, _, err := New(constantEvaluator{}).WithSeed(seed).Search(b)
		require.NoError(t, err)
		assert.Equal(t, action, again, "seed=%d", seed)
		assert.Contains(t, legal, action)
		seen[action] = true
	}
	assert.Greater(t, len(seen), 1, "ties should be broken at random")
}

func TestGreedy(t *testing.T) {
	// The "better" evaluator heads to the food, and the action evaluator adaptor is what greedy uses.
	b, err := statetest.BuildBoard("greedy", "%%%%%%%\n%.  P %\n%%%%%%%\n")
	require.NoError(t, err)
	s := New(ai.SuccessorEvaluator{Evaluator: heuristic.NewBetter(heuristic.DefaultWeights)})
	action, _, err := s.Search(b)
	require.NoError(t, err)
	assert.Equal(t, West, action)
}

func TestNoActions(t *testing.T) {
	b, err := statetest.BuildBoard("won", "%%%%%\n%.P %\n%%%%%\n")
	require.NoError(t, err)
	won := b.Act(PacmanIndex, West)
	require.True(t, won.IsWin())
	_, _, err = New(heuristic.NewReflex()).Search(won)
	require.ErrorIs(t, err, searchers.ErrNoActions)
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("reflex,seed=3,depth=2")
	s, err := NewFromParams(heuristic.Score{}, params)
	require.NoError(t, err)
	assert.Equal(t, "reflex(eval=reflex)", s.String())
	assert.Equal(t, []string{"depth"}, params.Keys())

	s, err = NewFromParams(heuristic.Score{}, parameters.NewFromConfigString("greedy"))
	require.NoError(t, err)
	assert.Equal(t, "reflex(eval=successor:score)", s.String())

	s, err = NewFromParams(heuristic.Score{}, parameters.NewFromConfigString("minimax"))
	require.NoError(t, err)
	assert.Nil(t, s)

	for _, config := range []string{"reflex,greedy", "reflex,seed=-1", "greedy,seed=x"} {
		_, err = NewFromParams(heuristic.Score{}, parameters.NewFromConfigString(config))
		assert.Error(t, err, "config %q", config)
	}
}
