package state_test

import (
	"testing"

	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLayout = `
%%%%%%%
%P.o G%
%.%%% %
%     %
%%%%%%%
`

func buildBoard(t *testing.T, text string) *Board {
	l, err := ParseLayout(t.Name(), text[1:])
	require.NoError(t, err)
	return l.NewBoard(-1)
}

func TestParseLayout(t *testing.T) {
	b := buildBoard(t, testLayout)
	l := b.Layout()
	assert.Equal(t, 7, l.Width)
	assert.Equal(t, 5, l.Height)
	assert.Equal(t, 1, l.NumGhosts())
	assert.Equal(t, Pos{1, 3}, b.PacmanPosition())
	assert.Equal(t, []Pos{{1, 2}, {2, 3}}, b.Food())
	assert.Equal(t, []Pos{{3, 3}}, b.Capsules())
	assert.Equal(t, []Ghost{{Pos: Pos{5, 3}, Start: Pos{5, 3}, Direction: Stop}}, b.Ghosts())
	assert.True(t, l.IsWall(Pos{0, 0}))
	assert.True(t, l.IsWall(Pos{-1, 2}))
	assert.False(t, l.IsWall(Pos{5, 2}))
	assert.Equal(t, testLayout[1:len(testLayout)-1], b.String())

	// Limiting the number of ghosts.
	assert.Equal(t, 1, l.NewBoard(0).NumAgents())

	_, err := ParseLayout("ragged", "%%%\n%P\n%%%")
	require.Error(t, err)
	_, err = ParseLayout("no-pacman", "%%%\n%.%\n%%%")
	require.Error(t, err)
	_, err = ParseLayout("bad-char", "%%%\n%P#\n%%%")
	require.Error(t, err)
	_, err = ParseLayout("empty", "\n\n")
	require.Error(t, err)
}

func TestGhostOrdering(t *testing.T) {
	l, err := ParseLayout("ghosts", "%%%%%%\n%2PG1%\n%%%%%%")
	require.NoError(t, err)
	b := l.NewBoard(-1)
	ghosts := b.Ghosts()
	require.Len(t, ghosts, 3)
	assert.Equal(t, Pos{3, 1}, ghosts[0].Pos)
	assert.Equal(t, Pos{4, 1}, ghosts[1].Pos)
	assert.Equal(t, Pos{1, 1}, ghosts[2].Pos)
}

func TestLegalActions(t *testing.T) {
	b := buildBoard(t, testLayout)
	assert.Equal(t, []Action{South, East, Stop}, b.LegalActions(0))
	assert.Equal(t, []Action{South, West}, b.LegalActions(1))

	// Ghosts don't reverse unless forced.
	b = b.Act(0, East).Act(1, West)
	assert.Equal(t, []Action{West}, b.LegalActions(1))

	require.Panics(t, func() { b.LegalActions(2) })
}

func TestEatFoodAndGhost(t *testing.T) {
	start := buildBoard(t, testLayout)
	b := start.Act(0, East)
	assert.Equal(t, 9.0, b.Score())
	assert.Equal(t, []Pos{{1, 2}}, b.Food())
	assert.Equal(t, 1, b.MoveNumber)

	// The original board is untouched.
	assert.Equal(t, 0.0, start.Score())
	assert.Len(t, start.Food(), 2)
	assert.Equal(t, Pos{1, 3}, start.PacmanPosition())

	// Eating the capsule scares the ghosts.
	b = b.Act(1, West).Act(0, East)
	assert.Empty(t, b.Capsules())
	assert.Equal(t, ScaredTime, b.Ghosts()[0].ScaredTimer)
	assert.Equal(t, 8.0, b.Score())
	assert.Len(t, start.Capsules(), 1)

	// Ghost walks into Pacman while scared: it is eaten and sent back to start.
	b = b.Act(1, West)
	assert.False(t, b.IsLose())
	ghost := b.Ghosts()[0]
	assert.Equal(t, Ghost{Pos: Pos{5, 3}, Start: Pos{5, 3}, Direction: Stop}, ghost)
	assert.Equal(t, 8.0+GhostScore, b.Score())
}

func TestLose(t *testing.T) {
	b := buildBoard(t, testLayout)
	b = b.Act(0, East).Act(1, West).Act(0, Stop).Act(1, West).Act(0, Stop)
	assert.Equal(t, Pos{3, 3}, b.Ghosts()[0].Pos)
	assert.Equal(t, []Pos{{3, 3}}, b.Capsules(), "ghosts don't eat capsules")
	b = b.Act(1, West)
	assert.True(t, b.IsLose())
	assert.True(t, IsTerminal(b))
	assert.Equal(t, 7.0-LoseScore, b.Score())
	assert.Empty(t, b.LegalActions(0))
	assert.Empty(t, b.LegalActions(1))
	require.Panics(t, func() { b.Act(0, Stop) })
}

func TestWin(t *testing.T) {
	b := buildBoard(t, "\n%%%%\n%P.%\n%%%%")
	require.Panics(t, func() { b.Act(0, West) }, "illegal action must panic")
	b = b.Act(0, East)
	assert.True(t, b.IsWin())
	assert.False(t, b.IsLose())
	assert.Equal(t, float64(FoodScore+WinScore-TimePenalty), b.Score())
	assert.Empty(t, b.Food())
}

func TestActions(t *testing.T) {
	assert.Equal(t, "North", North.String())
	assert.Equal(t, "Action(9)", Action(9).String())
	assert.Equal(t, South, North.Reverse())
	assert.Equal(t, Stop, Stop.Reverse())
	assert.Equal(t, Pos{1, 0}, East.Vector())
	assert.Equal(t, 5, Pos{1, 2}.Distance(Pos{4, 0}))
}
