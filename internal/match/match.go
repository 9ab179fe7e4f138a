// Package match runs a Pacman game: the AI player moves Pacman, and ghost agents move the ghosts,
// until the game is won, lost, or the max number of moves is reached.
package match

import (
	"context"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/players"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Observer is called after every action taken in the match, with the resulting board.
type Observer func(board *Board, agentIdx int, action Action)

// Match holds the configuration of one game.
type Match struct {
	board       *Board
	pacman      players.Player
	ghostAgents []ghosts.Agent
	maxMoves    int
	observer    Observer
}

// Result of a match.
type Result struct {
	Win, Lose bool
	Score     float64

	// Moves is the number of Pacman moves.
	Moves int

	// Actions taken by Pacman, in order.
	Actions []Action
}

// IsFinished returns whether the game reached its end, as opposed to being stopped by the max number of moves.
func (r *Result) IsFinished() bool {
	return r.Win || r.Lose
}

// New creates a match starting from board. There must be one ghost agent per ghost in the board.
//
// The match owns the player: it is finalized at the end of Run.
func New(board *Board, pacman players.Player, ghostAgents []ghosts.Agent) *Match {
	if len(ghostAgents) != board.NumAgents()-1 {
		exceptions.Panicf("match.New: %d ghost agents given for a board with %d ghosts",
			len(ghostAgents), board.NumAgents()-1)
	}
	return &Match{board: board, pacman: pacman, ghostAgents: ghostAgents}
}

// WithMaxMoves limits the number of Pacman moves. Default is 0, which means no limit.
func (m *Match) WithMaxMoves(maxMoves int) *Match {
	m.maxMoves = maxMoves
	return m
}

// WithObserver sets a function to be called after each action.
func (m *Match) WithObserver(observer Observer) *Match {
	m.observer = observer
	return m
}

// Board returns the current board of the match.
func (m *Match) Board() *Board {
	return m.board
}

// Run plays the match until it finishes, the max number of moves is reached, or the context is cancelled.
//
// If the context is cancelled, the partial result is returned along with the context error.
func (m *Match) Run(ctx context.Context) (result *Result, err error) {
	defer m.pacman.Finalize()
	result = &Result{}
	if klog.V(1).Enabled() {
		klog.Infof("Starting match on %q with %s against %d ghosts", m.board.Layout().Name, m.pacman, len(m.ghostAgents))
	}
	for !m.board.IsFinished() && (m.maxMoves <= 0 || result.Moves < m.maxMoves) {
		if ctx.Err() != nil {
			err = errors.Wrapf(ctx.Err(), "match interrupted after %d moves", result.Moves)
			break
		}
		var action Action
		action, err = m.playPacman()
		if err != nil {
			break
		}
		result.Moves++
		result.Actions = append(result.Actions, action)
		err = m.playGhosts()
		if err != nil {
			break
		}
	}
	result.Win, result.Lose, result.Score = m.board.IsWin(), m.board.IsLose(), m.board.Score()
	if klog.V(1).Enabled() {
		klog.Infof("Finished match on %q: win=%v, score=%.0f, moves=%d", m.board.Layout().Name, result.Win, result.Score, result.Moves)
	}
	return
}

func (m *Match) playPacman() (action Action, err error) {
	var value float64
	action, value, err = m.pacman.Play(m.board)
	if err != nil {
		return
	}
	err = m.act(PacmanIndex, action)
	if err == nil && klog.V(2).Enabled() {
		klog.Infof("Move #%d: Pacman %s (value=%.3f), score=%.0f", m.board.MoveNumber, action, value, m.board.Score())
	}
	return
}

// playGhosts moves each ghost in turn, ghosts without legal actions skip their turn.
func (m *Match) playGhosts() error {
	for ii, agent := range m.ghostAgents {
		agentIdx := ii + 1
		if m.board.IsFinished() {
			return nil
		}
		if len(m.board.LegalActions(agentIdx)) == 0 {
			continue
		}
		if err := m.act(agentIdx, agent.Act(m.board, agentIdx)); err != nil {
			return err
		}
	}
	return nil
}

// act applies the action to the board: illegal actions are reported as errors.
func (m *Match) act(agentIdx int, action Action) error {
	err := exceptions.TryCatch[error](func() {
		m.board = m.board.Act(agentIdx, action)
	})
	if err != nil {
		return errors.WithMessagef(err, "agent #%d failed to play %s", agentIdx, action)
	}
	if m.observer != nil {
		m.observer(m.board, agentIdx, action)
	}
	return nil
}
