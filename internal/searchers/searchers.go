// Package searchers defines the interface of the search algorithms that choose Pacman's action.
//
// The algorithms themselves are implemented in sub-packages: tree (minimax, alpha-beta pruning and
// expectimax) and reflex (one-ply).
package searchers

import (
	"fmt"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"time"
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher interface {
	// Search returns Pacman's action for the given state, along with its value as estimated by the search.
	//
	// It returns ErrNoActions if Pacman has no legal actions, which is the case for finished games.
	Search(s State) (action Action, value float64, err error)

	// String returns a description of the searcher and its configuration.
	String() string
}

// ErrNoActions is returned when searching a state where Pacman has no legal actions.
var ErrNoActions = errors.New("no legal actions for Pacman")

// Stats collected during one search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes generated, that is, calls to State.Successor.
	Nodes int

	// Evals is the number of calls to the evaluation function.
	Evals int

	// Prunes is the number of times the remaining siblings of a node were cut off.
	Prunes int

	Duration time.Duration
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	nodesPerSec := 0.0
	if s.Duration > 0 {
		nodesPerSec = float64(s.Nodes) / s.Duration.Seconds()
	}
	return fmt.Sprintf("nodes=%d, evals=%d, prunes=%d in %s (%.0f nodes/s)",
		s.Nodes, s.Evals, s.Prunes, s.Duration, nodesPerSec)
}
