// Package ghosts implements the agents that move the ghosts during a match.
//
// The searchers don't use them: during search the ghosts are modeled as adversaries (or as uniformly
// random), regardless of how they actually play.
package ghosts

import (
	"fmt"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"math/rand/v2"
)

// Agent chooses the action of one ghost.
type Agent interface {
	// Act returns the action of the ghost agentIdx (1 for the first ghost) in the given state.
	// It must only be called if the ghost has legal actions.
	Act(s State, agentIdx int) Action

	String() string
}

// Kinds of ghost agents that can be created with New.
var Kinds = []string{"random", "directional"}

// New creates a ghost agent of the given kind, using rng as its source of randomness.
// Agents are not safe for concurrent use, create one per match.
func New(kind string, rng *rand.Rand) (Agent, error) {
	switch kind {
	case "random":
		return &Random{rng: rng}, nil
	case "directional":
		return NewDirectional(rng), nil
	}
	return nil, errors.Errorf("unknown ghost agent %q, valid values are %q", kind, Kinds)
}

// Random ghost chooses uniformly among its legal actions.
type Random struct {
	rng *rand.Rand
}

var _ Agent = (*Random)(nil)

// Act implements Agent.
func (g *Random) Act(s State, agentIdx int) Action {
	actions := s.LegalActions(agentIdx)
	return actions[g.rng.IntN(len(actions))]
}

// String implements Agent.
func (g *Random) String() string { return "random" }

// Directional ghost prefers to chase Pacman, or to flee from it when scared.
//
// With probability Attack (or ScaredFlee, if scared) it takes one of the actions that lead closest to
// (or farthest from) Pacman. Otherwise, it takes any legal action uniformly.
type Directional struct {
	Attack, ScaredFlee float64
	rng                *rand.Rand
}

var _ Agent = (*Directional)(nil)

// NewDirectional returns a directional ghost that chases or flees with probability 0.8.
func NewDirectional(rng *rand.Rand) *Directional {
	return &Directional{Attack: 0.8, ScaredFlee: 0.8, rng: rng}
}

// String implements Agent.
func (g *Directional) String() string {
	return fmt.Sprintf("directional(attack=%g, flee=%g)", g.Attack, g.ScaredFlee)
}

// Act implements Agent.
func (g *Directional) Act(s State, agentIdx int) Action {
	actions := s.LegalActions(agentIdx)
	ghost := s.Ghosts()[agentIdx-1]
	pacman := s.PacmanPosition()
	scared := ghost.IsScared()

	var best []Action
	var bestDistance int
	for _, action := range actions {
		distance := ghost.Pos.Add(action.Vector()).Distance(pacman)
		if scared {
			distance = -distance
		}
		switch {
		case len(best) == 0 || distance < bestDistance:
			best = append(best[:0], action)
			bestDistance = distance
		case distance == bestDistance:
			best = append(best, action)
		}
	}

	prob := g.Attack
	if scared {
		prob = g.ScaredFlee
	}
	if g.rng.Float64() < prob {
		return best[g.rng.IntN(len(best))]
	}
	return actions[g.rng.IntN(len(actions))]
}
