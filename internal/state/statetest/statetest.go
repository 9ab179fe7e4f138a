// Package statetest provides helper functions to create tests using game states.
//
// Node is a scripted State: a tree of values laid out by hand, used to check the searchers
// without a real game engine.
package statetest

import (
	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"slices"
)

// Counter is shared by all nodes of a scripted tree, and records the calls made by a searcher.
type Counter struct {
	Successors int
	Evaluated  []*Node
}

// Node is a scripted State. LegalActions returns one action per child, in order, for whichever
// agent is asked, and Successor returns the corresponding child.
//
// Nodes without children and that are not terminal represent agents with no legal moves.
type Node struct {
	Name      string
	Value     float64
	Win, Lose bool
	Children  []*Node

	// Agents is the number of agents, it must be the same for all nodes of a tree.
	Agents int

	// Depth is the number of successor calls from the root to this node, set by Build.
	Depth int

	counter *Counter
}

// Assert Node is a State.
var _ State = (*Node)(nil)

// Leaf returns a non-terminal node without children.
func Leaf(value float64) *Node {
	return &Node{Value: value}
}

// Branch returns a node with the given children.
func Branch(children ...*Node) *Node {
	return &Node{Children: children}
}

// Build finalizes a tree: it sets the number of agents and the depth of every node, and
// attaches a fresh Counter that is returned.
func Build(root *Node, numAgents int) *Counter {
	counter := &Counter{}
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		n.Agents = numAgents
		n.Depth = depth
		n.counter = counter
		for _, child := range n.Children {
			visit(child, depth+1)
		}
	}
	visit(root, 0)
	return counter
}

// NumAgents implements State.
func (n *Node) NumAgents() int { return n.Agents }

// LegalActions implements State.
func (n *Node) LegalActions(agentIdx int) []Action {
	if n.Win || n.Lose {
		return nil
	}
	actions := make([]Action, len(n.Children))
	for ii := range actions {
		actions[ii] = Action(ii)
	}
	return actions
}

// Successor implements State.
func (n *Node) Successor(agentIdx int, action Action) State {
	if !slices.Contains(n.LegalActions(agentIdx), action) {
		exceptions.Panicf("scripted node %q: illegal action %d for agent %d", n.Name, action, agentIdx)
	}
	n.counter.Successors++
	return n.Children[action]
}

// IsWin implements State.
func (n *Node) IsWin() bool { return n.Win }

// IsLose implements State.
func (n *Node) IsLose() bool { return n.Lose }

// Score implements State. Scripted nodes score their Value, and record the evaluation in the Counter.
func (n *Node) Score() float64 {
	n.counter.Evaluated = append(n.counter.Evaluated, n)
	return n.Value
}

// PacmanPosition implements State.
func (n *Node) PacmanPosition() Pos { return Pos{} }

// Food implements State.
func (n *Node) Food() []Pos { return nil }

// HasFood implements State.
func (n *Node) HasFood(Pos) bool { return false }

// Ghosts implements State.
func (n *Node) Ghosts() []Ghost { return nil }

// Capsules implements State.
func (n *Node) Capsules() []Pos { return nil }

// Chain returns a tree where every node has exactly one child, length successors deep, with
// the leaf valued leafValue and every intermediary node valued by its depth.
func Chain(length int, leafValue float64) *Node {
	root := &Node{}
	node := root
	for depth := 1; depth <= length; depth++ {
		child := &Node{Value: float64(depth)}
		if depth == length {
			child.Value = leafValue
		}
		node.Children = []*Node{child}
		node = child
	}
	return root
}

// BuildBoard parses a layout text and returns its initial board with all its ghosts.
func BuildBoard(name, text string) (*Board, error) {
	l, err := ParseLayout(name, text)
	if err != nil {
		return nil, errors.WithMessagef(err, "statetest.BuildBoard")
	}
	return l.NewBoard(-1), nil
}
