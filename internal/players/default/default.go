// Package _default registers the default evaluators and searchers that can be included in any
// front-end for pacmanGo.
//
// Currently, it includes the heuristic evaluators, the tree searchers (minimax, alpha-beta and
// expectimax) and the reflex searchers.
package _default

import (
	_ "github.com/janpfeifer/pacmanGo/internal/ai/heuristic"
	_ "github.com/janpfeifer/pacmanGo/internal/searchers/reflex"
	_ "github.com/janpfeifer/pacmanGo/internal/searchers/tree"
)
