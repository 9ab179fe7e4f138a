// pacman plays Pacman games in the terminal, with the AI configured by -config moving Pacman.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/layouts"
	"github.com/janpfeifer/pacmanGo/internal/match"
	"github.com/janpfeifer/pacmanGo/internal/players"
	_ "github.com/janpfeifer/pacmanGo/internal/players/default"
	"github.com/janpfeifer/pacmanGo/internal/profilers"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/ui/cli"
	"github.com/janpfeifer/pacmanGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"strings"
	"time"
)

var (
	flagLayout    = flag.String("layout", "smallClassic", "Name of the layout, one of the embedded ones, or path to a layout file.")
	flagAIConfig  = flag.String("config", players.DefaultPlayerConfig, "AI configuration of the Pacman player.")
	flagGhosts    = flag.String("ghosts", "random", "Ghost agents: "+strings.Join(ghosts.Kinds, " or "))
	flagNumGhosts = flag.Int("num_ghosts", -1, "Max number of ghosts. If negative, all ghosts in the layout are used.")
	flagNumGames  = flag.Int("num_games", 1, "Number of games to play.")
	flagSeed      = flag.Uint64("seed", 0, "Seed for the ghosts random moves. If 0, a random seed is used.")
	flagMaxMoves  = flag.Int("max_moves", 0, "Max Pacman moves per game. If 0, there is no limit.")
	flagQuiet     = flag.Bool("quiet", false, "Quiet mode: only the result of each game is printed.")
	flagColor     = flag.Bool("color", true, "Use colors in the output.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagNumGames <= 0 {
		klog.Fatalf("Invalid -num_games=%d", *flagNumGames)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	layout := must.M1(layouts.Load(*flagLayout))
	seed := *flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	klog.V(1).Infof("Playing %d game(s) on %q with seed %d", *flagNumGames, layout.Name, seed)
	rng := rand.New(rand.NewPCG(seed, seed))
	ui := cli.New(*flagColor, false)

	var scores []float64
	var wins int
	for gameIdx := range *flagNumGames {
		result, err := runGame(globalCtx, ui, layout, rng)
		if err != nil {
			if globalCtx.Err() != nil {
				fmt.Printf("Interrupted: %s\n", globalCtx.Err())
				break
			}
			klog.Exitf("Game #%d failed: %+v", gameIdx, err)
		}
		ui.PrintResult(result)
		scores = append(scores, result.Score)
		if result.Win {
			wins++
		}
	}
	if len(scores) > 1 {
		fmt.Printf("Average score: %.1f\n", generics.Mean(scores))
		fmt.Printf("Win rate:      %d/%d (%.0f%%)\n", wins, len(scores), 100*float64(wins)/float64(len(scores)))
	}
}

// runGame plays one game on a fresh board, with a new AI player.
func runGame(ctx context.Context, ui *cli.UI, layout *Layout, rng *rand.Rand) (*match.Result, error) {
	board := layout.NewBoard(*flagNumGhosts)
	pacman, err := players.New(*flagAIConfig)
	if err != nil {
		return nil, err
	}
	var player players.Player = pacman
	ghostAgents := make([]ghosts.Agent, board.NumAgents()-1)
	for ii := range ghostAgents {
		ghostAgents[ii], err = ghosts.New(*flagGhosts, rng)
		if err != nil {
			return nil, err
		}
	}
	if *flagQuiet {
		return match.New(board, player, ghostAgents).WithMaxMoves(*flagMaxMoves).Run(ctx)
	}

	ui.Print(board)
	player = &spinningPlayer{Player: player, ctx: ctx}
	return match.New(board, player, ghostAgents).
		WithMaxMoves(*flagMaxMoves).
		WithObserver(func(b *Board, agentIdx int, action Action) {
			// Print once per round, or when the game ends.
			if agentIdx == b.NumAgents()-1 || b.IsFinished() {
				ui.Print(b)
			}
		}).
		Run(ctx)
}

// spinningPlayer shows a spinning symbol while the AI is thinking.
type spinningPlayer struct {
	players.Player
	ctx context.Context
}

func (p *spinningPlayer) Play(s State) (action Action, value float64, err error) {
	fmt.Printf("\t%s thinking: ", p.Player)
	spin := spinning.New(p.ctx)
	action, value, err = p.Player.Play(s)
	spin.Done()
	if err == nil {
		fmt.Printf("%s (value=%.3f)\n", action, value)
	} else {
		fmt.Println()
	}
	return
}
