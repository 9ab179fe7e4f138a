// compare plays many games with each of the given AI configurations, on the same layout and with
// the same ghost seeds, and prints a table comparing their results.
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
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/ui/cli"
	"github.com/janpfeifer/pacmanGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	flagConfigs = flag.String("configs", "minimax,depth=2;alphabeta,depth=2;expectimax,depth=2",
		"Semicolon separated list of AI configurations to compare.")
	flagLayout      = flag.String("layout", "smallClassic", "Name of the layout, one of the embedded ones, or path to a layout file.")
	flagNumGames    = flag.Int("num_games", 20, "Number of games to play with each configuration.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many games simultaneously.")
	flagGhosts    = flag.String("ghosts", "random", "Ghost agents: "+strings.Join(ghosts.Kinds, " or "))
	flagNumGhosts = flag.Int("num_ghosts", -1, "Max number of ghosts. If negative, all ghosts in the layout are used.")
	flagSeed      = flag.Uint64("seed", 1, "Base seed for the ghosts: game #i of every configuration uses seed+i.")
	flagMaxMoves  = flag.Int("max_moves", 2000, "Max Pacman moves per game, above that the game is stopped.")
	flagColor     = flag.Bool("color", true, "Use colors in the output.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	configs := parseConfigs(*flagConfigs)
	if len(configs) == 0 {
		klog.Fatal("You must configure at least one AI to compare with -configs")
	}
	if *flagNumGames <= 0 {
		klog.Fatalf("Invalid -num_games=%d", *flagNumGames)
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	// Check configurations before starting.
	for _, config := range configs {
		must.M1(players.New(config)).Finalize()
	}
	layout := must.M1(layouts.Load(*flagLayout))
	results := newResults(configs, *flagNumGames)
	must.M(runGames(globalCtx, layout, results))
	if globalCtx.Err() == nil {
		results.Print(cli.New(*flagColor, false))
	}
}

// parseConfigs splits the list of configurations, skipping empty ones.
func parseConfigs(list string) []string {
	var configs []string
	for _, config := range strings.Split(list, ";") {
		config = strings.TrimSpace(config)
		if config != "" {
			configs = append(configs, config)
		}
	}
	return configs
}

// Results collects the games played by each configuration.
type Results struct {
	mu            sync.Mutex
	start         time.Time
	configs       []string
	games         [][]*match.Result
	durations     []time.Duration
	played, total int
}

func newResults(configs []string, numGames int) *Results {
	r := &Results{
		start:     time.Now(),
		configs:   configs,
		games:     make([][]*match.Result, len(configs)),
		durations: make([]time.Duration, len(configs)),
		total:     numGames * len(configs),
	}
	for ii := range r.games {
		r.games[ii] = make([]*match.Result, numGames)
	}
	return r
}

// Record the result of a game.
func (r *Results) Record(configIdx, gameIdx int, result *match.Result, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[configIdx][gameIdx] = result
	r.durations[configIdx] += elapsed
	r.played++
}

// String reports the progress.
func (r *Results) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("Played %d of %d games - %s\033[0K", r.played, r.total, time.Since(r.start).Round(time.Millisecond))
}

// Print the table of results.
func (r *Results) Print(ui *cli.UI) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([][]string, 0, len(r.configs))
	for configIdx, config := range r.configs {
		var wins, losses int
		var scores, moves []float64
		for _, result := range r.games[configIdx] {
			if result == nil {
				continue
			}
			if result.Win {
				wins++
			} else if result.Lose {
				losses++
			}
			scores = append(scores, result.Score)
			moves = append(moves, float64(result.Moves))
		}
		var perMove time.Duration
		if totalMoves := generics.Mean(moves) * float64(len(moves)); totalMoves > 0 {
			perMove = time.Duration(float64(r.durations[configIdx]) / totalMoves)
		}
		rows = append(rows, []string{
			config,
			fmt.Sprintf("%d/%d", wins, len(scores)),
			fmt.Sprintf("%d", losses),
			fmt.Sprintf("%.1f", generics.Mean(scores)),
			fmt.Sprintf("%.1f", generics.Mean(moves)),
			perMove.Round(time.Microsecond).String(),
		})
	}
	ui.PrintTable([]string{"AI", "Wins", "Losses", "Avg Score", "Avg Moves", "Time/Move"}, rows)
}

func runGames(ctx context.Context, layout *state.Layout, r *Results) error {
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	fmt.Printf("\r%s", r)

	for gameIdx := range *flagNumGames {
		for configIdx, config := range r.configs {
			wg.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				start := time.Now()
				result, err := runGame(ctx, layout, config, *flagSeed+uint64(gameIdx))
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return errors.WithMessagef(err, "game #%d of %q", gameIdx, config)
				}
				r.Record(configIdx, gameIdx, result, time.Since(start))
				fmt.Printf("\r%s", r)
				return nil
			})
		}
	}
	err := wg.Wait()
	fmt.Printf("\r%s", r)
	fmt.Println()
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	return err
}

// runGame plays one game with a new player: ghosts of game with the same seed play the same way
// if Pacman plays the same way.
func runGame(ctx context.Context, layout *state.Layout, config string, seed uint64) (*match.Result, error) {
	board := layout.NewBoard(*flagNumGhosts)
	player, err := players.New(config)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	ghostAgents := make([]ghosts.Agent, board.NumAgents()-1)
	for ii := range ghostAgents {
		ghostAgents[ii], err = ghosts.New(*flagGhosts, rng)
		if err != nil {
			return nil, err
		}
	}
	return match.New(board, player, ghostAgents).WithMaxMoves(*flagMaxMoves).Run(ctx)
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
