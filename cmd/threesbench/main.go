// Command threesbench is a small benchmarking tool for the search
// engine: it runs the bot forward over a handful of synthetic
// positions at a configured depth/horizon and prints a histogram of
// how many node evaluations each move took.
//
// This is demonstration/benchmarking plumbing, not an interactive
// assistant front-end or a self-play harness: it does not read a
// physical game and it does not batch or score whole games, it just
// exercises the engine end to end.
package main

import (
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/google/uuid"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/threesbot/board"
	"github.com/domino14/threesbot/bot"
	"github.com/domino14/threesbot/config"
	"github.com/domino14/threesbot/deck"
	"github.com/domino14/threesbot/hint"
	"github.com/domino14/threesbot/search"
)

func main() {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal().Err(err).Msg("threesbench: failed to load config")
	}

	evaluator, err := cfg.BuildEvaluator()
	if err != nil {
		logger.Fatal().Err(err).Msg("threesbench: failed to build evaluator")
	}

	searcher, err := search.NewSearcher(cfg.SearchDepth, cfg.SearchHorizon, evaluator)
	if err != nil {
		logger.Fatal().Err(err).Msg("threesbench: failed to construct searcher")
	}
	b := bot.New(searcher)

	// pbnjay/memory sizes how many synthetic positions we churn through:
	// more available memory buys a slightly larger benchmark sample
	// without the tool needing a --sample-size flag of its own.
	sampleSize := 8
	if mb := memory.TotalMemory() / (1024 * 1024); mb > 4096 {
		sampleSize = 16
	}

	positions := syntheticPositions(sampleSize)
	evalCounts := lo.Map(positions, func(pos board.Board, _ int) float64 {
		_, evals, ok := b.GetNextMoveWithStats(pos, deck.Full(), hint.One)
		if !ok {
			return 0
		}
		return float64(evals)
	})

	logger.Info().Str("bot", b.Describe()).Int("positions", len(positions)).Msg("threesbench: run complete")

	hist := histogram.Hist(10, evalCounts)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(60)); err != nil {
		logger.Fatal().Err(err).Msg("threesbench: failed to print histogram")
	}
}

// syntheticPositions builds n deterministic, varied 4x4 boards to run
// the bot against - no randomness, so a benchmark run is reproducible.
func syntheticPositions(n int) []board.Board {
	seeds := [][16]int{
		{1, 2, 3, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 2, 3, 6, 6, 0, 0, 0, 2, 0, 1, 0, 0, 0, 0, 12},
		{1, 3, 1, 3, 3, 1, 3, 1, 1, 3, 1, 0, 3, 1, 3, 1},
		{0, 0, 0, 0, 0, 1, 2, 0, 0, 3, 6, 0, 0, 0, 0, 0},
	}
	out := make([]board.Board, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, board.PackedFromLogical(seeds[i%len(seeds)]))
	}
	return out
}
