// Package search implements Threes' expectimax move search: a MAX ply
// (the player picks a direction) alternating with a CHANCE ply (the
// game places the incoming card), averaged over a partial-knowledge
// deck model out to a configurable card-count horizon.
//
// The search is a depth-limited tree walk with a constructor that
// validates its configuration synchronously and a zerolog debug trail
// around - never inside - the hot loop. The four root directions fork
// across two worker goroutines and join before a result is chosen, a
// deterministic two-way split rather than n-way simulation sampling.
package search

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rs/zerolog/log"

	"github.com/domino14/threesbot/board"
	"github.com/domino14/threesbot/deck"
	"github.com/domino14/threesbot/eval"
	"github.com/domino14/threesbot/hint"
)

// statsKey returns a cheap correlation hash of (board, deck, hint), used
// only to tag debug log lines for a given top-level call - never as a
// cache or transposition-table key. The search holds no state between
// calls and allocates nothing inside the recursion, so this hash is
// computed once per EvaluateMove call, not once per node.
func statsKey(b board.Board, dc deck.Counter, nc hint.NextCard) uint64 {
	var buf [13]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(b))
	buf[8] = byte(dc.Ones)
	buf[9] = byte(dc.Twos)
	buf[10] = byte(dc.Threes)
	buf[11] = byte(nc)
	return xxhash.Sum64(buf[:12])
}

// ErrNoMove is returned by EvaluateMove when no direction changes the
// board: the position is a game-over state for the searching player.
var ErrNoMove = errors.New("search: no legal move from this position")

// Searcher runs the expectimax search over a fixed depth and card-count
// horizon using a single evaluator. Searchers are immutable after
// construction and safe for concurrent use, since the evaluator they
// hold must itself be pure and thread-safe (eval.Evaluator's contract).
type Searcher struct {
	depth     int
	horizon   int
	evaluator eval.Evaluator
}

// NewSearcher validates and constructs a Searcher. Invalid configuration
// (depth < 1, horizon outside 1..depth, or a nil evaluator) is a
// programmer error and is reported synchronously, never as a panic and
// never by a zero-value Searcher silently misbehaving later.
func NewSearcher(depth, horizon int, evaluator eval.Evaluator) (*Searcher, error) {
	if depth < 1 {
		return nil, fmt.Errorf("search: depth must be >= 1, got %d", depth)
	}
	if horizon < 1 || horizon > depth {
		return nil, fmt.Errorf("search: horizon must be in 1..%d, got %d", depth, horizon)
	}
	if evaluator == nil {
		return nil, errors.New("search: evaluator must not be nil")
	}
	return &Searcher{depth: depth, horizon: horizon, evaluator: evaluator}, nil
}

// Depth returns the configured search depth (D).
func (s *Searcher) Depth() int { return s.depth }

// Horizon returns the configured card-count horizon (C).
func (s *Searcher) Horizon() int { return s.horizon }

// Evaluator returns the configured board evaluator.
func (s *Searcher) Evaluator() eval.Evaluator { return s.evaluator }

// Result is the outcome of a successful EvaluateMove call.
type Result struct {
	Direction   board.Direction
	Quality     float32
	Evaluations uint64
}

type directionOutcome struct {
	legal   bool
	quality float32
	evals   uint64
}

// EvaluateMove runs the full expectimax search from (b, dc, nc) and
// returns the best direction and its quality, or ErrNoMove if no
// direction changes the board at all.
//
// The four root directions are split across two worker goroutines -
// {Left, Right} on one, {Up, Down} on the other; deeper recursion is
// entirely sequential. Each worker accumulates its
// own evaluation counter; the two are summed only after both join, so
// no mutable state is shared inside the recursion itself.
func (s *Searcher) EvaluateMove(b board.Board, dc deck.Counter, nc hint.NextCard) (Result, error) {
	var outcomes [4]directionOutcome
	groups := [2][2]board.Direction{
		{board.Left, board.Right},
		{board.Up, board.Down},
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, grp := range groups {
		grp := grp
		g.Go(func() error {
			for _, dir := range grp {
				outcomes[dir] = s.evaluateRootDirection(b, dc, nc, dir)
			}
			return nil
		})
	}
	// errgroup.Group.Wait never returns a non-nil error here: the
	// worker closures above cannot fail.
	_ = g.Wait()

	best := board.Left
	bestQuality := float32(math.Inf(-1))
	found := false
	var totalEvals uint64
	for _, dir := range board.Directions {
		o := outcomes[dir]
		totalEvals += o.evals
		if !o.legal {
			continue
		}
		if !found || o.quality > bestQuality {
			found = true
			best = dir
			bestQuality = o.quality
		}
	}

	key := statsKey(b, dc, nc)
	if !found {
		log.Debug().
			Uint64("key", key).
			Int("depth", s.depth).Int("horizon", s.horizon).
			Str("evaluator", s.evaluator.Name()).
			Msg("search: no legal move")
		return Result{}, ErrNoMove
	}

	log.Debug().
		Uint64("key", key).
		Int("depth", s.depth).Int("horizon", s.horizon).
		Str("evaluator", s.evaluator.Name()).
		Str("direction", best.String()).
		Float32("quality", bestQuality).
		Uint64("evaluations", totalEvals).
		Msg("search: move chosen")

	return Result{Direction: best, Quality: bestQuality, Evaluations: totalEvals}, nil
}

func (s *Searcher) evaluateRootDirection(b board.Board, dc deck.Counter, nc hint.NextCard, dir board.Direction) directionOutcome {
	shifted, placements := board.Shift(b, dir)
	if shifted == b {
		return directionOutcome{legal: false}
	}
	quality, evals := s.rootChance(shifted, placements, dc, nc)
	return directionOutcome{legal: true, quality: quality, evals: evals}
}

// rootChance resolves the single CHANCE ply where the true next-card
// hint is known (the very top level).
func (s *Searcher) rootChance(shifted board.Board, placements board.Placements, dc deck.Counter, nc hint.NextCard) (float32, uint64) {
	if idx, ok := nc.KnownIndex(); ok {
		return s.averageOverPlacements(shifted, placements, dc, 1, []weightedValue{{value: idx, weight: 1}})
	}
	return s.averageBonusCard(shifted, placements, dc)
}

type weightedValue struct {
	value  int
	weight int
}

// averageOverPlacements places each weighted value at every non-sentinel
// cell, recurses one MAX ply deeper for each, and returns the weighted
// mean quality together with the total evaluation count.
func (s *Searcher) averageOverPlacements(shifted board.Board, placements board.Placements, dc deck.Counter, nextDepth int, values []weightedValue) (float32, uint64) {
	var sumVal float32
	var sumWeight int
	var evals uint64
	for _, wv := range values {
		for _, cell := range placements {
			if cell == board.Sentinel {
				continue
			}
			newBoard := shifted.Set(int(cell.X), int(cell.Y), wv.value)
			val, cnt, _ := s.maxNode(newBoard, dc, nextDepth)
			sumVal += float32(wv.weight) * val
			sumWeight += wv.weight
			evals += cnt
		}
	}
	if sumWeight == 0 {
		// Defensive fallback for a degenerate chance node (e.g. a bonus
		// hint on a board too small to support any bonus index): evaluate
		// the pre-placement board directly rather than divide by zero.
		return s.evaluator.Evaluate(shifted), 1
	}
	return sumVal / float32(sumWeight), evals
}

// averageBonusCard enumerates the possible bonus card indices - 4..M-3
// inclusive, where M is the shifted board's max index.
func (s *Searcher) averageBonusCard(shifted board.Board, placements board.Placements, dc deck.Counter) (float32, uint64) {
	maxIdx := shifted.MaxCardIndex()
	var values []weightedValue
	for bonusIdx := 4; bonusIdx <= maxIdx-3; bonusIdx++ {
		values = append(values, weightedValue{value: bonusIdx, weight: 1})
	}
	return s.averageOverPlacements(shifted, placements, dc, 1, values)
}

// innerChance resolves a CHANCE ply below the root, where the true next
// card is unknown. Within the card-count horizon it averages over the
// deck's 1/2/3 distribution; beyond it, it treats the placement as
// deterministic and recurses once directly on the shifted board,
// skipping the new-card placement entirely.
func (s *Searcher) innerChance(shifted board.Board, placements board.Placements, dc deck.Counter, depthFromRoot int) (float32, uint64) {
	if depthFromRoot >= s.horizon {
		val, cnt, _ := s.maxNode(shifted, dc, depthFromRoot+1)
		return val, cnt
	}

	// Deliberately unrolled (rather than built from a slice of weighted
	// values): this is the hot path, and the spec forbids allocating any
	// per-node data structure here - everything stays on the stack.
	var sumVal float32
	var sumWeight int
	var evals uint64

	if dc.Ones > 0 {
		nd := dc.RemoveOne()
		for _, cell := range placements {
			if cell == board.Sentinel {
				continue
			}
			nb := shifted.Set(int(cell.X), int(cell.Y), 1)
			val, cnt, _ := s.maxNode(nb, nd, depthFromRoot+1)
			sumVal += float32(dc.Ones) * val
			sumWeight += dc.Ones
			evals += cnt
		}
	}
	if dc.Twos > 0 {
		nd := dc.RemoveTwo()
		for _, cell := range placements {
			if cell == board.Sentinel {
				continue
			}
			nb := shifted.Set(int(cell.X), int(cell.Y), 2)
			val, cnt, _ := s.maxNode(nb, nd, depthFromRoot+1)
			sumVal += float32(dc.Twos) * val
			sumWeight += dc.Twos
			evals += cnt
		}
	}
	if dc.Threes > 0 {
		nd := dc.RemoveThree()
		for _, cell := range placements {
			if cell == board.Sentinel {
				continue
			}
			nb := shifted.Set(int(cell.X), int(cell.Y), 3)
			val, cnt, _ := s.maxNode(nb, nd, depthFromRoot+1)
			sumVal += float32(dc.Threes) * val
			sumWeight += dc.Threes
			evals += cnt
		}
	}

	if sumWeight == 0 {
		// Every deck count is zero. Removals never leave a Counter empty
		// (deck.Counter refills on exhaustion), so this only happens when
		// the caller passed in an empty Counter.
		val, cnt, _ := s.maxNode(shifted, dc, depthFromRoot+1)
		return val, cnt
	}
	return sumVal / float32(sumWeight), evals
}

// maxNode is the recursive, sequential MAX ply used at every depth
// below the root. It returns the leaf evaluation when remaining depth
// is zero or when no direction moves, and otherwise the max over the
// legal directions' CHANCE-ply values.
func (s *Searcher) maxNode(b board.Board, dc deck.Counter, depthFromRoot int) (quality float32, evals uint64, hasMove bool) {
	if depthFromRoot >= s.depth {
		return s.evaluator.Evaluate(b), 1, true
	}

	best := float32(math.Inf(-1))
	found := false
	var total uint64
	for _, dir := range board.Directions {
		shifted, placements := board.Shift(b, dir)
		if shifted == b {
			continue
		}
		found = true
		val, cnt := s.innerChance(shifted, placements, dc, depthFromRoot)
		total += cnt
		if val > best {
			best = val
		}
	}
	if !found {
		return s.evaluator.Evaluate(b), 1, false
	}
	return best, total, true
}
