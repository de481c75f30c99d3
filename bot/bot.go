// Package bot is the facade a front-end calls into: it owns nothing the
// search doesn't already own, and exists purely to give callers a
// small, stable entry point plus a human-readable description for
// logging.
package bot

import (
	"fmt"

	"github.com/domino14/threesbot/board"
	"github.com/domino14/threesbot/deck"
	"github.com/domino14/threesbot/hint"
	"github.com/domino14/threesbot/search"
)

// Bot is a thin facade over a search.Searcher.
type Bot struct {
	searcher *search.Searcher
}

// New constructs a Bot from an already-validated Searcher. Searcher
// construction is where programmer errors (bad depth/horizon/evaluator)
// are caught; by the time a Bot exists, those are no longer possible.
func New(searcher *search.Searcher) *Bot {
	return &Bot{searcher: searcher}
}

// GetNextMove returns the best direction for the given position, or
// false if the position has no legal move (game over).
func (b *Bot) GetNextMove(packedBoard board.Board, dc deck.Counter, nc hint.NextCard) (board.Direction, bool) {
	dir, _, ok := b.GetNextMoveWithStats(packedBoard, dc, nc)
	return dir, ok
}

// GetNextMoveWithStats is GetNextMove plus the number of node
// evaluations the search performed, for diagnostic logging.
func (b *Bot) GetNextMoveWithStats(packedBoard board.Board, dc deck.Counter, nc hint.NextCard) (board.Direction, uint64, bool) {
	result, err := b.searcher.EvaluateMove(packedBoard, dc, nc)
	if err != nil {
		return 0, 0, false
	}
	return result.Direction, result.Evaluations, true
}

// Describe returns a human-readable "depth / horizon / evaluator name"
// string for diagnostic logging.
func (b *Bot) Describe() string {
	return fmt.Sprintf("depth=%d horizon=%d evaluator=%s",
		b.searcher.Depth(), b.searcher.Horizon(), b.searcher.Evaluator().Name())
}
