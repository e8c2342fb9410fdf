package storage

import (
	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// Repository is the persistence surface: the move dex consumed by the
// engine and the summary history written when sessions end. Live session
// state is never stored here.
type Repository interface {
	// Move resolves a move name within a format; it satisfies
	// dex.MoveSource so the engine can consume the repository directly.
	Move(name, format string) (*dex.Move, error)
	// ListMoves returns every move in a format, or all moves when format
	// is empty.
	ListMoves(format string) ([]dex.Move, error)

	// SaveSummary records the closing summary of a finished simulation.
	SaveSummary(s battle.SimulationSummary) error
	// ListSummaries returns the most recent summaries, newest first.
	ListSummaries(limit int) ([]battle.SimulationSummary, error)
}
