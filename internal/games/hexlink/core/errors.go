package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTile matches every *InvalidTileError via errors.Is.
	ErrInvalidTile = errors.New("invalid tile")

	// ErrInvalidLayout matches every *InvalidLayoutError via errors.Is.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrSessionCompleted is returned by mutating calls on a finished session.
	ErrSessionCompleted = errors.New("session already completed")
)

// Reasons carried by InvalidTileError.
const (
	ReasonUnknownTile = "unknown"
	ReasonFixedTile   = "fixed"
)

// InvalidTileError is returned when a rotation names a tile that does not
// exist or cannot rotate. The grid is left untouched.
type InvalidTileError struct {
	ID     TileID
	Reason string
}

func (e *InvalidTileError) Error() string {
	return fmt.Sprintf("hexlink: tile %d: %s", e.ID, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidTile) hold.
func (e *InvalidTileError) Is(target error) bool {
	return target == ErrInvalidTile
}

// InvalidLayoutError is returned when a layout cannot form a puzzle.
type InvalidLayoutError struct {
	Reason string
	Tile   TileID // -1 when not tied to a tile
	Pos    Coord
}

func (e *InvalidLayoutError) Error() string {
	if e.Tile < 0 {
		return fmt.Sprintf("hexlink: invalid layout: %s", e.Reason)
	}
	return fmt.Sprintf("hexlink: invalid layout: %s (tile %d at %s)", e.Reason, e.Tile, e.Pos)
}

// Is makes errors.Is(err, ErrInvalidLayout) hold.
func (e *InvalidLayoutError) Is(target error) bool {
	return target == ErrInvalidLayout
}
