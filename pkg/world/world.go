package world

import (
	"errors"
)

var (
	// ErrOutOfBounds is returned when a position lies outside the vertical range of a world.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrUnknownWorld is returned when a world name is not loaded.
	ErrUnknownWorld = errors.New("unknown world")
)

// AirType is the type of a cell that holds nothing.
const AirType = "AIR"

// Cell is a handle on one live cell. Implementations are only safe to use
// from the simulation goroutine.
type Cell interface {
	Pos() Pos
	// Type returns the canonical upper case type name, never empty.
	Type() string
	// SetType changes the type. A tile state that does not fit the new
	// type is replaced.
	SetType(typ string) error
	// Data returns the legacy numeric sub-type.
	Data() int8
	SetData(data int8) error
	// State returns the tile state of the cell, or nil if the type carries none.
	State() TileState
}

// TypedCell is a cell of a world that stores full typed state strings.
type TypedCell interface {
	Cell
	// BlockData returns the typed state, e.g. minecraft:oak_stairs[facing=east,half=bottom].
	BlockData() string
	// SetBlockData replaces type and properties in one step.
	SetBlockData(data string) error
}

// World is a live spatial grid addressed by block position.
type World interface {
	Name() string
	// Cell returns a handle on the cell at p, or ErrOutOfBounds.
	Cell(p Pos) (Cell, error)
	// SupportsTypedState reports whether cells of this world implement TypedCell.
	SupportsTypedState() bool
}

// Lookup resolves world names.
type Lookup interface {
	Get(name string) (World, bool)
}
