package accessor

import (
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

// Auxiliary keys written and read by the accessors.
const (
	// KeyBlockData carries the full typed state string for the modern accessor.
	KeyBlockData = "blockData"
	KeyLines     = "lines"
	KeyInventory = "inventory"
	KeyOwner     = "owner"
	KeySpawner   = "spawner"
)

// Accessor reads and writes live cells. It is the only code that touches
// live cell state, and must only be called from the simulation goroutine.
type Accessor interface {
	// Capture reads the cell without modifying it.
	Capture(c world.Cell) cell.Snapshot
	// Apply writes the type first and the auxiliary payload second. Only
	// failures of the first phase are returned.
	Apply(c world.Cell, s cell.Snapshot) error
	// NeedsUpdate reports whether applying s would change the cell.
	NeedsUpdate(c world.Cell, s cell.Snapshot) bool
}

type Variant string

const (
	VariantAuto   Variant = "auto"
	VariantLegacy Variant = "legacy"
	VariantModern Variant = "modern"
)

// ParseVariant parses a variant name. An empty name is VariantAuto.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantAuto:
		return VariantAuto, nil
	case VariantLegacy:
		return VariantLegacy, nil
	case VariantModern:
		return VariantModern, nil
	default:
		return "", fmt.Errorf("unknown accessor variant: %s", s)
	}
}

// Probe returns the variant matching the capabilities of all given worlds.
// The modern variant is only chosen if every world stores typed state.
func Probe(worlds ...world.World) Variant {
	if len(worlds) == 0 {
		return VariantLegacy
	}
	for _, w := range worlds {
		if !w.SupportsTypedState() {
			return VariantLegacy
		}
	}
	return VariantModern
}

// New returns the accessor for v. VariantAuto is not accepted; resolve it with Probe first.
func New(v Variant) (Accessor, error) {
	switch v {
	case VariantLegacy:
		return NewLegacy(), nil
	case VariantModern:
		return NewModern(), nil
	default:
		return nil, fmt.Errorf("cannot create accessor for variant %q", v)
	}
}

// Select resolves v against the given worlds and returns the accessor together
// with the variant that was installed.
func Select(v Variant, worlds ...world.World) (Accessor, Variant, error) {
	if v == VariantAuto || v == "" {
		v = Probe(worlds...)
	}
	acc, err := New(v)
	if err != nil {
		return nil, "", err
	}
	return acc, v, nil
}
