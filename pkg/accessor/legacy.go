package accessor

import (
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

// Legacy treats the type name plus numeric sub-type as authoritative.
// A typed state carried by the snapshot is not used.
type Legacy struct{}

func NewLegacy() *Legacy {
	return &Legacy{}
}

func (a *Legacy) Capture(c world.Cell) cell.Snapshot {
	return cell.New(c.Type(), c.Data(), captureAux(c))
}

func (a *Legacy) Apply(c world.Cell, s cell.Snapshot) error {
	if err := c.SetType(s.TypeID()); err != nil {
		return fmt.Errorf("failed to set type %s at %v: %w", s.TypeID(), c.Pos(), err)
	}
	if err := c.SetData(s.LegacyVariant()); err != nil {
		return fmt.Errorf("failed to set data %d at %v: %w", s.LegacyVariant(), c.Pos(), err)
	}
	applyAux(c, s)
	return nil
}

func (a *Legacy) NeedsUpdate(c world.Cell, s cell.Snapshot) bool {
	if c.Type() != s.TypeID() || c.Data() != s.LegacyVariant() {
		return true
	}
	if !s.HasAux() {
		return false
	}
	return !auxMatches(captureAux(c), s, KeyBlockData)
}
