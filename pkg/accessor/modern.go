package accessor

import (
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

// Modern treats the full typed state string as authoritative. The state is
// carried in the KeyBlockData payload; tile fields are layered on top of it.
// Cells that are not world.TypedCell, and snapshots without a typed state,
// fall back to the type name plus numeric sub-type.
type Modern struct{}

func NewModern() *Modern {
	return &Modern{}
}

func (a *Modern) Capture(c world.Cell) cell.Snapshot {
	aux := captureAux(c)
	tc, ok := c.(world.TypedCell)
	if !ok {
		return cell.New(c.Type(), c.Data(), aux)
	}
	if aux == nil {
		aux = make(map[string]string, 1)
	}
	aux[KeyBlockData] = tc.BlockData()
	// the numeric sub-type is unused once the typed state is known
	return cell.New(c.Type(), 0, aux)
}

func (a *Modern) Apply(c world.Cell, s cell.Snapshot) error {
	blockData, hasBlockData := s.AuxValue(KeyBlockData)
	tc, typed := c.(world.TypedCell)
	if typed && hasBlockData {
		if err := tc.SetBlockData(blockData); err != nil {
			return fmt.Errorf("failed to set block data %q at %v: %w", blockData, c.Pos(), err)
		}
	} else {
		if err := c.SetType(s.TypeID()); err != nil {
			return fmt.Errorf("failed to set type %s at %v: %w", s.TypeID(), c.Pos(), err)
		}
		if err := c.SetData(s.LegacyVariant()); err != nil {
			return fmt.Errorf("failed to set data %d at %v: %w", s.LegacyVariant(), c.Pos(), err)
		}
	}
	applyAux(c, s)
	return nil
}

func (a *Modern) NeedsUpdate(c world.Cell, s cell.Snapshot) bool {
	blockData, hasBlockData := s.AuxValue(KeyBlockData)
	tc, typed := c.(world.TypedCell)
	if typed && hasBlockData {
		if tc.BlockData() != blockData {
			return true
		}
	} else if c.Type() != s.TypeID() || c.Data() != s.LegacyVariant() {
		return true
	}
	if !s.HasAux() || (hasBlockData && len(s.AuxKeys()) == 1) {
		return false
	}
	// the typed state was compared above
	return !auxMatches(captureAux(c), s, KeyBlockData)
}
