package schematic

import (
	"errors"
	"fmt"
	"math"

	"github.com/cbodonnell/stoneworks/pkg/accessor"
	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

// ErrOffsetOutOfRange is returned by Copy when the pivot is too far from the
// region for the offsets to fit in an int32.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Entry is one captured cell: an offset from the pivot and the serialized snapshot.
type Entry struct {
	DX       int32  `json:"dx"`
	DY       int32  `json:"dy"`
	DZ       int32  `json:"dz"`
	Snapshot string `json:"snapshot"`
}

func (e Entry) Offset() world.Pos {
	return world.Pos{int(e.DX), int(e.DY), int(e.DZ)}
}

// Schematic is an ordered list of entries plus an optional anchor. It is
// read-only once built and may be shared by several paste jobs.
type Schematic struct {
	entries []Entry
	anchor  *world.Location
}

// New returns a schematic over a copy of entries.
func New(entries []Entry, anchor *world.Location) *Schematic {
	s := &Schematic{
		entries: make([]Entry, len(entries)),
	}
	copy(s.entries, entries)
	if anchor != nil {
		a := *anchor
		s.anchor = &a
	}
	return s
}

// Entries returns a copy of the entries in capture order.
func (s *Schematic) Entries() []Entry {
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

func (s *Schematic) Len() int {
	return len(s.entries)
}

func (s *Schematic) Entry(i int) Entry {
	return s.entries[i]
}

// Anchor returns the absolute location the offsets were measured from, if recorded.
func (s *Schematic) Anchor() (world.Location, bool) {
	if s.anchor == nil {
		return world.Location{}, false
	}
	return *s.anchor, true
}

// Bounds returns the smallest box containing every offset. ok is false for
// an empty schematic.
func (s *Schematic) Bounds() (box world.Box, ok bool) {
	if len(s.entries) == 0 {
		return world.Box{}, false
	}
	first := s.entries[0].Offset()
	box = world.Box{Min: first, Max: first}
	for _, e := range s.entries[1:] {
		box = box.Union(e.Offset())
	}
	return box, true
}

// TypeCounts returns the number of entries of each type.
func (s *Schematic) TypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, e := range s.entries {
		counts[cell.Parse(e.Snapshot).TypeID()]++
	}
	return counts
}

// Copy captures the box spanned by c1 and c2, x outermost then y then z,
// each ascending. Offsets are relative to the block containing pivot; a nil
// pivot uses the minimum corner and records no anchor. Copy reads live cells
// and must run on the simulation goroutine.
func Copy(w world.World, acc accessor.Accessor, c1, c2 world.Pos, pivot *world.Location) (*Schematic, error) {
	box := world.NewBox(c1, c2)
	origin := box.Min
	if pivot != nil {
		origin = world.PosFromVec(pivot.Vec)
	}

	for _, off := range []world.Pos{box.Min.Sub(origin), box.Max.Sub(origin)} {
		for _, v := range off {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: pivot %v is too far from %v", ErrOffsetOutOfRange, origin, box.Min)
			}
		}
	}

	entries := make([]Entry, 0, box.Volume())
	var err error
	box.Range(func(p world.Pos) bool {
		var c world.Cell
		c, err = w.Cell(p)
		if err != nil {
			err = fmt.Errorf("failed to read cell %v: %w", p, err)
			return false
		}
		off := p.Sub(origin)
		entries = append(entries, Entry{
			DX:       int32(off.X()),
			DY:       int32(off.Y()),
			DZ:       int32(off.Z()),
			Snapshot: cell.Serialize(acc.Capture(c)),
		})
		return true
	})
	if err != nil {
		return nil, err
	}

	s := &Schematic{entries: entries}
	if pivot != nil {
		a := *pivot
		s.anchor = &a
	}
	return s, nil
}
