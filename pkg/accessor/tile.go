package accessor

import (
	"encoding/base64"
	"strings"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

const lineSeparator = "\n"

// captureAux reads the auxiliary payload of the cell's tile state.
func captureAux(c world.Cell) map[string]string {
	switch st := c.State().(type) {
	case *world.SignState:
		return map[string]string{KeyLines: strings.Join(st.Lines[:], lineSeparator)}
	case *world.ContainerState:
		return map[string]string{KeyInventory: base64.StdEncoding.EncodeToString(SerializeInventory(st.Items))}
	case *world.SkullState:
		if st.Owner == "" {
			return nil
		}
		return map[string]string{KeyOwner: st.Owner}
	case *world.SpawnerState:
		return map[string]string{KeySpawner: st.EntityType}
	default:
		return nil
	}
}

// applyAux writes the auxiliary payload into the tile state the cell holds
// now. Fields that do not fit the state or cannot be decoded are skipped.
func applyAux(c world.Cell, s cell.Snapshot) {
	switch st := c.State().(type) {
	case *world.SignState:
		v, ok := s.AuxValue(KeyLines)
		if !ok {
			return
		}
		lines := strings.SplitN(v, lineSeparator, world.SignLines)
		for i := range st.Lines {
			if i < len(lines) {
				st.Lines[i] = lines[i]
			} else {
				st.Lines[i] = ""
			}
		}
	case *world.ContainerState:
		v, ok := s.AuxValue(KeyInventory)
		if !ok {
			return
		}
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			log.Warn("Skipping inventory of %s at %v: %v", c.Type(), c.Pos(), err)
			return
		}
		items, err := DeserializeInventory(raw)
		if err != nil {
			log.Warn("Skipping inventory of %s at %v: %v", c.Type(), c.Pos(), err)
			return
		}
		st.Items = items
	case *world.SkullState:
		// a missing owner clears it here, though NeedsUpdate alone never asks for that
		v, _ := s.AuxValue(KeyOwner)
		st.Owner = v
	case *world.SpawnerState:
		if v, ok := s.AuxValue(KeySpawner); ok {
			st.EntityType = v
		}
	case nil:
		if s.HasAux() {
			log.Trace("Ignoring auxiliary data for %s at %v: no tile state", c.Type(), c.Pos())
		}
	}
}

// auxMatches compares the live payload with the snapshot's, ignoring ignoreKey.
func auxMatches(live map[string]string, s cell.Snapshot, ignoreKey string) bool {
	want := s.Aux()
	delete(want, ignoreKey)
	delete(live, ignoreKey)
	return cell.AuxEqual(live, want)
}
