package cell

import (
	"sort"
	"strings"
)

// AirType is the type of an empty cell. A snapshot never has an empty type.
const AirType = "AIR"

// Snapshot is the immutable captured state of one cell: a type, a legacy
// numeric sub-type and opaque auxiliary payloads keyed by name.
type Snapshot struct {
	typeID        string
	legacyVariant int8
	aux           map[string]string
}

// NormalizeType returns the canonical form of a type ID: trimmed and upper
// case, with an empty type becoming AirType. Live cells store types this way.
func NormalizeType(typeID string) string {
	typeID = strings.ToUpper(strings.TrimSpace(typeID))
	if typeID == "" {
		return AirType
	}
	return typeID
}

// New returns a snapshot holding a copy of aux. The type is normalized with
// NormalizeType.
func New(typeID string, legacyVariant int8, aux map[string]string) Snapshot {
	return Snapshot{
		typeID:        NormalizeType(typeID),
		legacyVariant: legacyVariant,
		aux:           copyAux(aux),
	}
}

// Air returns the snapshot of an empty cell.
func Air() Snapshot {
	return Snapshot{typeID: AirType}
}

func (s Snapshot) TypeID() string {
	if s.typeID == "" {
		return AirType
	}
	return s.typeID
}

func (s Snapshot) LegacyVariant() int8 {
	return s.legacyVariant
}

// Aux returns a copy of the auxiliary payloads.
func (s Snapshot) Aux() map[string]string {
	return copyAux(s.aux)
}

// AuxValue returns a single auxiliary payload.
func (s Snapshot) AuxValue(key string) (string, bool) {
	v, ok := s.aux[key]
	return v, ok
}

// HasAux reports whether the snapshot carries any auxiliary payload.
func (s Snapshot) HasAux() bool {
	return len(s.aux) > 0
}

// AuxKeys returns the auxiliary keys in sorted order.
func (s Snapshot) AuxKeys() []string {
	keys := make([]string, 0, len(s.aux))
	for k := range s.aux {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithAux returns a copy of s with key set to value.
func (s Snapshot) WithAux(key, value string) Snapshot {
	aux := copyAux(s.aux)
	if aux == nil {
		aux = make(map[string]string, 1)
	}
	aux[key] = value
	return Snapshot{typeID: s.TypeID(), legacyVariant: s.legacyVariant, aux: aux}
}

// WithoutAux returns a copy of s without key.
func (s Snapshot) WithoutAux(key string) Snapshot {
	aux := copyAux(s.aux)
	delete(aux, key)
	return Snapshot{typeID: s.TypeID(), legacyVariant: s.legacyVariant, aux: aux}
}

// Equal compares type, legacy variant and auxiliary payloads. A nil and an
// empty auxiliary map are equal.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.TypeID() != o.TypeID() || s.legacyVariant != o.legacyVariant {
		return false
	}
	return AuxEqual(s.aux, o.aux)
}

func (s Snapshot) String() string {
	return Serialize(s)
}

// AuxEqual compares two auxiliary maps, treating nil and empty as equal.
func AuxEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func copyAux(aux map[string]string) map[string]string {
	if len(aux) == 0 {
		return nil
	}
	c := make(map[string]string, len(aux))
	for k, v := range aux {
		c[k] = v
	}
	return c
}
