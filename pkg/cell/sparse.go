package cell

import "sort"

// DefaultSparseTypes are the types skipped by a paste that skips sparse cells.
var DefaultSparseTypes = []string{AirType, "CAVE_AIR", "VOID_AIR"}

// SparseSet is a set of type IDs treated as empty content.
type SparseSet map[string]struct{}

func NewSparseSet(types ...string) SparseSet {
	s := make(SparseSet, len(types))
	for _, t := range types {
		s[NormalizeType(t)] = struct{}{}
	}
	return s
}

func DefaultSparseSet() SparseSet {
	return NewSparseSet(DefaultSparseTypes...)
}

func (s SparseSet) Contains(typeID string) bool {
	_, ok := s[NormalizeType(typeID)]
	return ok
}

// IsSparse reports whether the snapshot's type is in the set.
func (s SparseSet) IsSparse(snapshot Snapshot) bool {
	return s.Contains(snapshot.TypeID())
}

// Types returns the members in sorted order.
func (s SparseSet) Types() []string {
	types := make([]string, 0, len(s))
	for t := range s {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
