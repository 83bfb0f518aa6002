package world

import "strings"

type TileKind int

const (
	TileKindNone TileKind = iota
	TileKindSign
	TileKindContainer
	TileKindSkull
	TileKindSpawner
)

func (k TileKind) String() string {
	switch k {
	case TileKindSign:
		return "sign"
	case TileKindContainer:
		return "container"
	case TileKindSkull:
		return "skull"
	case TileKindSpawner:
		return "spawner"
	default:
		return "none"
	}
}

// TileState is the structural payload attached to a cell.
type TileState interface {
	Kind() TileKind
}

const SignLines = 4

type SignState struct {
	Lines [SignLines]string
}

func (*SignState) Kind() TileKind { return TileKindSign }

type ItemStack struct {
	Slot  int32
	Type  string
	Count int32
}

type ContainerState struct {
	Items []ItemStack
}

func (*ContainerState) Kind() TileKind { return TileKindContainer }

type SkullState struct {
	Owner string
}

func (*SkullState) Kind() TileKind { return TileKindSkull }

type SpawnerState struct {
	EntityType string
}

func (*SpawnerState) Kind() TileKind { return TileKindSpawner }

var containerTypes = map[string]struct{}{
	"CHEST":         {},
	"TRAPPED_CHEST": {},
	"BARREL":        {},
	"FURNACE":       {},
	"BLAST_FURNACE": {},
	"SMOKER":        {},
	"DISPENSER":     {},
	"DROPPER":       {},
	"HOPPER":        {},
}

// TileKindOf returns the kind of tile state a cell of the given type carries.
func TileKindOf(typ string) TileKind {
	switch {
	case typ == "SIGN" || strings.HasSuffix(typ, "_SIGN") || strings.HasSuffix(typ, "SIGN_POST"):
		return TileKindSign
	case typ == "SKULL" || strings.HasSuffix(typ, "_SKULL") || strings.HasSuffix(typ, "_HEAD"):
		return TileKindSkull
	case typ == "SPAWNER" || typ == "MOB_SPAWNER":
		return TileKindSpawner
	case strings.HasSuffix(typ, "SHULKER_BOX"):
		return TileKindContainer
	}
	if _, ok := containerTypes[typ]; ok {
		return TileKindContainer
	}
	return TileKindNone
}

// NewTileState returns an empty state of the given kind, or nil for TileKindNone.
func NewTileState(kind TileKind) TileState {
	switch kind {
	case TileKindSign:
		return &SignState{}
	case TileKindContainer:
		return &ContainerState{}
	case TileKindSkull:
		return &SkullState{}
	case TileKindSpawner:
		return &SpawnerState{EntityType: "PIG"}
	default:
		return nil
	}
}
