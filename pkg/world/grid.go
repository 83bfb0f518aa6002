package world

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// ChunkSize is the width of a chunk column along x and z.
	ChunkSize = 16

	DefaultMinY = 0
	DefaultMaxY = 255

	blockDataNamespace = "minecraft"
)

type ChunkPos [2]int

// GridOptions contains options for creating a new Grid.
type GridOptions struct {
	// Typed selects typed state strings instead of numeric sub-types.
	Typed bool
	MinY  int
	MaxY  int
}

// Grid is an in-memory chunked world. Chunks are allocated on first write and
// only non-air cells are stored. A Grid is not safe for concurrent use.
type Grid struct {
	name   string
	typed  bool
	minY   int
	maxY   int
	chunks map[ChunkPos]*chunk
}

type chunk struct {
	blocks map[int]*block
}

type block struct {
	typ   string
	data  int8
	props string
	state TileState
}

func (b *block) empty() bool {
	return b.typ == AirType && b.data == 0 && b.props == "" && b.state == nil
}

func NewGrid(name string, opts GridOptions) *Grid {
	minY, maxY := opts.MinY, opts.MaxY
	if minY == 0 && maxY == 0 {
		minY, maxY = DefaultMinY, DefaultMaxY
	}
	return &Grid{
		name:   name,
		typed:  opts.Typed,
		minY:   minY,
		maxY:   maxY,
		chunks: make(map[ChunkPos]*chunk),
	}
}

func (g *Grid) Name() string {
	return g.name
}

func (g *Grid) SupportsTypedState() bool {
	return g.typed
}

// Cell returns a handle on the cell at p. The handle stays valid for the life of
// the grid and always reflects the current contents of the cell.
func (g *Grid) Cell(p Pos) (Cell, error) {
	if p.Y() < g.minY || p.Y() > g.maxY {
		return nil, fmt.Errorf("%w: y=%d not in [%d, %d]", ErrOutOfBounds, p.Y(), g.minY, g.maxY)
	}
	c := &gridCell{grid: g, pos: p}
	if g.typed {
		return &typedGridCell{gridCell: c}, nil
	}
	return c, nil
}

// ChunkCount returns the number of allocated chunks.
func (g *Grid) ChunkCount() int {
	return len(g.chunks)
}

func chunkPosOf(p Pos) ChunkPos {
	return ChunkPos{floorDiv(p.X(), ChunkSize), floorDiv(p.Z(), ChunkSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (g *Grid) index(p Pos) int {
	lx := p.X() - floorDiv(p.X(), ChunkSize)*ChunkSize
	lz := p.Z() - floorDiv(p.Z(), ChunkSize)*ChunkSize
	return ((p.Y()-g.minY)*ChunkSize+lz)*ChunkSize + lx
}

func (g *Grid) block(p Pos) *block {
	c, ok := g.chunks[chunkPosOf(p)]
	if !ok {
		return nil
	}
	return c.blocks[g.index(p)]
}

func (g *Grid) ensure(p Pos) *block {
	cp := chunkPosOf(p)
	c, ok := g.chunks[cp]
	if !ok {
		c = &chunk{blocks: make(map[int]*block)}
		g.chunks[cp] = c
	}
	i := g.index(p)
	b, ok := c.blocks[i]
	if !ok {
		b = &block{typ: AirType}
		c.blocks[i] = b
	}
	return b
}

func (g *Grid) compact(p Pos) {
	cp := chunkPosOf(p)
	c, ok := g.chunks[cp]
	if !ok {
		return
	}
	i := g.index(p)
	if b, ok := c.blocks[i]; ok && b.empty() {
		delete(c.blocks, i)
	}
	if len(c.blocks) == 0 {
		delete(g.chunks, cp)
	}
}

type gridCell struct {
	grid *Grid
	pos  Pos
}

func (c *gridCell) Pos() Pos {
	return c.pos
}

func (c *gridCell) Type() string {
	b := c.grid.block(c.pos)
	if b == nil {
		return AirType
	}
	return b.typ
}

func (c *gridCell) SetType(typ string) error {
	typ = strings.ToUpper(strings.TrimSpace(typ))
	if typ == "" {
		typ = AirType
	}
	b := c.grid.ensure(c.pos)
	if b.typ != typ {
		b.typ = typ
		b.data = 0
		b.props = ""
		b.state = NewTileState(TileKindOf(typ))
	}
	c.grid.compact(c.pos)
	return nil
}

func (c *gridCell) Data() int8 {
	b := c.grid.block(c.pos)
	if b == nil {
		return 0
	}
	return b.data
}

func (c *gridCell) SetData(data int8) error {
	b := c.grid.ensure(c.pos)
	b.data = data
	c.grid.compact(c.pos)
	return nil
}

func (c *gridCell) State() TileState {
	b := c.grid.block(c.pos)
	if b == nil {
		return nil
	}
	return b.state
}

type typedGridCell struct {
	*gridCell
}

func (c *typedGridCell) BlockData() string {
	b := c.grid.block(c.pos)
	if b == nil {
		return FormatBlockData(AirType, "")
	}
	return FormatBlockData(b.typ, b.props)
}

func (c *typedGridCell) SetBlockData(data string) error {
	typ, props, err := ParseBlockData(data)
	if err != nil {
		return err
	}
	b := c.grid.ensure(c.pos)
	if b.typ != typ {
		b.typ = typ
		b.data = 0
		b.state = NewTileState(TileKindOf(typ))
	}
	b.props = props
	c.grid.compact(c.pos)
	return nil
}

// FormatBlockData renders a type and canonical property list as a typed state string.
func FormatBlockData(typ, props string) string {
	s := blockDataNamespace + ":" + strings.ToLower(typ)
	if props != "" {
		s += "[" + props + "]"
	}
	return s
}

// ParseBlockData splits a typed state string into its upper case type and a
// canonical, sorted property list. The namespace prefix is optional.
func ParseBlockData(data string) (string, string, error) {
	data = strings.TrimSpace(data)
	name, rest, hasProps := strings.Cut(data, "[")
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid block data %q: missing type", data)
	}
	typ := strings.ToUpper(name)
	if !hasProps {
		return typ, "", nil
	}
	if !strings.HasSuffix(rest, "]") {
		return "", "", fmt.Errorf("invalid block data %q: unterminated properties", data)
	}
	rest = strings.TrimSuffix(rest, "]")
	if rest == "" {
		return typ, "", nil
	}
	parts := strings.Split(rest, ",")
	for i, part := range parts {
		k, v, ok := strings.Cut(part, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return "", "", fmt.Errorf("invalid block data %q: bad property %q", data, part)
		}
		parts[i] = k + "=" + v
	}
	sort.Strings(parts)
	return typ, strings.Join(parts, ","), nil
}
