package accessor

import (
	"encoding/base64"
	"testing"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCell(t *testing.T, w world.World, p world.Pos) world.Cell {
	t.Helper()
	c, err := w.Cell(p)
	require.NoError(t, err)
	return c
}

// populate fills a row of cells with one of each kind of content.
func populate(t *testing.T, w *world.Grid) []world.Cell {
	t.Helper()
	var cells []world.Cell

	stone := mustCell(t, w, world.Pos{0, 0, 0})
	require.NoError(t, stone.SetType("STONE"))
	cells = append(cells, stone)

	wool := mustCell(t, w, world.Pos{1, 0, 0})
	require.NoError(t, wool.SetType("WOOL"))
	require.NoError(t, wool.SetData(14))
	cells = append(cells, wool)

	sign := mustCell(t, w, world.Pos{2, 0, 0})
	require.NoError(t, sign.SetType("OAK_SIGN"))
	sign.State().(*world.SignState).Lines = [world.SignLines]string{"Welcome", "to", "", "spawn"}
	cells = append(cells, sign)

	chest := mustCell(t, w, world.Pos{3, 0, 0})
	require.NoError(t, chest.SetType("CHEST"))
	chest.State().(*world.ContainerState).Items = []world.ItemStack{
		{Slot: 0, Type: "DIAMOND", Count: 64},
		{Slot: 13, Type: "OAK_LOG", Count: 1},
	}
	cells = append(cells, chest)

	emptyChest := mustCell(t, w, world.Pos{4, 0, 0})
	require.NoError(t, emptyChest.SetType("BARREL"))
	cells = append(cells, emptyChest)

	skull := mustCell(t, w, world.Pos{5, 0, 0})
	require.NoError(t, skull.SetType("PLAYER_HEAD"))
	skull.State().(*world.SkullState).Owner = "notch"
	cells = append(cells, skull)

	spawner := mustCell(t, w, world.Pos{6, 0, 0})
	require.NoError(t, spawner.SetType("SPAWNER"))
	spawner.State().(*world.SpawnerState).EntityType = "ZOMBIE"
	cells = append(cells, spawner)

	cells = append(cells, mustCell(t, w, world.Pos{7, 0, 0}))

	if tc, ok := mustCell(t, w, world.Pos{8, 0, 0}).(world.TypedCell); ok {
		require.NoError(t, tc.SetBlockData("minecraft:oak_stairs[facing=east,half=top]"))
		cells = append(cells, tc)
	}
	return cells
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{input: "", want: VariantAuto},
		{input: "auto", want: VariantAuto},
		{input: "legacy", want: VariantLegacy},
		{input: "modern", want: VariantModern},
		{input: "reflective", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVariant(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbe(t *testing.T) {
	legacy := world.NewGrid("legacy", world.GridOptions{})
	typed := world.NewGrid("typed", world.GridOptions{Typed: true})

	assert.Equal(t, VariantLegacy, Probe())
	assert.Equal(t, VariantLegacy, Probe(legacy))
	assert.Equal(t, VariantModern, Probe(typed))
	assert.Equal(t, VariantLegacy, Probe(typed, legacy))
}

func TestSelect(t *testing.T) {
	typed := world.NewGrid("typed", world.GridOptions{Typed: true})

	acc, v, err := Select(VariantAuto, typed)
	require.NoError(t, err)
	assert.Equal(t, VariantModern, v)
	assert.IsType(t, &Modern{}, acc)

	acc, v, err = Select(VariantLegacy, typed)
	require.NoError(t, err)
	assert.Equal(t, VariantLegacy, v)
	assert.IsType(t, &Legacy{}, acc)

	_, err = New(VariantAuto)
	assert.Error(t, err)
}

func TestAccessor_CaptureThenNeedsUpdate(t *testing.T) {
	tests := []struct {
		name     string
		accessor Accessor
		typed    bool
	}{
		{name: "legacy", accessor: NewLegacy()},
		{name: "modern typed world", accessor: NewModern(), typed: true},
		{name: "modern legacy world", accessor: NewModern()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.NewGrid("world", world.GridOptions{Typed: tt.typed})
			for _, c := range populate(t, w) {
				s := tt.accessor.Capture(c)
				assert.False(t, tt.accessor.NeedsUpdate(c, s), "cell %s at %v", c.Type(), c.Pos())
				assert.True(t, cell.Parse(cell.Serialize(s)).Equal(s))
			}
		})
	}
}

func TestAccessor_CopyCells(t *testing.T) {
	tests := []struct {
		name     string
		accessor Accessor
		typed    bool
	}{
		{name: "legacy", accessor: NewLegacy()},
		{name: "modern", accessor: NewModern(), typed: true},
		{name: "modern legacy world", accessor: NewModern()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := world.NewGrid("src", world.GridOptions{Typed: tt.typed})
			dst := world.NewGrid("dst", world.GridOptions{Typed: tt.typed})
			for _, c := range populate(t, src) {
				s := tt.accessor.Capture(c)
				target := mustCell(t, dst, c.Pos())

				wantUpdate := !s.Equal(cell.Air()) && !(tt.typed && c.Type() == world.AirType)
				assert.Equal(t, wantUpdate, tt.accessor.NeedsUpdate(target, s), "cell %s", c.Type())

				require.NoError(t, tt.accessor.Apply(target, s))
				assert.False(t, tt.accessor.NeedsUpdate(target, s), "cell %s", c.Type())
				assert.True(t, tt.accessor.Capture(target).Equal(s), "cell %s", c.Type())
			}

			sign := mustCell(t, dst, world.Pos{2, 0, 0})
			assert.Equal(t, "Welcome", sign.State().(*world.SignState).Lines[0])
			assert.Equal(t, "spawn", sign.State().(*world.SignState).Lines[3])
			chest := mustCell(t, dst, world.Pos{3, 0, 0})
			assert.Len(t, chest.State().(*world.ContainerState).Items, 2)
		})
	}
}

func TestAccessor_ApplyReplacesTileState(t *testing.T) {
	w := world.NewGrid("world", world.GridOptions{})
	c := mustCell(t, w, world.Pos{0, 0, 0})
	require.NoError(t, c.SetType("CHEST"))

	acc := NewLegacy()
	s := cell.New("OAK_SIGN", 0, map[string]string{KeyLines: "a\nb"})
	require.NoError(t, acc.Apply(c, s))

	sign, ok := c.State().(*world.SignState)
	require.True(t, ok)
	assert.Equal(t, [world.SignLines]string{"a", "b", "", ""}, sign.Lines)
}

func TestAccessor_ApplySkipsCorruptInventory(t *testing.T) {
	tests := []struct {
		name      string
		inventory string
	}{
		{name: "not base64", inventory: "%%%"},
		{name: "short buffer", inventory: base64.StdEncoding.EncodeToString([]byte{1, 2})},
		{name: "root out of range", inventory: base64.StdEncoding.EncodeToString([]byte{200, 0, 0, 0, 0, 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.NewGrid("world", world.GridOptions{})
			c := mustCell(t, w, world.Pos{0, 0, 0})

			s := cell.New("CHEST", 0, map[string]string{KeyInventory: tt.inventory})
			require.NoError(t, NewLegacy().Apply(c, s))
			assert.Equal(t, "CHEST", c.Type())
			assert.Empty(t, c.State().(*world.ContainerState).Items)
		})
	}
}

func TestAccessor_ApplyIgnoresMismatchedPayload(t *testing.T) {
	w := world.NewGrid("world", world.GridOptions{})
	c := mustCell(t, w, world.Pos{0, 0, 0})

	s := cell.New("STONE", 0, map[string]string{KeyLines: "orphaned"})
	require.NoError(t, NewLegacy().Apply(c, s))
	assert.Equal(t, "STONE", c.Type())
	assert.Nil(t, c.State())
}

func TestModern_ApplyInvalidBlockData(t *testing.T) {
	w := world.NewGrid("world", world.GridOptions{Typed: true})
	c := mustCell(t, w, world.Pos{0, 0, 0})

	s := cell.New("OAK_STAIRS", 0, map[string]string{KeyBlockData: "minecraft:oak_stairs[facing"})
	assert.Error(t, NewModern().Apply(c, s))
	assert.Equal(t, world.AirType, c.Type())
}

func TestModern_NeedsUpdateIgnoresBlockDataInPayloadCompare(t *testing.T) {
	w := world.NewGrid("world", world.GridOptions{Typed: true})
	c := mustCell(t, w, world.Pos{0, 0, 0}).(world.TypedCell)
	require.NoError(t, c.SetBlockData("minecraft:player_head[rotation=4]"))
	c.State().(*world.SkullState).Owner = "alex"

	acc := NewModern()
	s := acc.Capture(c)
	assert.False(t, acc.NeedsUpdate(c, s))

	// different properties are caught by the state comparison
	assert.True(t, acc.NeedsUpdate(c, s.WithAux(KeyBlockData, "minecraft:player_head[rotation=8]")))
	// different owner is caught by the payload comparison
	assert.True(t, acc.NeedsUpdate(c, s.WithAux(KeyOwner, "steve")))
}

func TestLegacy_NeedsUpdate(t *testing.T) {
	w := world.NewGrid("world", world.GridOptions{})
	c := mustCell(t, w, world.Pos{0, 0, 0})
	require.NoError(t, c.SetType("PLAYER_HEAD"))
	c.State().(*world.SkullState).Owner = "alex"

	tests := []struct {
		name     string
		snapshot cell.Snapshot
		want     bool
	}{
		{name: "same", snapshot: cell.New("PLAYER_HEAD", 0, map[string]string{KeyOwner: "alex"}), want: false},
		{name: "no payload skips capture", snapshot: cell.New("PLAYER_HEAD", 0, nil), want: false},
		{name: "other type", snapshot: cell.New("STONE", 0, nil), want: true},
		{name: "other variant", snapshot: cell.New("PLAYER_HEAD", 3, nil), want: true},
		{name: "other owner", snapshot: cell.New("PLAYER_HEAD", 0, map[string]string{KeyOwner: "steve"}), want: true},
		{name: "typed state ignored", snapshot: cell.New("PLAYER_HEAD", 0, map[string]string{KeyOwner: "alex", KeyBlockData: "minecraft:player_head"}), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLegacy().NeedsUpdate(c, tt.snapshot))
		})
	}
}

func TestModern_LegacyWorldKeepsVariant(t *testing.T) {
	w := world.NewGrid("world", world.GridOptions{})
	c := mustCell(t, w, world.Pos{0, 0, 0})
	acc := NewModern()

	s := cell.Parse("material=WOOL|data=14")
	assert.True(t, acc.NeedsUpdate(c, s))
	require.NoError(t, acc.Apply(c, s))
	assert.Equal(t, "WOOL", c.Type())
	assert.Equal(t, int8(14), c.Data())
	assert.False(t, acc.NeedsUpdate(c, s))

	assert.True(t, acc.NeedsUpdate(c, cell.New("WOOL", 3, nil)))
}

func TestAccessor_LowerCaseTypeSettles(t *testing.T) {
	tests := []struct {
		name     string
		accessor Accessor
		typed    bool
	}{
		{name: "legacy", accessor: NewLegacy()},
		{name: "modern typed world", accessor: NewModern(), typed: true},
		{name: "modern legacy world", accessor: NewModern()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.NewGrid("world", world.GridOptions{Typed: tt.typed})
			c := mustCell(t, w, world.Pos{0, 0, 0})

			s := cell.Parse("material=stone|data=0")
			assert.True(t, tt.accessor.NeedsUpdate(c, s))
			require.NoError(t, tt.accessor.Apply(c, s))
			assert.Equal(t, "STONE", c.Type())
			for i := 0; i < 3; i++ {
				assert.False(t, tt.accessor.NeedsUpdate(c, s), "round %d", i)
			}
		})
	}
}

func TestInventoryRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		items []world.ItemStack
	}{
		{name: "empty", items: []world.ItemStack{}},
		{name: "single", items: []world.ItemStack{{Slot: 4, Type: "BREAD", Count: 12}}},
		{
			name: "several",
			items: []world.ItemStack{
				{Slot: 0, Type: "DIAMOND_SWORD", Count: 1},
				{Slot: 1, Type: "", Count: 0},
				{Slot: 26, Type: "COBBLESTONE", Count: 64},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeserializeInventory(SerializeInventory(tt.items))
			require.NoError(t, err)
			assert.Equal(t, tt.items, got)
		})
	}
}
