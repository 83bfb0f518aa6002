package schematic

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorlds(names ...string) *world.Registry {
	r := world.NewRegistry()
	for _, name := range names {
		r.Add(world.NewGrid(name, world.GridOptions{}))
	}
	return r
}

func testSchematic(anchor *world.Location) *Schematic {
	return New([]Entry{
		{DX: 0, DY: 0, DZ: 0, Snapshot: "material=STONE|data=0"},
		{DX: 1, DY: -2, DZ: 3, Snapshot: "material=OAK_SIGN|data=0|lines=YQpiCgo="},
		{DX: -70000, DY: 255, DZ: 70000, Snapshot: "material=AIR|data=0"},
	}, anchor)
}

func TestEncode_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New([]Entry{{DX: 1, DY: -1, DZ: 2, Snapshot: "ab"}}, nil)))

	expected := []byte{
		0, 0, 0, 1, // version
		0,          // no anchor
		0, 0, 0, 1, // count
		0, 0, 0, 1,
		0xff, 0xff, 0xff, 0xff,
		0, 0, 0, 2,
		0, 2, 'a', 'b',
	}
	assert.Equal(t, expected, buf.Bytes())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	worlds := testWorlds("overworld")
	tests := []struct {
		name   string
		anchor *world.Location
	}{
		{name: "without anchor"},
		{name: "with anchor", anchor: &world.Location{World: "overworld", Vec: mgl64.Vec3{10.5, 64, -3.25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSchematic(tt.anchor)
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, s))

			decoded, err := Decode(&buf, worlds)
			require.NoError(t, err)
			assert.Equal(t, s.Entries(), decoded.Entries())

			anchor, ok := decoded.Anchor()
			assert.Equal(t, tt.anchor != nil, ok)
			if tt.anchor != nil {
				assert.Equal(t, *tt.anchor, anchor)
			}
		})
	}
}

func TestDecode_UnknownAnchorWorld(t *testing.T) {
	s := testSchematic(&world.Location{World: "the_end", Vec: mgl64.Vec3{1, 2, 3}})
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, s))
	encoded := buf.Bytes()

	for name, worlds := range map[string]world.Lookup{
		"unknown world": testWorlds("overworld"),
		"nil lookup":    nil,
	} {
		t.Run(name, func(t *testing.T) {
			decoded, err := Decode(bytes.NewReader(encoded), worlds)
			require.NoError(t, err)
			_, ok := decoded.Anchor()
			assert.False(t, ok)
			assert.Equal(t, s.Entries(), decoded.Entries())
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	var valid bytes.Buffer
	require.NoError(t, Encode(&valid, testSchematic(nil)))

	header := func(version int32, count int32) []byte {
		b := binary.BigEndian.AppendUint32(nil, uint32(version))
		b = append(b, 0)
		return binary.BigEndian.AppendUint32(b, uint32(count))
	}

	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{name: "empty", input: nil, expected: ErrCorrupt},
		{name: "short version", input: []byte{0, 0}, expected: ErrCorrupt},
		{name: "version 2", input: header(2, 0), expected: ErrUnsupportedVersion},
		{name: "version 0", input: header(0, 0), expected: ErrUnsupportedVersion},
		{name: "missing count", input: header(FormatVersion, 0)[:5], expected: ErrCorrupt},
		{name: "negative count", input: header(FormatVersion, -1), expected: ErrCorrupt},
		{name: "count beyond data", input: header(FormatVersion, 1<<30), expected: ErrCorrupt},
		{name: "truncated entry", input: valid.Bytes()[:valid.Len()-3], expected: ErrCorrupt},
		{name: "truncated anchor", input: []byte{0, 0, 0, 1, 1, 0, 5, 'w'}, expected: ErrCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(bytes.NewReader(tt.input), nil)
			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, s)
		})
	}
}

func TestDecode_EmptySchematic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New(nil, nil)))
	s, err := Decode(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestEncode_SnapshotTooLong(t *testing.T) {
	s := New([]Entry{{Snapshot: "material=STONE|data=0|x=" + strings.Repeat("A", 70000)}}, nil)
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, s))
}

func TestWriteReadFile(t *testing.T) {
	worlds := testWorlds("overworld")
	s := testSchematic(&world.Location{World: "overworld", Vec: mgl64.Vec3{1, 2, 3}})

	tests := []struct {
		name       string
		file       string
		compressed bool
	}{
		{name: "plain", file: "house" + FileExtension},
		{name: "zstd", file: "house" + FileExtension + CompressedSuffix, compressed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, WriteFile(path, s))
			assert.Equal(t, tt.compressed, IsCompressed(path))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			if tt.compressed {
				assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4])
			} else {
				assert.Equal(t, []byte{0, 0, 0, 1}, raw[:4])
			}

			read, err := ReadFile(path, worlds)
			require.NoError(t, err)
			assert.Equal(t, s.Entries(), read.Entries())
			anchor, ok := read.Anchor()
			require.True(t, ok)
			assert.Equal(t, "overworld", anchor.World)

			// only the final file is left behind
			files, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, files, 1)
		})
	}
}

func TestWriteFile_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a"+FileExtension)
	require.NoError(t, WriteFile(path, testSchematic(nil)))
	require.NoError(t, WriteFile(path, New(nil, nil)))

	s, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing"+FileExtension), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 0}, {1, 1}, {3, 3}, {4, 0}, {-1, 3},
		{90, 1}, {180, 2}, {270, 3}, {360, 0}, {-90, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeRotation(tt.input), "input %d", tt.input)
	}
}

func TestRotateOffset(t *testing.T) {
	off := world.Pos{2, 5, 1}
	assert.Equal(t, world.Pos{2, 5, 1}, RotateOffset(off, 0))
	assert.Equal(t, world.Pos{1, 5, -2}, RotateOffset(off, 1))
	assert.Equal(t, world.Pos{-2, 5, -1}, RotateOffset(off, 2))
	assert.Equal(t, world.Pos{-1, 5, 2}, RotateOffset(off, 3))
	// four quarter turns return to the start
	p := off
	for i := 0; i < 4; i++ {
		p = RotateOffset(p, 1)
	}
	assert.Equal(t, off, p)
}
