package schematic

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
)

// FormatVersion is the only version Decode accepts.
const FormatVersion int32 = 1

const (
	maxStringLen = math.MaxUint16
	// upper bound on entries preallocated from an untrusted count
	maxPrealloc = 1 << 16
)

var (
	// ErrUnsupportedVersion is returned by Decode for any version other than FormatVersion.
	ErrUnsupportedVersion = errors.New("unsupported schematic format version")
	// ErrCorrupt is returned by Decode for truncated or inconsistent input.
	ErrCorrupt = errors.New("corrupt schematic")
)

var byteOrder = binary.BigEndian

type encoder struct {
	w   *bufio.Writer
	buf [8]byte
	err error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) bool(v bool) {
	if v {
		e.write([]byte{1})
	} else {
		e.write([]byte{0})
	}
}

func (e *encoder) int32(v int32) {
	byteOrder.PutUint32(e.buf[:4], uint32(v))
	e.write(e.buf[:4])
}

func (e *encoder) float64(v float64) {
	byteOrder.PutUint64(e.buf[:8], math.Float64bits(v))
	e.write(e.buf[:8])
}

func (e *encoder) string(s string) {
	if e.err != nil {
		return
	}
	if len(s) > maxStringLen {
		e.err = fmt.Errorf("string of %d bytes exceeds %d byte limit", len(s), maxStringLen)
		return
	}
	byteOrder.PutUint16(e.buf[:2], uint16(len(s)))
	e.write(e.buf[:2])
	if e.err == nil {
		_, e.err = e.w.WriteString(s)
	}
}

// Encode writes s to w in the binary schematic format:
//
//	version:int32 hasAnchor:bool [world:string x:float64 y:float64 z:float64]
//	count:int32 count*(dx:int32 dy:int32 dz:int32 snapshot:string)
//
// All integers are big endian and strings are a uint16 byte length followed
// by UTF-8 bytes. Entries are streamed in order.
func Encode(w io.Writer, s *Schematic) error {
	e := &encoder{w: bufio.NewWriter(w)}
	e.int32(FormatVersion)

	anchor, hasAnchor := s.Anchor()
	e.bool(hasAnchor)
	if hasAnchor {
		e.string(anchor.World)
		e.float64(anchor.Vec[0])
		e.float64(anchor.Vec[1])
		e.float64(anchor.Vec[2])
	}

	if len(s.entries) > math.MaxInt32 {
		return fmt.Errorf("too many entries: %d", len(s.entries))
	}
	e.int32(int32(len(s.entries)))
	for i, entry := range s.entries {
		e.int32(entry.DX)
		e.int32(entry.DY)
		e.int32(entry.DZ)
		e.string(entry.Snapshot)
		if e.err != nil {
			return fmt.Errorf("failed to encode entry %d: %w", i, e.err)
		}
	}
	if e.err != nil {
		return fmt.Errorf("failed to encode schematic: %w", e.err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush schematic: %w", err)
	}
	return nil
}

type decoder struct {
	r   *bufio.Reader
	buf [8]byte
	err error
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	_, d.err = io.ReadFull(d.r, d.buf[:n])
	return d.buf[:n]
}

func (d *decoder) bool() bool {
	return d.read(1)[0] != 0
}

func (d *decoder) int32() int32 {
	return int32(byteOrder.Uint32(d.read(4)))
}

func (d *decoder) float64() float64 {
	return math.Float64frombits(byteOrder.Uint64(d.read(8)))
}

func (d *decoder) string() string {
	n := int(byteOrder.Uint16(d.read(2)))
	if d.err != nil {
		return ""
	}
	b := make([]byte, n)
	_, d.err = io.ReadFull(d.r, b)
	return string(b)
}

// Decode reads a schematic written by Encode. A version other than
// FormatVersion yields ErrUnsupportedVersion. An anchor naming a world that
// worlds does not know decodes to no anchor; worlds may be nil.
func Decode(r io.Reader, worlds world.Lookup) (*Schematic, error) {
	d := &decoder{r: bufio.NewReader(r)}

	version := d.int32()
	if d.err != nil {
		return nil, corrupt("version", d.err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var anchor *world.Location
	if d.bool() {
		name := d.string()
		x, y, z := d.float64(), d.float64(), d.float64()
		if d.err != nil {
			return nil, corrupt("anchor", d.err)
		}
		if worlds != nil {
			if _, ok := worlds.Get(name); ok {
				anchor = &world.Location{World: name, Vec: mgl64.Vec3{x, y, z}}
			}
		}
	}

	count := d.int32()
	if d.err != nil {
		return nil, corrupt("entry count", d.err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrCorrupt, count)
	}

	entries := make([]Entry, 0, min(int(count), maxPrealloc))
	for i := int32(0); i < count; i++ {
		var entry Entry
		entry.DX = d.int32()
		entry.DY = d.int32()
		entry.DZ = d.int32()
		entry.Snapshot = d.string()
		if d.err != nil {
			return nil, corrupt(fmt.Sprintf("entry %d of %d", i, count), d.err)
		}
		entries = append(entries, entry)
	}

	return &Schematic{entries: entries, anchor: anchor}, nil
}

func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrCorrupt, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}
