package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pos is an integer block position.
type Pos [3]int

func (p Pos) X() int { return p[0] }
func (p Pos) Y() int { return p[1] }
func (p Pos) Z() int { return p[2] }

// Add returns p offset by o.
func (p Pos) Add(o Pos) Pos {
	return Pos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Sub returns the offset from o to p.
func (p Pos) Sub(o Pos) Pos {
	return Pos{p[0] - o[0], p[1] - o[1], p[2] - o[2]}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p[0], p[1], p[2])
}

// Vec returns the position of the minimum corner of the block.
func (p Pos) Vec() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// PosFromVec floors a vector to the block that contains it.
func PosFromVec(v mgl64.Vec3) Pos {
	return Pos{int(math.Floor(v[0])), int(math.Floor(v[1])), int(math.Floor(v[2]))}
}

// BlockLocation identifies one cell: a world name plus a block position.
type BlockLocation struct {
	World string `json:"world"`
	Pos   Pos    `json:"pos"`
}

func (l BlockLocation) Add(o Pos) BlockLocation {
	return BlockLocation{World: l.World, Pos: l.Pos.Add(o)}
}

func (l BlockLocation) String() string {
	return fmt.Sprintf("%s%s", l.World, l.Pos)
}

// Location returns the location of the block's minimum corner.
func (l BlockLocation) Location() Location {
	return Location{World: l.World, Vec: l.Pos.Vec()}
}

// Location is an absolute position inside a named world.
type Location struct {
	World string     `json:"world"`
	Vec   mgl64.Vec3 `json:"vec"`
}

// Block returns the block that contains l.
func (l Location) Block() BlockLocation {
	return BlockLocation{World: l.World, Pos: PosFromVec(l.Vec)}
}

func (l Location) String() string {
	return fmt.Sprintf("%s(%g, %g, %g)", l.World, l.Vec[0], l.Vec[1], l.Vec[2])
}

// Box is an axis aligned cuboid with inclusive corners, Min <= Max on every axis.
type Box struct {
	Min Pos
	Max Pos
}

// NewBox normalizes two arbitrary corners into a Box.
func NewBox(a, b Pos) Box {
	var box Box
	for i := 0; i < 3; i++ {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// Size returns the number of cells along each axis.
func (b Box) Size() Pos {
	return Pos{b.Max[0] - b.Min[0] + 1, b.Max[1] - b.Min[1] + 1, b.Max[2] - b.Min[2] + 1}
}

// Volume returns the number of cells in the box.
func (b Box) Volume() int {
	s := b.Size()
	return s[0] * s[1] * s[2]
}

func (b Box) Contains(p Pos) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing b and p.
func (b Box) Union(p Pos) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Range calls f for every position in the box, x outermost then y then z,
// each ascending. Iteration stops when f returns false.
func (b Box) Range(f func(p Pos) bool) {
	for x := b.Min[0]; x <= b.Max[0]; x++ {
		for y := b.Min[1]; y <= b.Max[1]; y++ {
			for z := b.Min[2]; z <= b.Max[2]; z++ {
				if !f(Pos{x, y, z}) {
					return
				}
			}
		}
	}
}
