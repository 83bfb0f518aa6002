package schematic

import "github.com/cbodonnell/stoneworks/pkg/world"

// NormalizeRotation converts a rotation into a quarter-turn count in [0,3].
// Values that are multiples of 90 outside [-3,3] are read as degrees.
func NormalizeRotation(r int) int {
	if r%90 == 0 && (r > 3 || r < -3) {
		r = r / 90
	}
	r %= 4
	if r < 0 {
		r += 4
	}
	return r
}

// RotateXZ rotates an (x,z) offset clockwise around the Y axis by rot quarter turns.
func RotateXZ(x, z, rot int) (rx, rz int) {
	switch rot & 3 {
	case 0:
		return x, z
	case 1:
		return z, -x
	case 2:
		return -x, -z
	default:
		return -z, x
	}
}

func RotateOffset(off world.Pos, rot int) world.Pos {
	rx, rz := RotateXZ(off.X(), off.Z(), rot)
	return world.Pos{rx, off.Y(), rz}
}
