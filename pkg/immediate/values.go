package immediate

import (
	"math"
	"slices"
)

// Vector2 is a two-component vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three-component vector.
type Vector3 struct {
	X, Y, Z float32
}

// Quaternion is a rotation. QuaternionField edits it as Euler angles.
type Quaternion struct {
	X, Y, Z, W float32
}

// IdentityQuaternion is the rotation that does nothing.
var IdentityQuaternion = Quaternion{W: 1}

// QuaternionFromEuler builds a rotation from angles in degrees, applied
// around Z, then X, then Y.
func QuaternionFromEuler(x, y, z float32) Quaternion {
	const half = math.Pi / 360
	sx, cx := math.Sincos(float64(x) * half)
	sy, cy := math.Sincos(float64(y) * half)
	sz, cz := math.Sincos(float64(z) * half)
	return Quaternion{
		X: float32(cy*sx*cz + sy*cx*sz),
		Y: float32(sy*cx*cz - cy*sx*sz),
		Z: float32(cy*cx*sz - sy*sx*cz),
		W: float32(cy*cx*cz + sy*sx*sz),
	}
}

// Euler returns the rotation as angles in degrees in [0, 360), using the
// axis order of QuaternionFromEuler.
func (q Quaternion) Euler() Vector3 {
	x, y, z, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)
	if n := math.Sqrt(x*x + y*y + z*z + w*w); n > 0 {
		x, y, z, w = x/n, y/n, z/n, w/n
	}
	var ex, ey, ez float64
	sinX := 2 * (w*x - y*z)
	if math.Abs(sinX) >= 0.9999 {
		// Gimbal lock: fold the Z rotation into Y.
		ex = math.Copysign(math.Pi/2, sinX)
		ey = 2 * math.Atan2(y, w)
	} else {
		ex = math.Asin(sinX)
		ey = math.Atan2(2*(w*y+x*z), 1-2*(x*x+y*y))
		ez = math.Atan2(2*(w*z+x*y), 1-2*(x*x+z*z))
	}
	return Vector3{X: degrees(ex), Y: degrees(ey), Z: degrees(ez)}
}

func degrees(rad float64) float32 {
	d := math.Mod(rad*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return float32(d)
}

// EnumString is a list of choices and the selected index.
type EnumString struct {
	Names    []string
	Selected int
}

// Choices returns an EnumString selecting nothing.
func Choices(names ...string) EnumString {
	return EnumString{Names: names, Selected: -1}
}

// SelectedName returns the selected name, or "" when the selection is out
// of range.
func (e EnumString) SelectedName() string {
	if e.Selected < 0 || e.Selected >= len(e.Names) {
		return ""
	}
	return e.Names[e.Selected]
}

func (e EnumString) clone() EnumString {
	e.Names = slices.Clone(e.Names)
	return e
}
