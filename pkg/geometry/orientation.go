package geometry

import "github.com/go-gl/mathgl/mgl64"

// Orientation is the rotation of a scene object relative to world space.
// The zero value is the identity rotation.
type Orientation struct {
	q   mgl64.Quat
	set bool
}

// IdentityOrientation returns the rotation that leaves vectors unchanged
func IdentityOrientation() Orientation {
	return Orientation{}
}

// NewOrientation builds an orientation from quaternion components.
// Non-unit input is normalized; a zero quaternion yields the identity.
func NewOrientation(w, x, y, z float64) Orientation {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	if q.Len() == 0 {
		return Orientation{}
	}
	return Orientation{q: q.Normalize(), set: true}
}

// AxisAngle returns a rotation of angle radians about axis
func AxisAngle(axis Vector3, angle float64) Orientation {
	if axis.IsZero() {
		return Orientation{}
	}
	n := axis.Normalize()
	return Orientation{q: mgl64.QuatRotate(angle, mgl64.Vec3{n.X, n.Y, n.Z}), set: true}
}

func (o Orientation) quat() mgl64.Quat {
	if !o.set {
		return mgl64.QuatIdent()
	}
	return o.q
}

// Quat returns the components as w, x, y, z
func (o Orientation) Quat() (w, x, y, z float64) {
	q := o.quat()
	return q.W, q.V[0], q.V[1], q.V[2]
}

// Rotate applies the orientation to v
func (o Orientation) Rotate(v Vector3) Vector3 {
	if !o.set {
		return v
	}
	r := o.q.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// Inverse returns the opposite rotation
func (o Orientation) Inverse() Orientation {
	if !o.set {
		return o
	}
	return Orientation{q: o.q.Inverse(), set: true}
}
