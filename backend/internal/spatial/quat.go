package spatial

import "math"

// Quat is a unit quaternion (w, x, y, z) representing a 3-D rotation.
type Quat struct {
	W, X, Y, Z float64
}

// QuatID is the identity rotation.
var QuatID = Quat{W: 1}

// QuatFromAxisAngle builds a unit quaternion from an axis-angle vector v,
// where the half-angle is |v|/2 and the axis is the unit direction of v.
// A zero vector maps to the identity quaternion, matching the spec's
// explicit boundary case rather than raising a DomainError.
func QuatFromAxisAngle(v Vec3) Quat {
	angle := v.Norm()
	if angle == 0 {
		return QuatID
	}
	half := angle / 2
	s := math.Sin(half) / angle
	return Quat{
		W: math.Cos(half),
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// QuatFromRaw builds a quaternion from an unnormalized 4-tuple, then
// normalizes it. It returns a DomainError if the tuple has zero norm.
func QuatFromRaw(w, x, y, z float64) (Quat, error) {
	q := Quat{W: w, X: x, Y: y, Z: z}
	return q.Normalize()
}

func (q Quat) NormSqr() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// IsNormalized reports whether |q|^2 is within 1e-3 of 1.
func (q Quat) IsNormalized() bool {
	return math.Abs(q.NormSqr()-1) < 1e-3
}

// Normalize returns a unit quaternion, or a DomainError if q has zero norm.
func (q Quat) Normalize() (Quat, error) {
	n := math.Sqrt(q.NormSqr())
	if n == 0 {
		return Quat{}, &DomainError{Op: "Quat.Normalize", Reason: "zero-length quaternion"}
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}, nil
}

// Mul is the standard Hamilton product q*r (apply r, then q).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// ToMat3 returns the rotation matrix for a (near-)unit quaternion.
func (q Quat) ToMat3() Mat3 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return Mat3{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

// Apply rotates v by the quaternion's rotation matrix.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}
