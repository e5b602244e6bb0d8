// Package math provides the float32 vector, rotation and bounds types used by
// spline sampling, resampling and mesh placement.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// SafeNormal returns a unit vector, or the zero vector when v is too short to
// have a meaningful direction.
func (v Vec3) SafeNormal() Vec3 {
	sq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if sq < 1e-8 {
		return Vec3{}
	}
	l := float32(math.Sqrt(float64(sq)))
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp interpolates linearly from v to other.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
		v.Z + t*(other.Z-v.Z),
	}
}

// YZ returns the Y and Z components, the cross-section plane of a mesh
// extruded along X.
func (v Vec3) YZ() Vec2 {
	return Vec2{v.Y, v.Z}
}

// AngleBetween returns the angle in degrees between the directions of a and b.
// Zero-length inputs are treated as perpendicular to everything.
func AngleBetween(a, b Vec3) float32 {
	d := float64(a.SafeNormal().Dot(b.SafeNormal()))
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return float32(math.Acos(d) * 180 / math.Pi)
}
