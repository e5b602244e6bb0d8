package math

import "math"

// Rotator is an orientation expressed as Euler angles in degrees.
// Pitch turns about Y (positive raises +X towards +Z), Yaw turns about Z
// and Roll turns about X. Roll is applied first, then Pitch, then Yaw.
type Rotator struct {
	Pitch float32 `yaml:"pitch"`
	Yaw   float32 `yaml:"yaw"`
	Roll  float32 `yaml:"roll"`
}

// RotatorFromX returns the rotator that turns the +X axis to face dir.
// Roll is always zero. A zero-length dir gives the zero rotator.
func RotatorFromX(dir Vec3) Rotator {
	d := dir.SafeNormal()
	if d == (Vec3{}) {
		return Rotator{}
	}
	yaw := math.Atan2(float64(d.Y), float64(d.X))
	pitch := math.Atan2(float64(d.Z), math.Sqrt(float64(d.X*d.X+d.Y*d.Y)))
	return Rotator{
		Pitch: float32(pitch * 180 / math.Pi),
		Yaw:   float32(yaw * 180 / math.Pi),
	}
}

// Add returns the component-wise sum of two rotators.
func (r Rotator) Add(other Rotator) Rotator {
	return Rotator{
		Pitch: r.Pitch + other.Pitch,
		Yaw:   r.Yaw + other.Yaw,
		Roll:  r.Roll + other.Roll,
	}
}

// Quat converts the rotator to a quaternion.
func (r Rotator) Quat() Quat {
	roll := QuatFromAxisAngle(Vec3{X: 1}, Radians(r.Roll))
	pitch := QuatFromAxisAngle(Vec3{Y: 1}, -Radians(r.Pitch))
	yaw := QuatFromAxisAngle(Vec3{Z: 1}, Radians(r.Yaw))
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}
