package math

// AABB is an axis-aligned bounding box in an object's local space.
type AABB struct {
	Min Vec3 `yaml:"min"`
	Max Vec3 `yaml:"max"`
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
