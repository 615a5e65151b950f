// Package collision provides the static level collider and the capsule
// queries the player controller runs against it.
package collision

import "github.com/Faultbox/folio3d/pkg/math"

// Capsule is a segment swept by a sphere of Radius.
type Capsule struct {
	Start  math.Vec3
	End    math.Vec3
	Radius float32
}

// NewCapsule builds an upright capsule whose base point sits at feet.
// Start is lifted by the radius and End by height, so a height equal to the
// radius yields a sphere resting on feet.
func NewCapsule(feet math.Vec3, radius, height float32) Capsule {
	return Capsule{
		Start:  feet.Add(math.Vec3{Y: radius}),
		End:    feet.Add(math.Vec3{Y: height}),
		Radius: radius,
	}
}

// Translate moves the capsule by offset.
func (c *Capsule) Translate(offset math.Vec3) {
	c.Start = c.Start.Add(offset)
	c.End = c.End.Add(offset)
}

// Center returns the midpoint of the capsule segment.
func (c Capsule) Center() math.Vec3 {
	return c.Start.Add(c.End).Scale(0.5)
}

// Segment returns the capsule core segment.
func (c Capsule) Segment() math.Segment {
	return math.Segment{Start: c.Start, End: c.End}
}

// Bounds returns the axis-aligned box enclosing the capsule.
func (c Capsule) Bounds() math.Box3 {
	return math.Box3{
		Min: c.Start.Min(c.End),
		Max: c.Start.Max(c.End),
	}.ExpandScalar(c.Radius)
}

// Feet returns the lowest point of the capsule's start sphere.
func (c Capsule) Feet() math.Vec3 {
	return c.Start.Sub(math.Vec3{Y: c.Radius})
}
