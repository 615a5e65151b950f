package collision

import "github.com/Faultbox/folio3d/pkg/math"

// Contact describes how far and in which direction a capsule must move to
// leave the geometry it penetrates.
type Contact struct {
	Normal math.Vec3
	Depth  float32
}

// Push returns the translation that resolves the contact.
func (c Contact) Push() math.Vec3 {
	return c.Normal.Scale(c.Depth)
}

// TriangleCapsule tests a capsule against a single triangle.
func TriangleCapsule(c Capsule, tri math.Triangle) (Contact, bool) {
	normal, constant := tri.Plane()
	d1 := normal.Dot(c.Start) + constant - c.Radius
	d2 := normal.Dot(c.End) + constant - c.Radius

	if (d1 > 0 && d2 > 0) || (d1 < -c.Radius && d2 < -c.Radius) {
		return Contact{}, false
	}

	delta := float32(0)
	if sum := abs(d1) + abs(d2); sum > 0 {
		delta = abs(d1 / sum)
	}
	point := c.Start.Lerp(c.End, delta)
	if tri.ContainsPoint(point) {
		return Contact{Normal: normal, Depth: abs(min(d1, d2))}, true
	}

	r2 := c.Radius * c.Radius
	core := c.Segment()
	for _, edge := range tri.Edges() {
		p1, p2 := math.ClosestPoints(core, edge)
		if distSq := p1.DistanceSq(p2); distSq < r2 {
			return Contact{
				Normal: p1.Sub(p2).Normalize(),
				Depth:  c.Radius - p1.Distance(p2),
			}, true
		}
	}
	return Contact{}, false
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
