package math

// Triangle is a world-space triangle.
type Triangle struct {
	A, B, C Vec3
}

// Normal returns the unit face normal using counter-clockwise winding.
func (t Triangle) Normal() Vec3 {
	return t.C.Sub(t.B).Cross(t.A.Sub(t.B)).Normalize()
}

// Plane returns the triangle's plane as a unit normal and constant,
// such that Normal·p + constant is the signed distance of p.
func (t Triangle) Plane() (normal Vec3, constant float32) {
	normal = t.Normal()
	return normal, -normal.Dot(t.A)
}

// Bounds returns the axis-aligned bounds of the triangle.
func (t Triangle) Bounds() Box3 {
	return Box3{
		Min: t.A.Min(t.B).Min(t.C),
		Max: t.A.Max(t.B).Max(t.C),
	}
}

// ContainsPoint reports whether p, assumed to lie in the triangle's plane,
// is inside the triangle (edges included).
func (t Triangle) ContainsPoint(p Vec3) bool {
	v0 := t.C.Sub(t.A)
	v1 := t.B.Sub(t.A)
	v2 := p.Sub(t.A)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return false
	}

	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= 0 && v >= 0 && u+v <= 1
}

// Edges returns the three edges as segments.
func (t Triangle) Edges() [3]Segment {
	return [3]Segment{
		{t.A, t.B},
		{t.B, t.C},
		{t.C, t.A},
	}
}

// Translate returns the triangle moved by offset.
func (t Triangle) Translate(offset Vec3) Triangle {
	return Triangle{t.A.Add(offset), t.B.Add(offset), t.C.Add(offset)}
}
