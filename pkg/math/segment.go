package math

// Segment is a line segment between two points.
type Segment struct {
	Start Vec3
	End   Vec3
}

// At returns the point at parameter t along the segment.
func (s Segment) At(t float32) Vec3 {
	return s.Start.Lerp(s.End, t)
}

// ClosestPoints returns the closest points between two segments, one on each.
// Parallel and degenerate segments fall back to endpoint projection.
func ClosestPoints(s1, s2 Segment) (p1, p2 Vec3) {
	const eps = 1e-10

	r := s1.End.Sub(s1.Start)
	s := s2.End.Sub(s2.Start)
	w := s2.Start.Sub(s1.Start)

	a := r.Dot(s)
	b := r.Dot(r)
	c := s.Dot(s)
	d := s.Dot(w)
	e := r.Dot(w)

	if c < eps {
		// Second segment is a point.
		t1 := float32(0)
		if b >= eps {
			t1 = Clamp(e/b, 0, 1)
		}
		return s1.At(t1), s2.Start
	}

	var t1, t2 float32
	divisor := b*c - a*a
	if divisor < eps && divisor > -eps {
		d1 := -d / c
		d2 := (a - d) / c
		if abs32(d1-0.5) < abs32(d2-0.5) {
			t1, t2 = 0, d1
		} else {
			t1, t2 = 1, d2
		}
	} else {
		t1 = (d*a + e*c) / divisor
		t2 = (t1*a - d) / c
	}

	t1 = Clamp(t1, 0, 1)
	t2 = Clamp(t2, 0, 1)
	return s1.At(t1), s2.At(t2)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
