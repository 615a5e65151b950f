package math

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns an inverted box that any Expand call will initialize.
func EmptyBox() Box3 {
	const big = 3.4e38
	return Box3{
		Min: Vec3{big, big, big},
		Max: Vec3{-big, -big, -big},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandPoint grows the box to contain p.
func (b Box3) ExpandPoint(p Vec3) Box3 {
	return Box3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box3) Union(other Box3) Box3 {
	return Box3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// ExpandScalar grows the box by d on every side.
func (b Box3) ExpandScalar(d float32) Box3 {
	e := Vec3{d, d, d}
	return Box3{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

// Center returns the box center.
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Intersects reports whether two boxes overlap.
func (b Box3) Intersects(other Box3) bool {
	return !(other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y ||
		other.Max.Z < b.Min.Z || other.Min.Z > b.Max.Z)
}

// Octants splits the box into its eight equal children.
func (b Box3) Octants() [8]Box3 {
	half := b.Size().Scale(0.5)
	var out [8]Box3
	i := 0
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				lo := b.Min.Add(Vec3{float32(x) * half.X, float32(y) * half.Y, float32(z) * half.Z})
				out[i] = Box3{Min: lo, Max: lo.Add(half)}
				i++
			}
		}
	}
	return out
}
