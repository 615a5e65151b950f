package scene

import "github.com/Faultbox/folio3d/pkg/math"

// NewBoxMesh builds an axis-aligned box centered on the origin with outward
// facing triangles.
func NewBoxMesh(name string, size math.Vec3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	v := [8]math.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
		{X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
		{X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	quads := [6][4]int{
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
		{5, 1, 2, 6}, // +X
		{0, 4, 7, 3}, // -X
		{7, 6, 2, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}
	m := &Mesh{Name: name, Color: [3]float32{0.8, 0.8, 0.8}}
	for _, q := range quads {
		m.Triangles = append(m.Triangles,
			math.Triangle{A: v[q[0]], B: v[q[1]], C: v[q[2]]},
			math.Triangle{A: v[q[0]], B: v[q[2]], C: v[q[3]]},
		)
	}
	return m
}

// NewPlaneMesh builds a horizontal upward-facing quad centered on the origin.
func NewPlaneMesh(name string, width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	a := math.Vec3{X: -hw, Z: -hd}
	b := math.Vec3{X: -hw, Z: hd}
	c := math.Vec3{X: hw, Z: hd}
	d := math.Vec3{X: hw, Z: -hd}
	return &Mesh{
		Name:  name,
		Color: [3]float32{0.6, 0.7, 0.5},
		Triangles: []math.Triangle{
			{A: a, B: b, C: c},
			{A: a, B: c, C: d},
		},
	}
}
