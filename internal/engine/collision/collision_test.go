package collision

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/folio3d/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

// floorGrid returns an upward-facing square floor at y=0 split into n*n quads.
func floorGrid(n int, size float32) []math.Triangle {
	step := size / float32(n)
	half := size / 2
	tris := make([]math.Triangle, 0, n*n*2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x0 := -half + float32(i)*step
			z0 := -half + float32(j)*step
			x1, z1 := x0+step, z0+step
			tris = append(tris,
				math.Triangle{
					A: math.Vec3{X: x0, Z: z0},
					B: math.Vec3{X: x0, Z: z1},
					C: math.Vec3{X: x1, Z: z1},
				},
				math.Triangle{
					A: math.Vec3{X: x0, Z: z0},
					B: math.Vec3{X: x1, Z: z1},
					C: math.Vec3{X: x1, Z: z0},
				},
			)
		}
	}
	return tris
}

func TestNewCapsule(t *testing.T) {
	c := NewCapsule(math.Vec3{X: 1, Y: 2, Z: 3}, 1, 1)
	if c.Start != (math.Vec3{X: 1, Y: 3, Z: 3}) || c.End != (math.Vec3{X: 1, Y: 3, Z: 3}) {
		t.Errorf("NewCapsule = %+v", c)
	}
	if got := c.Feet(); got != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Feet() = %v", got)
	}

	b := c.Bounds()
	if b.Min != (math.Vec3{X: 0, Y: 2, Z: 2}) || b.Max != (math.Vec3{X: 2, Y: 4, Z: 4}) {
		t.Errorf("Bounds() = %v", b)
	}

	c.Translate(math.Vec3{Y: -1})
	if got := c.Center(); got != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Center() after Translate = %v", got)
	}
}

func TestTriangleCapsuleFace(t *testing.T) {
	floor := floorGrid(1, 20)

	tests := []struct {
		name      string
		feetY     float32
		wantHit   bool
		wantDepth float32
	}{
		{"resting above", 0.5, false, 0},
		{"penetrating", -0.5, true, 0.5},
		{"shallow", -0.1, true, 0.1},
		{"far below", -3, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapsule(math.Vec3{X: 3, Y: tt.feetY, Z: 1}, 1, 1)
			contact, ok := TriangleCapsule(c, floor[0])
			if !ok {
				contact, ok = TriangleCapsule(c, floor[1])
			}
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if !ok {
				return
			}
			if contact.Normal != (math.Vec3{Y: 1}) {
				t.Errorf("normal = %v, want up", contact.Normal)
			}
			if !approx(contact.Depth, tt.wantDepth) {
				t.Errorf("depth = %v, want %v", contact.Depth, tt.wantDepth)
			}
		})
	}
}

func TestTriangleCapsuleEdge(t *testing.T) {
	// Right half of a 2x2 floor; its edge at x=1 runs along Z.
	tri := math.Triangle{
		A: math.Vec3{X: -1, Z: -1},
		B: math.Vec3{X: 1, Z: 1},
		C: math.Vec3{X: 1, Z: -1},
	}
	c := NewCapsule(math.Vec3{X: 1.5, Y: -0.8, Z: 0}, 1, 1)

	contact, ok := TriangleCapsule(c, tri)
	if !ok {
		t.Fatal("expected edge contact")
	}
	dist := float32(gomath.Sqrt(0.25 + 0.04))
	if !approx(contact.Depth, 1-dist) {
		t.Errorf("depth = %v, want %v", contact.Depth, 1-dist)
	}
	if contact.Normal.X <= 0 || contact.Normal.Y <= 0 {
		t.Errorf("normal = %v, want pointing away from the edge", contact.Normal)
	}
	if !approx(contact.Normal.Length(), 1) {
		t.Errorf("normal length = %v, want 1", contact.Normal.Length())
	}
}

func TestOctreeEmpty(t *testing.T) {
	o := Build(nil)
	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
	if !o.Bounds().IsEmpty() {
		t.Error("empty octree should have empty bounds")
	}
	if _, ok := o.IntersectCapsule(NewCapsule(math.Vec3{}, 1, 1)); ok {
		t.Error("empty octree reported a contact")
	}

	var nilTree *Octree
	if _, ok := nilTree.IntersectCapsule(NewCapsule(math.Vec3{}, 1, 1)); ok {
		t.Error("nil octree reported a contact")
	}
}

func TestOctreeSubdivides(t *testing.T) {
	tris := floorGrid(10, 100)
	o := Build(tris)

	if o.Len() != len(tris) {
		t.Errorf("Len() = %d, want %d", o.Len(), len(tris))
	}
	nodes, depth := o.Stats()
	if nodes <= 1 || depth < 1 {
		t.Errorf("Stats() = (%d, %d), want a subdivided tree", nodes, depth)
	}
	if depth > MaxDepth {
		t.Errorf("depth %d exceeds MaxDepth", depth)
	}

	b := o.Bounds()
	if b.Min.X > -50 || b.Max.X < 50 {
		t.Errorf("Bounds() = %v does not cover the input", b)
	}

	small := math.Box3{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	cands := o.Candidates(small)
	if len(cands) == 0 || len(cands) >= len(tris) {
		t.Errorf("Candidates() returned %d of %d triangles", len(cands), len(tris))
	}
	seen := make(map[math.Triangle]bool)
	for _, c := range cands {
		if seen[c] {
			t.Fatalf("duplicate candidate %v", c)
		}
		seen[c] = true
	}

	far := math.Box3{Min: math.Vec3{X: 500, Y: 500, Z: 500}, Max: math.Vec3{X: 501, Y: 501, Z: 501}}
	if got := o.Candidates(far); len(got) != 0 {
		t.Errorf("Candidates(far) = %d triangles, want 0", len(got))
	}
}

func TestOctreeIntersectCapsuleFloor(t *testing.T) {
	o := Build(floorGrid(10, 100))

	c := NewCapsule(math.Vec3{X: 2.5, Y: -0.3, Z: 7.5}, 1, 1)
	contact, ok := o.IntersectCapsule(c)
	if !ok {
		t.Fatal("expected contact with the floor")
	}
	if !approx(contact.Normal.Y, 1) {
		t.Errorf("normal = %v, want up", contact.Normal)
	}
	if !approx(contact.Depth, 0.3) {
		t.Errorf("depth = %v, want 0.3", contact.Depth)
	}

	c.Translate(contact.Push())
	if !approx(c.Feet().Y, 0) {
		t.Errorf("feet after push = %v, want 0", c.Feet().Y)
	}

	if _, ok := o.IntersectCapsule(NewCapsule(math.Vec3{X: 2.5, Y: 5, Z: 7.5}, 1, 1)); ok {
		t.Error("capsule above the floor reported a contact")
	}
}

func TestOctreeQueryDoesNotMoveInput(t *testing.T) {
	o := Build(floorGrid(2, 10))
	c := NewCapsule(math.Vec3{Y: -0.5}, 1, 1)
	before := c
	o.IntersectCapsule(c)
	if c != before {
		t.Errorf("IntersectCapsule modified its argument: %+v", c)
	}
}
