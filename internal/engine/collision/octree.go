package collision

import "github.com/Faultbox/folio3d/pkg/math"

const (
	// TrianglesPerLeaf is the split threshold for octree nodes.
	TrianglesPerLeaf = 8
	// MaxDepth bounds octree subdivision.
	MaxDepth = 16

	boundsPadding = 0.01
)

// Octree is an immutable spatial index over static level triangles.
type Octree struct {
	tris  []math.Triangle
	root  *octant
	nodes int
	depth int
}

type octant struct {
	bounds   math.Box3
	indices  []int
	children []*octant
}

// Build indexes the given world-space triangles.
func Build(triangles []math.Triangle) *Octree {
	o := &Octree{tris: append([]math.Triangle(nil), triangles...)}
	if len(o.tris) == 0 {
		return o
	}

	bounds := math.EmptyBox()
	indices := make([]int, len(o.tris))
	for i, t := range o.tris {
		bounds = bounds.Union(t.Bounds())
		indices[i] = i
	}

	o.root = &octant{bounds: bounds.ExpandScalar(boundsPadding), indices: indices}
	o.split(o.root, 0)
	return o
}

// split hands each triangle to every child whose box overlaps its bounds.
// Subdivision stops at TrianglesPerLeaf, at MaxDepth, or when no child
// would hold fewer triangles than the parent.
func (o *Octree) split(n *octant, level int) {
	o.nodes++
	if level > o.depth {
		o.depth = level
	}
	if len(n.indices) <= TrianglesPerLeaf || level >= MaxDepth {
		return
	}

	boxes := n.bounds.Octants()
	var buckets [8][]int
	for _, idx := range n.indices {
		tb := o.tris[idx].Bounds()
		for i, box := range boxes {
			if box.Intersects(tb) {
				buckets[i] = append(buckets[i], idx)
			}
		}
	}

	progress := false
	for _, b := range buckets {
		if len(b) > 0 && len(b) < len(n.indices) {
			progress = true
			break
		}
	}
	if !progress {
		return
	}

	for i, box := range boxes {
		if len(buckets[i]) == 0 {
			continue
		}
		child := &octant{bounds: box, indices: buckets[i]}
		n.children = append(n.children, child)
		o.split(child, level+1)
	}
	n.indices = nil
}

// Len returns the number of indexed triangles.
func (o *Octree) Len() int {
	return len(o.tris)
}

// Stats reports the node count and maximum depth of the tree.
func (o *Octree) Stats() (nodes, depth int) {
	return o.nodes, o.depth
}

// Bounds returns the root bounds. It is empty for an empty index.
func (o *Octree) Bounds() math.Box3 {
	if o.root == nil {
		return math.EmptyBox()
	}
	return o.root.bounds
}

// Candidates returns every triangle stored in leaves overlapping box, each
// once, in traversal order.
func (o *Octree) Candidates(box math.Box3) []math.Triangle {
	if o.root == nil {
		return nil
	}
	seen := make(map[int]struct{})
	var out []math.Triangle
	o.root.collect(box, func(idx int) {
		if _, dup := seen[idx]; dup {
			return
		}
		seen[idx] = struct{}{}
		out = append(out, o.tris[idx])
	})
	return out
}

func (n *octant) collect(box math.Box3, visit func(int)) {
	if !n.bounds.Intersects(box) {
		return
	}
	if len(n.children) == 0 {
		for _, idx := range n.indices {
			visit(idx)
		}
		return
	}
	for _, c := range n.children {
		c.collect(box, visit)
	}
}

// IntersectCapsule resolves the capsule against every nearby triangle in
// sequence and reports the combined push-out as a single contact. Each
// contact moves a scratch copy of the capsule before the next triangle is
// tested; the result is the displacement of that copy. The input capsule is
// not modified.
func (o *Octree) IntersectCapsule(c Capsule) (Contact, bool) {
	if o == nil || o.root == nil {
		return Contact{}, false
	}

	moved := c
	hit := false
	for _, tri := range o.Candidates(c.Bounds()) {
		if contact, ok := TriangleCapsule(moved, tri); ok {
			hit = true
			moved.Translate(contact.Push())
		}
	}
	if !hit {
		return Contact{}, false
	}

	offset := moved.Center().Sub(c.Center())
	return Contact{Normal: offset.Normalize(), Depth: offset.Length()}, true
}
