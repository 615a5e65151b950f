package picking

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/pkg/math"
)

// RaySource produces world-space rays through normalized device coordinates.
type RaySource interface {
	Ray(ndcX, ndcY float32) (origin, dir math.Vec3)
}

// Cursor is the pointer affordance signalled to the UI.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// String returns the CSS-style cursor name.
func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Hit is one ray intersection with a registered target.
type Hit struct {
	ID       string
	Mesh     *scene.Node
	Distance float32
	Point    math.Vec3
}

type target struct {
	id   string
	node *scene.Node
}

// Picker tracks the pointer and the registered targets, and resolves which
// target is hovered.
type Picker struct {
	targets    []target
	registered map[*scene.Node]bool

	ndcX, ndcY float32
	hovered    string
	cursor     Cursor

	log *zap.Logger
}

// NewPicker creates a picker with no targets.
func NewPicker(log *zap.Logger) *Picker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Picker{
		registered: make(map[*scene.Node]bool),
		log:        log,
	}
}

// Register makes node and its subtree pickable under id. Nil nodes are ignored.
func (p *Picker) Register(id string, node *scene.Node) {
	if node == nil {
		return
	}
	p.targets = append(p.targets, target{id: id, node: node})
	p.registered[node] = true
}

// Len returns the number of registered targets.
func (p *Picker) Len() int {
	return len(p.targets)
}

// UpdatePointer stores the pointer position in normalized device coordinates.
func (p *Picker) UpdatePointer(ndcX, ndcY float32) {
	p.ndcX, p.ndcY = ndcX, ndcY
}

// Pointer returns the last pointer position.
func (p *Picker) Pointer() (ndcX, ndcY float32) {
	return p.ndcX, p.ndcY
}

// Intersect casts the pointer ray and returns every target hit, nearest first.
func (p *Picker) Intersect(src RaySource) []Hit {
	if src == nil || len(p.targets) == 0 {
		return nil
	}
	origin, dir := src.Ray(p.ndcX, p.ndcY)
	ray := Ray{Origin: origin, Direction: dir}

	var hits []Hit
	for _, t := range p.targets {
		hits = p.intersectSubtree(ray, t.id, t.node, true, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// intersectSubtree tests node and descendants, stopping at nested targets,
// which are tested under their own id.
func (p *Picker) intersectSubtree(ray Ray, id string, node *scene.Node, root bool, hits []Hit) []Hit {
	if !root && p.registered[node] {
		return hits
	}
	if node.Mesh != nil {
		tris := scene.TransformTriangles(node.Mesh.Triangles, node.WorldMatrix())
		if hit, ok := nearestTriangle(ray, tris); ok {
			hits = append(hits, Hit{ID: id, Mesh: node, Distance: hit, Point: ray.At(hit)})
		}
	}
	for _, c := range node.Children() {
		hits = p.intersectSubtree(ray, id, c, false, hits)
	}
	return hits
}

func nearestTriangle(ray Ray, tris []math.Triangle) (float32, bool) {
	bounds := math.EmptyBox()
	for _, t := range tris {
		bounds = bounds.Union(t.Bounds())
	}
	if bounds.IsEmpty() {
		return 0, false
	}
	if _, ok := ray.IntersectBox(bounds); !ok {
		return 0, false
	}

	best := float32(0)
	found := false
	for _, t := range tris {
		if d, ok := ray.IntersectTriangle(t); ok && (!found || d < best) {
			best = d
			found = true
		}
	}
	return best, found
}

// Pick casts the pointer ray and updates the hovered target and cursor. The
// hovered id is the registered target owning the nearest hit.
func (p *Picker) Pick(src RaySource) (string, bool) {
	hits := p.Intersect(src)
	prev := p.hovered
	if len(hits) == 0 {
		p.hovered = ""
		p.cursor = CursorDefault
	} else {
		p.hovered = hits[0].ID
		p.cursor = CursorPointer
	}
	if p.hovered != prev {
		p.log.Debug("hover changed", zap.String("from", prev), zap.String("to", p.hovered))
	}
	return p.Hovered()
}

// Hovered returns the hovered target id from the last Pick.
func (p *Picker) Hovered() (string, bool) {
	return p.hovered, p.hovered != ""
}

// Cursor returns the cursor signal from the last Pick.
func (p *Picker) Cursor() Cursor {
	return p.cursor
}
