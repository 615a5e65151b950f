// Package scene holds the loaded scene graph: named nodes with transforms and
// triangle meshes, plus the name-to-role table used to bind them at load time.
package scene

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/folio3d/pkg/math"
)

// Mesh is a triangle mesh in node-local space.
type Mesh struct {
	Name      string
	Triangles []math.Triangle
	Color     [3]float32
}

// Bounds returns the local-space bounds of the mesh.
func (m *Mesh) Bounds() math.Box3 {
	b := math.EmptyBox()
	for _, t := range m.Triangles {
		b = b.Union(t.Bounds())
	}
	return b
}

// Node is a scene graph node.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation mgl32.Quat
	Scale    math.Vec3

	Mesh *Mesh

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool

	parent   *Node
	children []*Node

	// Euler angles (XYZ order) last written by SetYaw, valid while Rotation
	// still equals eulerOf.
	euler    mgl32.Vec3
	eulerOf  mgl32.Quat
	eulerSet bool
}

// NewNode creates a visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  true,
	}
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// Traverse visits n and all descendants depth-first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node transform in world space.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return math.FromGL(mgl32.TransformCoordinate(mgl32.Vec3{}, n.WorldMatrix()))
}

// SetMatrix decomposes an affine transform into Position, Rotation and Scale.
// A mirrored matrix is folded into a negative X scale.
func (n *Node) SetMatrix(m mgl32.Mat4) {
	n.Position = math.Vec3{X: m[12], Y: m[13], Z: m[14]}

	scale := [3]float32{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
	}

	r := mgl32.Ident4()
	for i, sc := range scale {
		if sc == 0 {
			continue
		}
		col := m.Col(i).Vec3().Mul(1 / sc)
		r.SetCol(i, col.Vec4(0))
	}
	n.Rotation = mgl32.Mat4ToQuat(r).Normalize()
	n.Scale = math.Vec3{X: scale[0], Y: scale[1], Z: scale[2]}
}

// Yaw returns the Y component of the node rotation as XYZ Euler angles.
func (n *Node) Yaw() float32 {
	if n.eulerSet && n.eulerOf == n.Rotation {
		return n.euler[1]
	}
	return eulerXYZ(n.Rotation)[1]
}

// SetYaw sets the Y Euler angle and keeps the X and Z tilt.
func (n *Node) SetYaw(yaw float32) {
	e := eulerXYZ(n.Rotation)
	if n.eulerSet && n.eulerOf == n.Rotation {
		e = n.euler
	}
	e[1] = yaw

	n.Rotation = mgl32.QuatRotate(e[0], mgl32.Vec3{1, 0, 0}).
		Mul(mgl32.QuatRotate(e[1], mgl32.Vec3{0, 1, 0})).
		Mul(mgl32.QuatRotate(e[2], mgl32.Vec3{0, 0, 1}))
	n.euler = e
	n.eulerOf = n.Rotation
	n.eulerSet = true
}

// eulerXYZ converts q to Euler angles applied in X, Y, Z order. A pure
// rotation about Y keeps its full angle instead of flipping X and Z by pi.
func eulerXYZ(q mgl32.Quat) mgl32.Vec3 {
	q = q.Normalize()
	x, y, z, w := float64(q.V[0]), float64(q.V[1]), float64(q.V[2]), float64(q.W)
	if gomath.Abs(x) < 1e-6 && gomath.Abs(z) < 1e-6 {
		return mgl32.Vec3{0, float32(2 * gomath.Atan2(y, w)), 0}
	}

	m11 := 1 - 2*(y*y+z*z)
	m12 := 2 * (x*y - w*z)
	m13 := 2 * (x*z + w*y)
	m22 := 1 - 2*(x*x+z*z)
	m23 := 2 * (y*z - w*x)
	m32 := 2 * (y*z + w*x)
	m33 := 1 - 2*(x*x+y*y)

	ey := gomath.Asin(gomath.Max(-1, gomath.Min(1, m13)))
	if gomath.Abs(m13) < 0.9999999 {
		return mgl32.Vec3{
			float32(gomath.Atan2(-m23, m33)),
			float32(ey),
			float32(gomath.Atan2(-m12, m11)),
		}
	}
	return mgl32.Vec3{float32(gomath.Atan2(m32, m22)), float32(ey), 0}
}

// WorldTriangles returns every mesh triangle in the subtree, in world space.
func (n *Node) WorldTriangles() []math.Triangle {
	var out []math.Triangle
	n.Traverse(func(node *Node) {
		if node.Mesh == nil {
			return
		}
		out = append(out, TransformTriangles(node.Mesh.Triangles, node.WorldMatrix())...)
	})
	return out
}

// TransformTriangles applies m to each triangle.
func TransformTriangles(tris []math.Triangle, m mgl32.Mat4) []math.Triangle {
	out := make([]math.Triangle, len(tris))
	for i, t := range tris {
		out[i] = math.Triangle{
			A: transformPoint(t.A, m),
			B: transformPoint(t.B, m),
			C: transformPoint(t.C, m),
		}
	}
	return out
}

func transformPoint(p math.Vec3, m mgl32.Mat4) math.Vec3 {
	return math.FromGL(mgl32.TransformCoordinate(p.GL(), m))
}
