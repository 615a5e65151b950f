// Package assets loads the portfolio scene from glTF/GLB files.
package assets

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/pkg/math"
)

// ErrNoScene is returned for documents without any scene.
var ErrNoScene = errors.New("document has no scene")

// LoadScene reads a .glb or .gltf file and converts its default scene into a
// scene graph. Only triangle primitives are kept.
func LoadScene(path string) (*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	root, err := convertDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return root, nil
}

// Result is the outcome of an asynchronous load.
type Result struct {
	Root *scene.Node
	Err  error
}

// LoadAsync loads path on a separate goroutine. The channel receives exactly
// one result and is then closed. The scene graph is not touched by the
// loader after it is sent, so the receiver owns it.
func LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		root, err := LoadScene(path)
		if err == nil {
			err = ctx.Err()
		}
		out <- Result{Root: root, Err: err}
	}()
	return out
}

func convertDocument(doc *gltf.Document) (*scene.Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene index %d out of range", sceneIdx)
	}

	root := scene.NewNode(doc.Scenes[sceneIdx].Name)
	c := converter{doc: doc, meshes: make(map[int]*scene.Mesh)}
	for _, idx := range doc.Scenes[sceneIdx].Nodes {
		child, err := c.node(int(idx), 0)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

// maxNodeDepth guards against cyclic node references in malformed files.
const maxNodeDepth = 256

type converter struct {
	doc    *gltf.Document
	meshes map[int]*scene.Mesh
}

func (c *converter) node(idx, depth int) (*scene.Node, error) {
	if idx < 0 || idx >= len(c.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	src := c.doc.Nodes[idx]

	n := scene.NewNode(src.Name)
	applyTransform(n, src)

	if src.Mesh != nil {
		mesh, err := c.mesh(int(*src.Mesh))
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		n.Mesh = mesh
	}

	for _, childIdx := range src.Children {
		child, err := c.node(int(childIdx), depth+1)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func applyTransform(n *scene.Node, src *gltf.Node) {
	m := src.Matrix
	if m != [16]float64{} && m != identity {
		var mat mgl32.Mat4
		for i := range m {
			mat[i] = float32(m[i])
		}
		n.SetMatrix(mat)
		return
	}

	t := src.Translation
	n.Position = math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}

	r := src.Rotation
	if r != [4]float64{} {
		n.Rotation = mgl32.Quat{
			W: float32(r[3]),
			V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
		}
	}

	s := src.Scale
	if s != [3]float64{} {
		n.Scale = math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}
	}
}

var identity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func (c *converter) mesh(idx int) (*scene.Mesh, error) {
	if m, ok := c.meshes[idx]; ok {
		return m, nil
	}
	if idx < 0 || idx >= len(c.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}
	src := c.doc.Meshes[idx]
	out := &scene.Mesh{Name: src.Name, Color: colorFor(src.Name)}

	for i, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		tris, err := c.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
		out.Triangles = append(out.Triangles, tris...)
	}
	c.meshes[idx] = out
	return out, nil
}

func (c *converter) primitive(prim *gltf.Primitive) ([]math.Triangle, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(c.doc, c.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(c.doc, c.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertex := func(i uint32) (math.Vec3, error) {
		if int(i) >= len(positions) {
			return math.Vec3{}, fmt.Errorf("index %d out of %d vertices", i, len(positions))
		}
		p := positions[i]
		return math.Vec3{X: p[0], Y: p[1], Z: p[2]}, nil
	}

	tris := make([]math.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, err := vertex(indices[i])
		if err != nil {
			return nil, err
		}
		b, err := vertex(indices[i+1])
		if err != nil {
			return nil, err
		}
		cv, err := vertex(indices[i+2])
		if err != nil {
			return nil, err
		}
		tris = append(tris, math.Triangle{A: a, B: b, C: cv})
	}
	return tris, nil
}

// colorFor derives a stable pastel color from a mesh name.
func colorFor(name string) [3]float32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	v := h.Sum32()
	return [3]float32{
		0.55 + float32(v&0xff)/255*0.4,
		0.55 + float32((v>>8)&0xff)/255*0.4,
		0.55 + float32((v>>16)&0xff)/255*0.4,
	}
}
