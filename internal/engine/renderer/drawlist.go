package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/pkg/math"
)

const floatsPerVertex = 6

// Shade factors applied on top of the diffuse term.
const (
	shadeFull     = 1.0
	shadeNoShadow = 0.85
)

type drawItem struct {
	mesh  *scene.Mesh
	model mgl32.Mat4
	shade float32
}

// collectDrawList walks the graph and returns the meshes to draw with their
// world matrices. Hidden nodes prune their whole subtree.
func collectDrawList(root *scene.Node) []drawItem {
	var items []drawItem
	var walk func(n *scene.Node, parent mgl32.Mat4)
	walk = func(n *scene.Node, parent mgl32.Mat4) {
		if !n.Visible {
			return
		}
		world := parent.Mul4(n.LocalMatrix())
		if n.Mesh != nil && len(n.Mesh.Triangles) > 0 {
			shade := float32(shadeFull)
			if !n.ReceiveShadow {
				shade = shadeNoShadow
			}
			items = append(items, drawItem{mesh: n.Mesh, model: world, shade: shade})
		}
		for _, c := range n.Children() {
			walk(c, world)
		}
	}

	parent := mgl32.Ident4()
	if p := root.Parent(); p != nil {
		parent = p.WorldMatrix()
	}
	walk(root, parent)
	return items
}

// buildVertices flattens a mesh into interleaved position/normal vertices.
func buildVertices(mesh *scene.Mesh) []float32 {
	if mesh == nil {
		return nil
	}
	out := make([]float32, 0, len(mesh.Triangles)*3*floatsPerVertex)
	for _, t := range mesh.Triangles {
		n := t.Normal()
		for _, p := range [3]math.Vec3{t.A, t.B, t.C} {
			out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
		}
	}
	return out
}

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core

in vec3 vNormal;

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform vec3 uSunColor;
uniform vec3 uAmbient;
uniform float uShade;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	vec3 light = clamp(0.5 * uAmbient + uSunColor * diffuse, 0.0, 1.0);
	FragColor = vec4(uColor * light * uShade, 1.0);
}
` + "\x00"
