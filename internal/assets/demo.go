package assets

import (
	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/pkg/math"
)

// DemoScene builds a small stand-in for the portfolio model: a ground
// collider, the player, and the three targets, each target being a named
// group holding a mesh child as exported by modeling tools.
func DemoScene() *scene.Node {
	root := scene.NewNode("demo")

	ground := scene.NewNode("ground_collider")
	ground.Mesh = scene.NewPlaneMesh("ground_collider", 80, 80)
	root.Add(ground)

	floor := scene.NewNode("floor")
	floor.Mesh = scene.NewBoxMesh("floor", math.Vec3{X: 80, Y: 0.2, Z: 80})
	floor.Position = math.Vec3{Y: -0.1}
	root.Add(floor)

	player := scene.NewNode("mouse")
	player.Position = math.Vec3{Y: 4}
	body := scene.NewNode("mouse_body")
	body.Mesh = scene.NewBoxMesh("mouse_body", math.Vec3{X: 1.5, Y: 1.5, Z: 2.5})
	body.Mesh.Color = [3]float32{0.55, 0.55, 0.6}
	body.Position = math.Vec3{Y: 0.75}
	player.Add(body)
	root.Add(player)

	targets := []struct {
		name  string
		pos   math.Vec3
		color [3]float32
	}{
		{"aboutme", math.Vec3{X: -10, Y: 1.5, Z: -12}, [3]float32{0.95, 0.6, 0.55}},
		{"projects", math.Vec3{X: 0, Y: 1.5, Z: -16}, [3]float32{0.55, 0.75, 0.95}},
		{"hobbies", math.Vec3{X: 10, Y: 1.5, Z: -12}, [3]float32{0.6, 0.9, 0.6}},
	}
	for _, t := range targets {
		group := scene.NewNode(t.name)
		group.Position = t.pos
		body := scene.NewNode(t.name + "_mesh")
		body.Mesh = scene.NewBoxMesh(t.name+"_mesh", math.Vec3{X: 3, Y: 3, Z: 3})
		body.Mesh.Color = t.color
		group.Add(body)
		root.Add(group)
	}
	return root
}
