package scene

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/folio3d/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func approxVec(a, b math.Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.Add(child)
	b.Add(child)

	if child.Parent() != b {
		t.Errorf("Parent() = %v, want b", child.Parent())
	}
	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if b.Find("child") != child {
		t.Error("Find(child) failed")
	}
	if b.Find("missing") != nil {
		t.Error("Find(missing) returned a node")
	}
}

func TestWorldTransforms(t *testing.T) {
	root := NewNode("root")
	root.Position = math.Vec3{X: 10}
	root.SetYaw(gomath.Pi / 2)

	child := NewNode("child")
	child.Position = math.Vec3{Z: 1}
	root.Add(child)

	// +Z rotated a quarter turn about Y becomes +X.
	want := math.Vec3{X: 11}
	if got := child.WorldPosition(); !approxVec(got, want) {
		t.Errorf("WorldPosition() = %v, want %v", got, want)
	}

	child.Mesh = &Mesh{Name: "tri", Triangles: []math.Triangle{{
		A: math.Vec3{},
		B: math.Vec3{X: 1},
		C: math.Vec3{Y: 1},
	}}}
	tris := root.WorldTriangles()
	if len(tris) != 1 {
		t.Fatalf("WorldTriangles() = %d, want 1", len(tris))
	}
	if !approxVec(tris[0].A, want) {
		t.Errorf("world A = %v, want %v", tris[0].A, want)
	}
	if !approxVec(tris[0].B, math.Vec3{X: 11, Z: -1}) {
		t.Errorf("world B = %v", tris[0].B)
	}
}

func TestScale(t *testing.T) {
	n := NewNode("n")
	n.Scale = math.Vec3{X: 2, Y: 2, Z: 2}
	n.Position = math.Vec3{Y: 1}
	got := TransformTriangles([]math.Triangle{{A: math.Vec3{X: 1}}}, n.WorldMatrix())[0].A
	if !approxVec(got, math.Vec3{X: 2, Y: 1}) {
		t.Errorf("scaled point = %v", got)
	}
}

func TestSetMatrix(t *testing.T) {
	tests := []struct {
		name      string
		matrix    mgl32.Mat4
		wantPos   math.Vec3
		wantScale math.Vec3
		wantYaw   float32
	}{
		{
			name:      "uniform scale",
			matrix:    mgl32.Scale3D(2, 2, 2),
			wantScale: math.Vec3{X: 2, Y: 2, Z: 2},
		},
		{
			name: "translate rotate scale",
			matrix: mgl32.Translate3D(1, 2, 3).
				Mul4(mgl32.HomogRotate3DY(gomath.Pi / 2)).
				Mul4(mgl32.Scale3D(3, 1, 2)),
			wantPos:   math.Vec3{X: 1, Y: 2, Z: 3},
			wantScale: math.Vec3{X: 3, Y: 1, Z: 2},
			wantYaw:   gomath.Pi / 2,
		},
		{
			name:      "mirrored",
			matrix:    mgl32.Scale3D(-1, 1, 1),
			wantScale: math.Vec3{X: -1, Y: 1, Z: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode("n")
			n.SetMatrix(tt.matrix)

			if !approxVec(n.Position, tt.wantPos) {
				t.Errorf("Position = %v, want %v", n.Position, tt.wantPos)
			}
			if !approxVec(n.Scale, tt.wantScale) {
				t.Errorf("Scale = %v, want %v", n.Scale, tt.wantScale)
			}
			if !approx(n.Yaw(), tt.wantYaw) {
				t.Errorf("Yaw() = %v, want %v", n.Yaw(), tt.wantYaw)
			}
			if !n.LocalMatrix().ApproxEqualThreshold(tt.matrix, 1e-4) {
				t.Errorf("LocalMatrix() = %v, want %v", n.LocalMatrix(), tt.matrix)
			}
		})
	}
}

func TestSetYawOnScaledNodeTurns(t *testing.T) {
	n := NewNode("n")
	n.SetMatrix(mgl32.Scale3D(2, 2, 2))
	n.SetYaw(-gomath.Pi / 2)

	fwd := mgl32.TransformNormal(mgl32.Vec3{0, 0, 1}, n.LocalMatrix())
	if !fwd.ApproxEqualThreshold(mgl32.Vec3{-2, 0, 0}, 1e-4) {
		t.Errorf("forward = %v, want {-2 0 0}", fwd)
	}
}

func TestSetYawKeepsTilt(t *testing.T) {
	rx := mgl32.QuatRotate(0.3, mgl32.Vec3{1, 0, 0})
	n := NewNode("n")
	n.Rotation = rx.Mul(mgl32.QuatRotate(0.2, mgl32.Vec3{0, 1, 0}))
	if !approx(n.Yaw(), 0.2) {
		t.Fatalf("Yaw() = %v, want 0.2", n.Yaw())
	}

	for _, yaw := range []float32{1, 2.5, -3} {
		n.SetYaw(yaw)
		want := rx.Mul(mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}))
		if !n.Rotation.ApproxEqualThreshold(want, 1e-4) && !n.Rotation.ApproxEqualThreshold(want.Scale(-1), 1e-4) {
			t.Errorf("SetYaw(%v) rotation = %v, want %v", yaw, n.Rotation, want)
		}
		if !approx(n.Yaw(), yaw) {
			t.Errorf("Yaw() after SetYaw(%v) = %v", yaw, n.Yaw())
		}
	}
}

func TestSetYawFromHalfTurn(t *testing.T) {
	n := NewNode("n")
	n.Rotation = mgl32.QuatRotate(gomath.Pi, mgl32.Vec3{0, 1, 0})
	if !approx(n.Yaw(), gomath.Pi) {
		t.Errorf("Yaw() = %v, want pi", n.Yaw())
	}

	n.SetYaw(gomath.Pi / 2)
	got := n.Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	if !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("forward after SetYaw(pi/2) = %v, want {1 0 0}", got)
	}
}

func TestYawRoundTrip(t *testing.T) {
	for _, yaw := range []float32{0, 0.5, gomath.Pi / 2, -gomath.Pi / 2, 3} {
		n := NewNode("n")
		n.SetYaw(yaw)
		if got := n.Yaw(); !approx(got, yaw) {
			t.Errorf("Yaw() after SetYaw(%v) = %v", yaw, got)
		}
	}
}

func TestResolveBindings(t *testing.T) {
	root := NewNode("Scene")
	player := NewNode("mouse")
	player.Mesh = NewBoxMesh("mouse", math.Vec3{X: 1, Y: 1, Z: 1})
	root.Add(player)
	ground := NewNode("ground_collider")
	ground.Mesh = NewPlaneMesh("ground", 10, 10)
	root.Add(ground)

	group := NewNode("targets")
	root.Add(group)
	for _, name := range []string{"aboutme", "projects"} {
		group.Add(NewNode(name))
	}
	root.Add(NewNode("decoration"))

	b := DefaultRoles().Resolve(root)
	if b.Player != player {
		t.Errorf("Player = %v", b.Player)
	}
	if b.Collider != ground {
		t.Errorf("Collider = %v", b.Collider)
	}
	if len(b.Targets) != 2 || b.Targets[0].Name != "aboutme" || b.Targets[1].Name != "projects" {
		t.Errorf("Targets = %v", b.Targets)
	}
	if !player.CastShadow || !player.ReceiveShadow || !ground.ReceiveShadow {
		t.Error("mesh nodes were not flagged for shadows")
	}
	if group.CastShadow {
		t.Error("node without a mesh was flagged for shadows")
	}

	if got := (Roles{}).Resolve(nil); got.Player != nil || got.Collider != nil || got.Targets != nil {
		t.Errorf("Resolve(nil) = %+v", got)
	}
}

func TestResolveKeepsFirstTargetPerName(t *testing.T) {
	root := NewNode("Scene")
	first := NewNode("aboutme")
	second := NewNode("aboutme")
	third := NewNode("aboutme")
	root.Add(first)
	root.Add(NewNode("projects"))
	root.Add(second)
	root.Add(third)

	b := DefaultRoles().Resolve(root)
	if len(b.Targets) != 2 {
		t.Fatalf("Targets = %d nodes, want 2", len(b.Targets))
	}
	if b.Targets[0] != first {
		t.Error("aboutme bound to a later occurrence, want the first")
	}
	if len(b.Duplicates) != 1 || b.Duplicates[0] != "aboutme" {
		t.Errorf("Duplicates = %v, want [aboutme]", b.Duplicates)
	}
}

func TestTargetNames(t *testing.T) {
	got := DefaultRoles().TargetNames()
	want := []string{"aboutme", "hobbies", "projects"}
	if len(got) != len(want) {
		t.Fatalf("TargetNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TargetNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRolesYAML(t *testing.T) {
	data := []byte("hero: Player\nfloor: collider\nsign: target\n")
	var r Roles
	if err := yaml.Unmarshal(data, &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r["hero"] != RolePlayer || r["floor"] != RoleCollider || r["sign"] != RoleTarget {
		t.Errorf("roles = %v", r)
	}

	out, err := yaml.Marshal(Roles{"mouse": RolePlayer})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != "mouse: player\n" {
		t.Errorf("Marshal = %q", out)
	}

	if err := yaml.Unmarshal([]byte("x: wizard\n"), &r); err == nil {
		t.Error("expected an error for an unknown role")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("bogus"); err == nil {
		t.Error("ParseRole(bogus) succeeded")
	}
	if got := Role(42).String(); got != "Role(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPrimitives(t *testing.T) {
	box := NewBoxMesh("box", math.Vec3{X: 2, Y: 4, Z: 6})
	if len(box.Triangles) != 12 {
		t.Fatalf("box has %d triangles, want 12", len(box.Triangles))
	}
	b := box.Bounds()
	if b.Min != (math.Vec3{X: -1, Y: -2, Z: -3}) || b.Max != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("box bounds = %v", b)
	}
	// Every face normal points away from the center.
	for i, tri := range box.Triangles {
		center := tri.A.Add(tri.B).Add(tri.C).Scale(1.0 / 3)
		if tri.Normal().Dot(center) <= 0 {
			t.Errorf("triangle %d faces inward", i)
		}
	}

	plane := NewPlaneMesh("plane", 4, 4)
	for i, tri := range plane.Triangles {
		if n := tri.Normal(); !approx(n.Y, 1) {
			t.Errorf("plane triangle %d normal = %v, want up", i, n)
		}
	}
}
