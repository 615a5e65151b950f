// Package camera provides the follow camera for the portfolio scene.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/folio3d/pkg/math"
)

// FilmGauge is the film size in millimetres used to turn a focal length
// into a field of view.
const FilmGauge = 35.0

// Config holds camera settings.
type Config struct {
	Offset      math.Vec3 // from followed target to camera
	Position    math.Vec3 // until a target is followed
	FovY        float32   // degrees
	FocalLength float32   // millimetres; overrides FovY when > 0
	Near        float32
	Far         float32
}

// DefaultConfig returns the framing of the portfolio scene.
func DefaultConfig() Config {
	return Config{
		Offset:      math.Vec3{X: -30, Y: 49, Z: 90},
		Position:    math.Vec3{X: -40, Y: 49, Z: 90},
		FovY:        75,
		FocalLength: 120,
		Near:        0.1,
		Far:         1000,
	}
}

// FollowCamera is a perspective camera kept at a fixed offset from the
// player and aimed at it.
type FollowCamera struct {
	Position math.Vec3
	Target   math.Vec3
	Offset   math.Vec3

	// Vertical field of view in degrees
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32

	following bool
}

// NewFollowCamera creates a camera for a viewport of the given size.
// The field of view is derived from the focal length at this aspect ratio
// and kept when the viewport is later resized.
func NewFollowCamera(cfg Config, width, height int) *FollowCamera {
	c := &FollowCamera{
		Position: cfg.Position,
		Target:   cfg.Position.Add(math.Vec3{Z: -1}),
		Offset:   cfg.Offset,
		FovY:     cfg.FovY,
		Near:     cfg.Near,
		Far:      cfg.Far,
	}
	c.SetViewport(width, height)
	if cfg.FocalLength > 0 {
		c.SetFocalLength(cfg.FocalLength)
	}
	return c
}

// SetFocalLength sets the vertical field of view from a lens focal length.
func (c *FollowCamera) SetFocalLength(focal float32) {
	filmHeight := FilmGauge / gomath.Max(float64(c.Aspect), 1)
	slope := 0.5 * filmHeight / float64(focal)
	c.FovY = float32(mgl32.RadToDeg(float32(2 * gomath.Atan(slope))))
}

// SetViewport updates the aspect ratio. Non-positive sizes are ignored.
func (c *FollowCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		if c.Aspect == 0 {
			c.Aspect = 1
		}
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Follow places the camera at target plus the offset and looks at target.
func (c *FollowCamera) Follow(target math.Vec3) {
	c.Position = target.Add(c.Offset)
	c.Target = target
	c.following = true
}

// Following reports whether Follow has been called.
func (c *FollowCamera) Following() bool {
	return c.following
}

// ViewMatrix returns the world-to-camera transform.
func (c *FollowCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position.GL(), c.Target.GL(), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *FollowCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *FollowCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Ray returns a world-space ray from the camera through normalized device
// coordinates (x, y), each in [-1, 1].
func (c *FollowCamera) Ray(ndcX, ndcY float32) (origin, dir math.Vec3) {
	inv := c.ViewProjection().Inv()
	p := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 0.5, 1})
	if p[3] != 0 {
		p = p.Mul(1 / p[3])
	}
	origin = c.Position
	dir = math.FromGL(p.Vec3()).Sub(origin).Normalize()
	return origin, dir
}

// Project maps a world point to normalized device coordinates.
func (c *FollowCamera) Project(p math.Vec3) (ndcX, ndcY float32) {
	v := c.ViewProjection().Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	if v[3] == 0 {
		return 0, 0
	}
	return v[0] / v[3], v[1] / v[3]
}

// PixelToNDC converts a pointer position in pixels to normalized device
// coordinates with +Y up.
func PixelToNDC(px, py float32, width, height int) (ndcX, ndcY float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	ndcX = px/float32(width)*2 - 1
	ndcY = -(py/float32(height))*2 + 1
	return ndcX, ndcY
}
