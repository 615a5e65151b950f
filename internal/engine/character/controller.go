// Package character drives the player model: keyboard impulses, gravity,
// capsule collision against the level, and smoothed turn-to-face rotation.
package character

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/engine/collision"
	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/pkg/math"
)

// Collider answers capsule penetration queries against static geometry.
type Collider interface {
	IntersectCapsule(c collision.Capsule) (collision.Contact, bool)
}

// Config holds movement tuning.
type Config struct {
	Gravity       float32 // units/s^2
	Step          float32 // fixed simulation step, seconds
	CapsuleRadius float32
	CapsuleHeight float32
	MoveSpeed     float32 // impulse per key press, units/s
	JumpHeight    float32 // reserved; no key applies it
	TurnSmoothing float32 // fraction of the remaining turn applied per step
	InitialFacing float32 // radians
}

// DefaultConfig returns the tuning of the portfolio scene.
func DefaultConfig() Config {
	return Config{
		Gravity:       30,
		Step:          0.03,
		CapsuleRadius: 1,
		CapsuleHeight: 1,
		MoveSpeed:     10,
		JumpHeight:    15,
		TurnSmoothing: 0.2,
		InitialFacing: gomath.Pi / 2,
	}
}

// Phase is the vertical movement state.
type Phase int

const (
	Airborne Phase = iota
	Grounded
)

// String returns the phase name.
func (p Phase) String() string {
	if p == Grounded {
		return "grounded"
	}
	return "airborne"
}

// State is the velocity and facing state of the player.
type State struct {
	Velocity      math.Vec3
	OnFloor       bool
	IsMoving      bool // a key impulse is in flight until the capsule lands
	FacingTarget  float32
	FacingCurrent float32
}

// Phase derives Grounded or Airborne from the floor flag.
func (s State) Phase() Phase {
	if s.OnFloor {
		return Grounded
	}
	return Airborne
}

// Controller owns the player capsule and moves it one fixed step per Update.
type Controller struct {
	cfg     Config
	state   State
	capsule collision.Capsule
	node    *scene.Node
	level   Collider
	log     *zap.Logger
}

// NewController creates a controller with no model attached. Until Attach is
// called, Update is a no-op.
func NewController(cfg Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		cfg: cfg,
		state: State{
			FacingTarget: cfg.InitialFacing,
		},
		capsule: collision.NewCapsule(math.Vec3{}, cfg.CapsuleRadius, cfg.CapsuleHeight),
		log:     log,
	}
}

// Attach binds the player model and places the capsule at its feet.
func (c *Controller) Attach(node *scene.Node) {
	if node == nil {
		return
	}
	c.node = node
	c.capsule = collision.NewCapsule(node.Position, c.cfg.CapsuleRadius, c.cfg.CapsuleHeight)
	c.state.FacingCurrent = node.Yaw()
	c.log.Debug("player attached",
		zap.String("node", node.Name),
		zap.Float32("x", node.Position.X),
		zap.Float32("y", node.Position.Y),
		zap.Float32("z", node.Position.Z),
	)
}

// SetLevel sets the static geometry the capsule collides with.
func (c *Controller) SetLevel(level Collider) {
	c.level = level
}

// Attached reports whether a player model is bound.
func (c *Controller) Attached() bool {
	return c.node != nil
}

// HandleKey applies a movement impulse for a bound key. It returns false and
// changes nothing if the key is unbound or a move is already in flight.
func (c *Controller) HandleKey(key string) bool {
	if c.state.IsMoving {
		return false
	}
	dir, ok := ParseKey(key)
	if !ok {
		return false
	}

	c.state.Velocity = c.state.Velocity.Add(dir.Impulse(c.cfg.MoveSpeed))
	c.state.FacingTarget = dir.Facing()
	c.state.IsMoving = true
	c.log.Debug("move", zap.Stringer("dir", dir))
	return true
}

// Update advances the player one fixed step: gravity, translation, collision
// response, node placement, then turning.
func (c *Controller) Update() {
	if c.node == nil {
		return
	}
	dt := c.cfg.Step

	if !c.state.OnFloor {
		c.state.Velocity.Y -= c.cfg.Gravity * dt
	}

	c.capsule.Translate(c.state.Velocity.Scale(dt))
	c.resolveCollisions()

	c.node.Position = c.capsule.Feet()

	c.state.FacingCurrent = math.LerpAngle(c.state.FacingCurrent, c.state.FacingTarget, c.cfg.TurnSmoothing)
	c.node.SetYaw(c.state.FacingCurrent)
}

func (c *Controller) resolveCollisions() {
	wasOnFloor := c.state.OnFloor
	c.state.OnFloor = false

	if c.level != nil {
		if contact, ok := c.level.IntersectCapsule(c.capsule); ok {
			c.state.OnFloor = contact.Normal.Y > 0
			c.capsule.Translate(contact.Push())
		}
	}

	if c.state.OnFloor {
		c.state.IsMoving = false
		c.state.Velocity.X = 0
		c.state.Velocity.Z = 0
		if !wasOnFloor {
			c.log.Debug("landed", zap.Float32("vy", c.state.Velocity.Y))
		}
	}
}

// State returns a copy of the movement state.
func (c *Controller) State() State {
	return c.state
}

// Capsule returns the current collision capsule.
func (c *Controller) Capsule() collision.Capsule {
	return c.capsule
}

// Position returns the world position of the model's feet, and false if no
// model is attached.
func (c *Controller) Position() (math.Vec3, bool) {
	if c.node == nil {
		return math.Vec3{}, false
	}
	return c.node.WorldPosition(), true
}
