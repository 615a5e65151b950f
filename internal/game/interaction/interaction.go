// Package interaction animates hovered targets and turns clicks into
// activation events.
package interaction

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/internal/engine/tween"
)

// AnimState is the bounce state of a target.
type AnimState int

const (
	Idle AnimState = iota
	Animating
)

// String returns the state name.
func (s AnimState) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Config holds the hover bounce settings shared by all targets.
type Config struct {
	BounceHeight   float32
	BounceDuration time.Duration // full up-and-down cycle
}

// DefaultConfig returns the bounce used by the portfolio scene.
func DefaultConfig() Config {
	return Config{
		BounceHeight:   1,
		BounceDuration: 600 * time.Millisecond,
	}
}

// Target is an interactive scene element.
type Target struct {
	ID             string
	Node           *scene.Node
	State          AnimState
	BounceHeight   float32
	BounceDuration time.Duration
}

// ActivateFunc receives the id of a clicked target.
type ActivateFunc func(id string)

// Controller owns the interactive targets.
type Controller struct {
	cfg      Config
	targets  []*Target
	byID     map[string]*Target
	animator tween.Animator
	activate ActivateFunc
	log      *zap.Logger
}

// NewController creates a controller that animates through animator and
// reports clicks to activate. activate may be nil.
func NewController(cfg Config, animator tween.Animator, activate ActivateFunc, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		cfg:      cfg,
		byID:     make(map[string]*Target),
		animator: animator,
		activate: activate,
		log:      log,
	}
}

// Add registers a target for node. Adding an id twice replaces the node.
func (c *Controller) Add(id string, node *scene.Node) *Target {
	if t, ok := c.byID[id]; ok {
		t.Node = node
		return t
	}
	t := &Target{
		ID:             id,
		Node:           node,
		BounceHeight:   c.cfg.BounceHeight,
		BounceDuration: c.cfg.BounceDuration,
	}
	c.targets = append(c.targets, t)
	c.byID[id] = t
	return t
}

// Target returns the target with the given id.
func (c *Controller) Target(id string) (*Target, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Targets returns all targets in registration order.
func (c *Controller) Targets() []*Target {
	return c.targets
}

// Update starts a bounce on the hovered target if it is idle. It is level
// triggered: a target still hovered when its bounce ends bounces again.
func (c *Controller) Update(hovered string) {
	if hovered == "" {
		return
	}
	t, ok := c.byID[hovered]
	if !ok || t.Node == nil || t.State != Idle {
		return
	}
	c.bounce(t)
}

func (c *Controller) bounce(t *Target) {
	if c.animator == nil {
		return
	}
	node := t.Node
	base := node.Position.Y
	t.State = Animating
	c.animator.Animate(tween.Tween{
		From:     base,
		To:       base + t.BounceHeight,
		Duration: t.BounceDuration,
		Yoyo:     true,
		Apply: func(v float32) {
			node.Position.Y = v
		},
		OnComplete: func() {
			node.Position.Y = base
			t.State = Idle
		},
	})
	c.log.Debug("bounce", zap.String("target", t.ID))
}

// Activate emits the activation event for the hovered target. It does
// nothing when no known target is hovered.
func (c *Controller) Activate(hovered string) bool {
	if hovered == "" {
		return false
	}
	if _, ok := c.byID[hovered]; !ok {
		return false
	}
	c.log.Info("target activated", zap.String("target", hovered))
	if c.activate != nil {
		c.activate(hovered)
	}
	return true
}
