// Package game owns the simulation state and runs the per-frame tick.
package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/engine/camera"
	"github.com/Faultbox/folio3d/internal/engine/character"
	"github.com/Faultbox/folio3d/internal/engine/collision"
	"github.com/Faultbox/folio3d/internal/engine/picking"
	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/internal/engine/tween"
	"github.com/Faultbox/folio3d/internal/game/content"
	"github.com/Faultbox/folio3d/internal/game/interaction"
)

// ErrAssetLoad marks a scene that failed to load. The simulation stays inert.
var ErrAssetLoad = errors.New("asset load failed")

// Presenter is the UI side: cursor affordance and modal content.
type Presenter interface {
	SetCursor(c picking.Cursor)
	ShowContent(id string, entry content.Entry)
}

// Renderer draws a frame. It is called last in every tick.
type Renderer interface {
	Render(root *scene.Node, cam *camera.FollowCamera)
	Resize(width, height int)
}

// Config collects the settings of every subsystem.
type Config struct {
	Movement    character.Config
	Camera      camera.Config
	Interaction interaction.Config
	Roles       scene.Roles
	Content     content.Catalog
	Width       int
	Height      int
}

// DefaultConfig returns the portfolio scene defaults.
func DefaultConfig() Config {
	return Config{
		Movement:    character.DefaultConfig(),
		Camera:      camera.DefaultConfig(),
		Interaction: interaction.DefaultConfig(),
		Roles:       scene.DefaultRoles(),
		Content:     content.DefaultCatalog(),
		Width:       1280,
		Height:      720,
	}
}

// SimulationState is everything the tick reads or writes.
type SimulationState struct {
	Scene   *scene.Node
	Level   *collision.Octree
	Player  *character.Controller
	Camera  *camera.FollowCamera
	Picker  *picking.Picker
	Targets *interaction.Controller
	Tweens  *tween.Scheduler
	Loaded  bool
}

// Game is the frame loop. It is driven from a single goroutine: events and
// Tick must not be called concurrently.
type Game struct {
	cfg       Config
	state     SimulationState
	presenter Presenter
	renderer  Renderer

	width, height int
	cursor        picking.Cursor
	cursorSent    bool
	ticks         uint64

	log *zap.Logger
}

// New creates a game with an empty scene. presenter and renderer may be nil.
func New(cfg Config, presenter Presenter, renderer Renderer, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:       cfg,
		presenter: presenter,
		renderer:  renderer,
		width:     cfg.Width,
		height:    cfg.Height,
		log:       log,
	}

	tweens := tween.NewScheduler()
	g.state = SimulationState{
		Player:  character.NewController(cfg.Movement, log.Named("player")),
		Camera:  camera.NewFollowCamera(cfg.Camera, cfg.Width, cfg.Height),
		Picker:  picking.NewPicker(log.Named("picking")),
		Tweens:  tweens,
		Targets: interaction.NewController(cfg.Interaction, tweens, g.activate, log.Named("interaction")),
	}
	return g
}

// State exposes the simulation state.
func (g *Game) State() *SimulationState {
	return &g.state
}

// Ticks returns the number of completed ticks.
func (g *Game) Ticks() uint64 {
	return g.ticks
}

// OnSceneLoaded is the one-time completion of the asset load. On error the
// failure is logged and the game stays inert. Later calls are ignored.
func (g *Game) OnSceneLoaded(root *scene.Node, err error) error {
	if g.state.Loaded {
		g.log.Warn("scene already loaded, ignoring")
		return nil
	}
	if err == nil && root == nil {
		err = errors.New("empty scene")
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrAssetLoad, err)
		g.log.Error("scene load failed", zap.Error(err))
		return err
	}

	b := g.cfg.Roles.Resolve(root)
	g.state.Scene = root

	if b.Collider != nil {
		g.state.Level = collision.Build(b.Collider.WorldTriangles())
		b.Collider.Visible = false
		nodes, depth := g.state.Level.Stats()
		g.log.Info("level collider indexed",
			zap.String("node", b.Collider.Name),
			zap.Int("triangles", g.state.Level.Len()),
			zap.Int("nodes", nodes),
			zap.Int("depth", depth),
		)
	} else {
		g.state.Level = collision.Build(nil)
		g.log.Warn("no collider node in scene")
	}
	g.state.Player.SetLevel(g.state.Level)

	if b.Player != nil {
		g.state.Player.Attach(b.Player)
	} else {
		g.log.Warn("no player node in scene")
	}

	for _, n := range b.Targets {
		g.state.Picker.Register(n.Name, n)
		g.state.Targets.Add(n.Name, n)
	}
	if len(b.Duplicates) > 0 {
		g.log.Warn("duplicate target nodes ignored", zap.Strings("targets", b.Duplicates))
	}
	if missing := g.missingTargets(b.Targets); len(missing) > 0 {
		g.log.Warn("targets missing from scene", zap.Strings("targets", missing))
	}
	if missing := g.cfg.Content.Missing(g.cfg.Roles.TargetNames()); len(missing) > 0 {
		g.log.Warn("targets without content", zap.Strings("targets", missing))
	}

	g.state.Loaded = true
	g.log.Info("scene ready", zap.Int("targets", len(b.Targets)))
	return nil
}

func (g *Game) missingTargets(found []*scene.Node) []string {
	have := make(map[string]bool, len(found))
	for _, n := range found {
		have[n.Name] = true
	}
	var missing []string
	for _, name := range g.cfg.Roles.TargetNames() {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// HandleKey forwards a key-down event to the player controller.
func (g *Game) HandleKey(key string) bool {
	return g.state.Player.HandleKey(key)
}

// HandlePointerMove records a pointer position in window pixels.
func (g *Game) HandlePointerMove(px, py float32) {
	x, y := camera.PixelToNDC(px, py, g.width, g.height)
	g.state.Picker.UpdatePointer(x, y)
}

// HandleClick activates the hovered target, if any.
func (g *Game) HandleClick() bool {
	hovered, ok := g.state.Picker.Hovered()
	if !ok {
		return false
	}
	return g.state.Targets.Activate(hovered)
}

// Resize updates the camera aspect ratio and the renderer viewport.
func (g *Game) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.state.Camera.SetViewport(width, height)
	if g.renderer != nil {
		g.renderer.Resize(width, height)
	}
}

// Tick runs one frame: player step and collision, camera follow, pointer
// ray cast, hover animations, tween advance by elapsed, then render. The
// player always advances by its fixed step regardless of elapsed.
func (g *Game) Tick(elapsed time.Duration) {
	s := &g.state

	s.Player.Update()

	if pos, ok := s.Player.Position(); ok {
		s.Camera.Follow(pos)
	}

	hovered, _ := s.Picker.Pick(s.Camera)
	g.signalCursor(s.Picker.Cursor())

	s.Targets.Update(hovered)
	s.Tweens.Update(elapsed)

	if g.renderer != nil && s.Scene != nil {
		g.renderer.Render(s.Scene, s.Camera)
	}
	g.ticks++
}

func (g *Game) signalCursor(c picking.Cursor) {
	if g.cursorSent && c == g.cursor {
		return
	}
	g.cursor = c
	g.cursorSent = true
	if g.presenter != nil {
		g.presenter.SetCursor(c)
	}
}

func (g *Game) activate(id string) {
	entry, ok := g.cfg.Content.Lookup(id)
	if !ok {
		entry = content.Entry{Title: id}
	}
	if g.presenter != nil {
		g.presenter.ShowContent(id, entry)
	}
}
