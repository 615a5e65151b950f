package main

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/assets"
	"github.com/Faultbox/folio3d/internal/config"
	"github.com/Faultbox/folio3d/internal/engine/audio"
	"github.com/Faultbox/folio3d/internal/engine/debug"
	"github.com/Faultbox/folio3d/internal/engine/input"
	"github.com/Faultbox/folio3d/internal/engine/lighting"
	"github.com/Faultbox/folio3d/internal/engine/renderer"
	"github.com/Faultbox/folio3d/internal/engine/window"
	"github.com/Faultbox/folio3d/internal/game"
	"github.com/Faultbox/folio3d/internal/logger"
)

// Frames longer than this (window drags, modal dialogs) are clamped so hover
// animations do not skip to their end.
const maxFrameTime = 100 * time.Millisecond

type app struct {
	cfg      *config.Config
	win      *window.Window
	input    *input.Input
	renderer *renderer.Renderer
	sounds   *audio.Manager
	game     *game.Game

	shots       *debug.ScreenshotCapture
	shotPending bool

	cancel  context.CancelFunc
	loading <-chan assets.Result

	log *zap.Logger
}

func newApp(cfg *config.Config) (*app, error) {
	a := &app{
		cfg:   cfg,
		input: input.New(),
		shots: debug.NewScreenshotCapture(cfg.Screenshot.Dir, "folio", cfg.Screenshot.Format),
		log:   logger.Named("app"),
	}

	var err error
	a.win, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	dw, dh := a.win.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:    dw,
		Height:   dh,
		Lighting: lighting.Default(),
	}, logger.Named("renderer"))
	if err != nil {
		a.win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	if cfg.Audio.Enabled {
		a.sounds = audio.New(audio.Config{
			Volume:        cfg.Audio.Volume,
			HoverSound:    cfg.Audio.HoverSound,
			ActivateSound: cfg.Audio.ActivateSound,
		}, logger.Named("audio"))
		if err := a.sounds.Init(); err != nil {
			a.log.Warn("audio unavailable, continuing silently", zap.Error(err))
			a.sounds = nil
		}
	}

	gcfg := cfg.Game()
	gcfg.Width, gcfg.Height = a.win.GetSize()
	a.game = game.New(gcfg, newPresenter(a.win, a.sounds, a.log), &viewport{Renderer: a.renderer, win: a.win}, logger.Named("game"))

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if cfg.Scene.Demo {
		a.log.Info("using built-in demo scene")
		_ = a.game.OnSceneLoaded(assets.DemoScene(), nil)
	} else {
		a.log.Info("loading scene", zap.String("path", cfg.Scene.Path))
		a.loading = assets.LoadAsync(ctx, cfg.Scene.Path)
	}

	return a, nil
}

// Run drives the frame loop until the window closes.
func (a *app) Run() error {
	var frameBudget time.Duration
	if a.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}

	last := time.Now()
	for {
		frameStart := time.Now()
		elapsed := min(frameStart.Sub(last), maxFrameTime)
		last = frameStart

		a.pollScene()

		if quit := a.input.Update(); quit {
			return nil
		}
		if a.dispatch() {
			return nil
		}

		a.game.Tick(elapsed)
		if a.shotPending {
			a.shotPending = false
			a.capture()
		}
		a.win.SwapBuffers()

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
}

// capture saves the frame just rendered.
func (a *app) capture() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// pollScene hands a finished load to the game without blocking the loop.
func (a *app) pollScene() {
	if a.loading == nil {
		return
	}
	select {
	case res := <-a.loading:
		a.loading = nil
		_ = a.game.OnSceneLoaded(res.Root, res.Err)
	default:
	}
}

// dispatch forwards this frame's input to the game. Returns true on quit.
func (a *app) dispatch() bool {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventKeyDown:
			switch e.Key {
			case "escape":
				return true
			case "f12":
				a.shotPending = true
				continue
			}
			a.game.HandleKey(e.Key)
		case input.EventMouseMove:
			a.game.HandlePointerMove(float32(e.MouseX), float32(e.MouseY))
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.game.HandlePointerMove(float32(e.MouseX), float32(e.MouseY))
				a.game.HandleClick()
			}
		case input.EventWindowResize:
			a.game.Resize(e.Width, e.Height)
		}
	}
	return false
}

// Close releases the loader, audio, renderer and window.
func (a *app) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.sounds != nil {
		a.sounds.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
}

// viewport keeps the GL viewport in framebuffer pixels while the game works
// in window coordinates. They differ on high-DPI displays.
type viewport struct {
	*renderer.Renderer
	win *window.Window
}

func (v *viewport) Resize(_, _ int) {
	v.Renderer.Resize(v.win.DrawableSize())
}
