// Package config handles application configuration loading and management.
package config

import (
	gomath "math"
	"time"

	"github.com/Faultbox/folio3d/internal/engine/camera"
	"github.com/Faultbox/folio3d/internal/engine/character"
	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/internal/game"
	"github.com/Faultbox/folio3d/internal/game/content"
	"github.com/Faultbox/folio3d/internal/game/interaction"
	"github.com/Faultbox/folio3d/pkg/math"
)

// Config holds all application settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Scene       SceneConfig       `yaml:"scene"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Camera      CameraConfig      `yaml:"camera"`
	Interaction InteractionConfig `yaml:"interaction"`
	Content     content.Catalog   `yaml:"content"`
	Audio       AudioConfig       `yaml:"audio"`
	Screenshot  ScreenshotConfig  `yaml:"screenshot"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// SceneConfig holds the scene asset and the node name vocabulary.
type SceneConfig struct {
	Path  string      `yaml:"path"`  // .glb or .gltf file
	Demo  bool        `yaml:"demo"`  // use the built-in scene instead of Path
	Roles scene.Roles `yaml:"roles"` // exact node name -> role
}

// PhysicsConfig holds player movement tuning.
type PhysicsConfig struct {
	Gravity       float32 `yaml:"gravity"`
	Step          float32 `yaml:"step"`
	CapsuleRadius float32 `yaml:"capsule_radius"`
	CapsuleHeight float32 `yaml:"capsule_height"`
	MoveSpeed     float32 `yaml:"move_speed"`
	JumpHeight    float32 `yaml:"jump_height"`
	TurnSmoothing float32 `yaml:"turn_smoothing"`
	InitialFacing float32 `yaml:"initial_facing"`
}

// CameraConfig holds follow camera settings.
type CameraConfig struct {
	Offset      math.Vec3 `yaml:"offset"`
	Position    math.Vec3 `yaml:"position"`
	FOV         float32   `yaml:"fov"`
	FocalLength float32   `yaml:"focal_length"`
	Near        float32   `yaml:"near"`
	Far         float32   `yaml:"far"`
}

// InteractionConfig holds hover feedback settings.
type InteractionConfig struct {
	BounceHeight   float32       `yaml:"bounce_height"`
	BounceDuration time.Duration `yaml:"bounce_duration"`
}

// AudioConfig holds feedback sound settings.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Volume        float64 `yaml:"volume"`
	HoverSound    string  `yaml:"hover_sound"`    // optional WAV
	ActivateSound string  `yaml:"activate_sound"` // optional WAV
}

// ScreenshotConfig holds frame capture settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Portfolio",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Scene: SceneConfig{
			Path:  "portfolio.glb",
			Roles: scene.DefaultRoles(),
		},
		Physics: PhysicsConfig{
			Gravity:       30,
			Step:          0.03,
			CapsuleRadius: 1,
			CapsuleHeight: 1,
			MoveSpeed:     10,
			JumpHeight:    15,
			TurnSmoothing: 0.2,
			InitialFacing: gomath.Pi / 2,
		},
		Camera: CameraConfig{
			Offset:      math.Vec3{X: -30, Y: 49, Z: 90},
			Position:    math.Vec3{X: -40, Y: 49, Z: 90},
			FOV:         75,
			FocalLength: 120,
			Near:        0.1,
			Far:         1000,
		},
		Interaction: InteractionConfig{
			BounceHeight:   1,
			BounceDuration: 600 * time.Millisecond,
		},
		Content: content.DefaultCatalog(),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Game converts the settings into the simulation configuration.
func (c *Config) Game() game.Config {
	return game.Config{
		Movement: character.Config{
			Gravity:       c.Physics.Gravity,
			Step:          c.Physics.Step,
			CapsuleRadius: c.Physics.CapsuleRadius,
			CapsuleHeight: c.Physics.CapsuleHeight,
			MoveSpeed:     c.Physics.MoveSpeed,
			JumpHeight:    c.Physics.JumpHeight,
			TurnSmoothing: c.Physics.TurnSmoothing,
			InitialFacing: c.Physics.InitialFacing,
		},
		Camera: camera.Config{
			Offset:      c.Camera.Offset,
			Position:    c.Camera.Position,
			FovY:        c.Camera.FOV,
			FocalLength: c.Camera.FocalLength,
			Near:        c.Camera.Near,
			Far:         c.Camera.Far,
		},
		Interaction: interaction.Config{
			BounceHeight:   c.Interaction.BounceHeight,
			BounceDuration: c.Interaction.BounceDuration,
		},
		Roles:   c.Scene.Roles,
		Content: c.Content,
		Width:   c.Window.Width,
		Height:  c.Window.Height,
	}
}
