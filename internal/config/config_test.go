package config

import (
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test physics defaults
	if cfg.Physics.Gravity != 30 {
		t.Errorf("expected gravity 30, got %f", cfg.Physics.Gravity)
	}
	if cfg.Physics.Step != 0.03 {
		t.Errorf("expected step 0.03, got %f", cfg.Physics.Step)
	}
	if cfg.Physics.MoveSpeed != 10 {
		t.Errorf("expected move speed 10, got %f", cfg.Physics.MoveSpeed)
	}
	if cfg.Physics.TurnSmoothing != 0.2 {
		t.Errorf("expected turn smoothing 0.2, got %f", cfg.Physics.TurnSmoothing)
	}
	if cfg.Physics.InitialFacing != gomath.Pi/2 {
		t.Errorf("expected initial facing pi/2, got %f", cfg.Physics.InitialFacing)
	}

	// Test camera defaults
	if cfg.Camera.Offset != (math.Vec3{X: -30, Y: 49, Z: 90}) {
		t.Errorf("unexpected camera offset %v", cfg.Camera.Offset)
	}
	if cfg.Camera.FocalLength != 120 {
		t.Errorf("expected focal length 120, got %f", cfg.Camera.FocalLength)
	}

	// Test interaction defaults
	if cfg.Interaction.BounceHeight != 1 {
		t.Errorf("expected bounce height 1, got %f", cfg.Interaction.BounceHeight)
	}
	if cfg.Interaction.BounceDuration != 600*time.Millisecond {
		t.Errorf("expected bounce duration 600ms, got %v", cfg.Interaction.BounceDuration)
	}

	// Test scene defaults
	if cfg.Scene.Roles["mouse"] != scene.RolePlayer {
		t.Error("expected mouse to be the player")
	}
	if len(cfg.Content) != 3 {
		t.Errorf("expected 3 content entries, got %d", len(cfg.Content))
	}

	// Test audio and screenshot defaults
	if !cfg.Audio.Enabled || cfg.Audio.Volume != 0.5 {
		t.Errorf("expected audio enabled at 0.5, got %+v", cfg.Audio)
	}
	if cfg.Screenshot.Format != "png" {
		t.Errorf("expected png screenshots, got %s", cfg.Screenshot.Format)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

scene:
  path: "models/room.glb"
  roles:
    hero: player
    mouse: none

physics:
  gravity: 20
  move_speed: 6

camera:
  offset: {x: 0, y: 10, z: 20}
  focal_length: 0
  fov: 60

interaction:
  bounce_height: 0.5
  bounce_duration: 750ms

content:
  aboutme:
    title: "Hello"
    body: "It's me."
    link:
      label: "Site"
      url: "https://example.com"

logging:
  level: "debug"
  log_file: "portfolio.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.FPSLimit != 144 {
		t.Errorf("expected fps_limit 144, got %d", cfg.Window.FPSLimit)
	}
	if cfg.Scene.Path != "models/room.glb" {
		t.Errorf("expected scene path models/room.glb, got %s", cfg.Scene.Path)
	}

	// Role and content maps merge with the defaults
	if cfg.Scene.Roles["hero"] != scene.RolePlayer {
		t.Error("expected hero to be the player")
	}
	if cfg.Scene.Roles["mouse"] != scene.RoleNone {
		t.Error("expected mouse to be unbound")
	}
	if cfg.Scene.Roles["ground_collider"] != scene.RoleCollider {
		t.Error("expected default collider role to be kept")
	}
	if cfg.Content["aboutme"].Title != "Hello" || cfg.Content["aboutme"].Link == nil {
		t.Errorf("unexpected aboutme content %+v", cfg.Content["aboutme"])
	}
	if _, ok := cfg.Content["projects"]; !ok {
		t.Error("expected default projects content to be kept")
	}

	// Unset fields keep defaults
	if cfg.Physics.Gravity != 20 || cfg.Physics.MoveSpeed != 6 {
		t.Errorf("unexpected physics %+v", cfg.Physics)
	}
	if cfg.Physics.Step != 0.03 {
		t.Errorf("expected default step, got %f", cfg.Physics.Step)
	}
	if cfg.Camera.Offset != (math.Vec3{Y: 10, Z: 20}) {
		t.Errorf("unexpected camera offset %v", cfg.Camera.Offset)
	}
	if cfg.Camera.Far != 1000 {
		t.Errorf("expected default far plane, got %f", cfg.Camera.Far)
	}
	if cfg.Interaction.BounceDuration != 750*time.Millisecond {
		t.Errorf("expected bounce duration 750ms, got %v", cfg.Interaction.BounceDuration)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "portfolio.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownRole(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "roles.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  roles:\n    mouse: wizard\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for unknown role, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero step", func(c *Config) { c.Physics.Step = 0 }, "physics.step"},
		{"zero radius", func(c *Config) { c.Physics.CapsuleRadius = 0 }, "capsule_radius"},
		{"smoothing above one", func(c *Config) { c.Physics.TurnSmoothing = 1.5 }, "turn_smoothing"},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }, "near/far"},
		{"negative bounce", func(c *Config) { c.Interaction.BounceDuration = -time.Second }, "bounce_duration"},
		{"loud audio", func(c *Config) { c.Audio.Volume = 1.5 }, "audio.volume"},
		{"no scene", func(c *Config) { c.Scene.Path = "" }, "scene.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	cfg := Default()
	cfg.Scene.Path = ""
	cfg.Scene.Demo = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("demo scene without path should validate: %v", err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Interaction.BounceDuration = 2 * time.Second
	cfg.Scene.Roles["statue"] = scene.RoleTarget
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", loaded.Window.Width)
	}
	if loaded.Interaction.BounceDuration != 2*time.Second {
		t.Errorf("expected bounce 2s, got %v", loaded.Interaction.BounceDuration)
	}
	if loaded.Scene.Roles["statue"] != scene.RoleTarget {
		t.Error("expected statue role to survive the round trip")
	}
	if loaded.Camera.Offset != cfg.Camera.Offset {
		t.Errorf("camera offset %v, want %v", loaded.Camera.Offset, cfg.Camera.Offset)
	}

	if _, err := LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should return defaults: %v", err)
	}
}

func TestGameConfig(t *testing.T) {
	cfg := Default()
	cfg.Physics.MoveSpeed = 7
	cfg.Camera.FOV = 50
	cfg.Interaction.BounceHeight = 2

	g := cfg.Game()
	if g.Movement.MoveSpeed != 7 || g.Movement.Gravity != 30 {
		t.Errorf("unexpected movement %+v", g.Movement)
	}
	if g.Camera.FovY != 50 || g.Camera.FocalLength != 120 {
		t.Errorf("unexpected camera %+v", g.Camera)
	}
	if g.Interaction.BounceHeight != 2 {
		t.Errorf("unexpected interaction %+v", g.Interaction)
	}
	if g.Width != 1280 || g.Height != 720 {
		t.Errorf("unexpected size %dx%d", g.Width, g.Height)
	}
	if len(g.Roles) != len(cfg.Scene.Roles) || len(g.Content) != len(cfg.Content) {
		t.Error("roles or content not carried over")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "scene flag",
			setup: func() { *flagScene = "other.glb" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Path != "other.glb" || cfg.Scene.Demo {
					t.Errorf("expected scene other.glb, got %+v", cfg.Scene.Path)
				}
			},
			teardown: func() { *flagScene = "" },
		},
		{
			name:  "demo flag",
			setup: func() { *flagDemo = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Scene.Demo {
					t.Error("expected demo scene with demo flag")
				}
			},
			teardown: func() { *flagDemo = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio disabled with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}
