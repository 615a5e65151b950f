// Package main is the entry point for the portfolio scene viewer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/config"
	"github.com/Faultbox/folio3d/internal/logger"
)

var flagOpen = flag.Bool("open", false, "Choose the scene file in a dialog")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Folio3D ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if !cfg.Scene.Demo && needsScenePrompt(cfg.Scene.Path) {
		path, err := chooseScene()
		if err != nil {
			logger.Error("no scene selected", zap.Error(err))
			os.Exit(1)
		}
		cfg.Scene.Path = path
	}

	app, err := newApp(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("run error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}

// needsScenePrompt reports whether the scene file has to be picked by hand.
func needsScenePrompt(path string) bool {
	if *flagOpen {
		return true
	}
	_, err := os.Stat(path)
	return err != nil
}

// chooseScene asks for a glTF scene with a native file dialog.
func chooseScene() (string, error) {
	path, err := dialog.File().
		Filter("glTF scenes", "glb", "gltf").
		Filter("All Files", "*").
		Title("Open scene").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", errors.New("scene dialog cancelled")
	}
	if err != nil {
		return "", fmt.Errorf("scene dialog: %w", err)
	}
	return path, nil
}
