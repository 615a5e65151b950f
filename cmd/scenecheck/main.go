// scenecheck loads a portfolio scene without a window and reports whether it
// can become interactive: role bindings, collider index, and a scripted walk.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Faultbox/folio3d/internal/assets"
	"github.com/Faultbox/folio3d/internal/config"
	"github.com/Faultbox/folio3d/internal/engine/camera"
	"github.com/Faultbox/folio3d/internal/engine/scene"
	"github.com/Faultbox/folio3d/internal/game"
	"github.com/Faultbox/folio3d/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "walk":
		cmdWalk(args)
	case "pick":
		cmdPick(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenecheck - portfolio scene diagnostics

Usage:
  scenecheck <command> [options] [scene.glb]

Commands:
  info  [scene]              Show nodes bound to roles and collider stats
  walk  [scene] [keys...]    Press keys (one per tick) and print player positions
  pick  [scene] -x X -y Y    Cast a ray through window pixel X,Y
  init  [path]               Write the default config file

Common options:
  -config <file>   Config file (defaults < file)
  -demo            Use the built-in demo scene
  -debug           Verbose logging

Examples:
  scenecheck info portfolio.glb
  scenecheck walk -demo -ticks 60 w w d
  scenecheck pick -demo -x 640 -y 300`)
}

type common struct {
	configPath *string
	demo       *bool
	debug      *bool
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		configPath: fs.String("config", "", "Config file"),
		demo:       fs.Bool("demo", false, "Use the built-in demo scene"),
		debug:      fs.Bool("debug", false, "Verbose logging"),
	}
}

// setup loads the config and scene and returns a headless game with the
// scene attached. The first positional argument, if any, is the scene path.
func setup(c common, positional []string) (*game.Game, *config.Config, []string) {
	cfg, err := config.LoadFile(*c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := "warn"
	if *c.debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	var root *scene.Node
	if *c.demo || cfg.Scene.Demo {
		root = assets.DemoScene()
	} else {
		path := cfg.Scene.Path
		if len(positional) > 0 {
			path, positional = positional[0], positional[1:]
		}
		root, err = assets.LoadScene(path)
	}

	g := game.New(cfg.Game(), nil, nil, logger.Named("game"))
	if err := g.OnSceneLoaded(root, err); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return g, cfg, positional
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	c := commonFlags(fs)
	fs.Parse(args)

	g, cfg, _ := setup(c, fs.Args())
	defer logger.Sync()
	st := g.State()

	b := cfg.Scene.Roles.Resolve(st.Scene)
	fmt.Printf("Nodes:    %d\n", countNodes(st.Scene))
	fmt.Printf("Player:   %s\n", nodeLabel(b.Player))
	fmt.Printf("Collider: %s\n", nodeLabel(b.Collider))

	nodes, depth := st.Level.Stats()
	fmt.Printf("Octree:   %d triangles, %d nodes, depth %d\n", st.Level.Len(), nodes, depth)
	if !st.Level.Bounds().IsEmpty() {
		bb := st.Level.Bounds()
		fmt.Printf("Bounds:   (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
			bb.Min.X, bb.Min.Y, bb.Min.Z, bb.Max.X, bb.Max.Y, bb.Max.Z)
	}

	fmt.Println()
	fmt.Println("Targets:")
	found := make(map[string]bool)
	for _, n := range b.Targets {
		found[n.Name] = true
	}
	for _, name := range cfg.Scene.Roles.TargetNames() {
		status := "missing"
		if found[name] {
			status = "ok"
		}
		entry, ok := cfg.Content.Lookup(name)
		title := "(no content)"
		if ok {
			title = entry.Title
		}
		fmt.Printf("  %-12s %-8s %s\n", name, status, title)
	}
}

func cmdWalk(args []string) {
	fs := flag.NewFlagSet("walk", flag.ExitOnError)
	c := commonFlags(fs)
	ticks := fs.Int("ticks", 40, "Number of ticks to simulate")
	every := fs.Int("every", 10, "Print the position every N ticks")
	fs.Parse(args)

	g, _, keys := setup(c, fs.Args())
	defer logger.Sync()
	st := g.State()

	if !st.Player.Attached() {
		fmt.Fprintln(os.Stderr, "Error: scene has no player node")
		os.Exit(1)
	}

	frame := time.Second / 60
	for i := 0; i < *ticks; i++ {
		if i < len(keys) {
			accepted := g.HandleKey(keys[i])
			fmt.Printf("tick %3d  key %-10s accepted=%v\n", i, keys[i], accepted)
		}
		g.Tick(frame)
		if *every > 0 && (i+1)%*every == 0 {
			printPlayer(g, i+1)
		}
	}
	printPlayer(g, *ticks)
}

func cmdPick(args []string) {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	c := commonFlags(fs)
	x := fs.Float64("x", 0, "Pointer X in window pixels")
	y := fs.Float64("y", 0, "Pointer Y in window pixels")
	settle := fs.Int("ticks", 1, "Ticks to run before picking")
	fs.Parse(args)

	g, cfg, _ := setup(c, fs.Args())
	defer logger.Sync()
	st := g.State()

	g.HandlePointerMove(float32(*x), float32(*y))
	for i := 0; i < *settle; i++ {
		g.Tick(time.Second / 60)
	}

	ndcX, ndcY := camera.PixelToNDC(float32(*x), float32(*y), cfg.Window.Width, cfg.Window.Height)
	hits := st.Picker.Intersect(st.Camera)
	fmt.Printf("Pointer: (%.0f, %.0f) ndc (%.3f, %.3f)\n", *x, *y, ndcX, ndcY)
	if len(hits) == 0 {
		fmt.Println("No target under pointer (cursor: default)")
		return
	}
	for _, h := range hits {
		fmt.Printf("  %-12s mesh %-16s distance %.2f\n", h.ID, h.Mesh.Name, h.Distance)
	}
	hovered, _ := st.Picker.Hovered()
	fmt.Printf("Hovered: %s (cursor: %s)\n", hovered, st.Picker.Cursor())
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing file")
	fs.Parse(args)

	cfg := config.Default()
	var err error
	path := ""
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil && !*force {
			fmt.Fprintf(os.Stderr, "Error: %s exists (use -f to overwrite)\n", path)
			os.Exit(1)
		}
		err = cfg.SaveTo(path)
	} else {
		path = "user config directory"
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

func printPlayer(g *game.Game, tick int) {
	st := g.State()
	pos, _ := st.Player.Position()
	s := st.Player.State()
	fmt.Printf("tick %3d  pos (%7.2f, %7.2f, %7.2f)  %s moving=%v facing=%.2f\n",
		tick, pos.X, pos.Y, pos.Z, s.Phase(), s.IsMoving, s.FacingCurrent)
}

func countNodes(root *scene.Node) int {
	n := 0
	root.Traverse(func(*scene.Node) { n++ })
	return n
}

func nodeLabel(n *scene.Node) string {
	if n == nil {
		return "missing"
	}
	p := n.WorldPosition()
	return fmt.Sprintf("%s at (%.2f, %.2f, %.2f)", n.Name, p.X, p.Y, p.Z)
}
