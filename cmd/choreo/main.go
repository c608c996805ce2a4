package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/larkwold/choreo/audio"
	"github.com/larkwold/choreo/config"
	"github.com/larkwold/choreo/drag"
	"github.com/larkwold/choreo/input"
	"github.com/larkwold/choreo/render"
)

var (
	configFlag = flag.String("config", "choreo.yaml", "Path to config file (missing file uses defaults)")
	muteFlag   = flag.Bool("mute", false, "Start with audio disabled")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	roster, err := cfg.Roster()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build roster: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before printing the stack so
	// the trace is readable and the shell is left usable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nCHOREO CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents | tcell.MouseMotionEvents)
	defer screen.DisableMouse()
	screen.EnableFocus()
	defer screen.DisableFocus()

	sound := audio.NewEngine()
	if cfg.Audio && !*muteFlag {
		if err := sound.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Audio initialization failed: %v (continuing without audio)\n", err)
		} else {
			defer sound.Stop()
		}
	}

	a := &app{
		screen:   screen,
		machine:  input.NewMachine(),
		size:     cfg.Size(),
		radius:   cfg.Radius,
		roster:   roster,
		ctl:      drag.NewController(cfg.Size(), roster),
		renderer: render.NewRenderer(screen, cfg.Size(), cfg.CellAspect),
		sound:    sound,
	}
	a.run()
}
