// Command windmill draws the Don Quixote scene: a sky, grass, a house with a
// roof, a windmill fan and a sun, on an OpenGL window, a terminal or a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/config"
	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/internal/app"

	_ "github.com/gogpu/windmill/backend/opengl"
	_ "github.com/gogpu/windmill/backend/software"
	_ "github.com/gogpu/windmill/backend/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "windmill: %v\n", err)
		if errors.Is(err, driver.ErrWindow) {
			fmt.Fprintln(os.Stderr, "windmill: failed to create the window")
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		backendFlg = flag.String("backend", "", "backend: gl, software or term")
		output     = flag.String("o", "", "PNG output file (software backend)")
		frames     = flag.Int("frames", 0, "frames to draw before exiting (software backend)")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Flags override the file only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backendFlg
		case "o":
			cfg.Output.Path = *output
		case "frames":
			cfg.Output.Frames = *frames
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "v":
			if *verbose {
				cfg.Log.Level = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal backend owns the screen; its logs would corrupt it.
	if cfg.Backend != "term" {
		if logger := cfg.Log.NewLogger(os.Stderr); logger != nil {
			windmill.SetLogger(logger)
		}
	}
	windmill.Logger().Debug("windmill starting", "version", windmill.Version)

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return a.Run(ctx)
}
