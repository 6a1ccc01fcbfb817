// Package app assembles the windmill scene from a configuration: it opens
// the backend target, builds and uploads the shapes, and runs the frame
// driver over the default scene.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/anim"
	"github.com/gogpu/windmill/backend"
	"github.com/gogpu/windmill/config"
	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/scene"
	"github.com/gogpu/windmill/shader"
	"github.com/gogpu/windmill/shape"
	"github.com/gogpu/windmill/store"
)

// App is a running scene: the opened target, the uploaded buffers and the
// frame driver that owns the animation state.
type App struct {
	target   backend.Target
	store    *store.Store
	composer *scene.Composer
	driver   *driver.Driver
}

// Options converts the configuration to target options.
func Options(cfg config.Config) backend.Options {
	return backend.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		GLSL: []shader.Info{
			{Stage: shader.Vertex, Path: cfg.Shaders.Vertex},
			{Stage: shader.Fragment, Path: cfg.Shaders.Fragment},
		},
		WGSL: []shader.Info{
			{Stage: shader.Vertex, Path: cfg.Shaders.WGSL},
			{Stage: shader.Fragment, Path: cfg.Shaders.WGSL},
		},
		Frames:      cfg.Output.Frames,
		FrameTime:   cfg.Output.FrameTime,
		Supersample: cfg.Output.Supersample,
		Output:      cfg.Output.Path,
	}
}

// New opens the configured backend and prepares the scene on it.
// On error nothing is left open.
func New(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	geoms, err := shape.BuildAll(shape.WithLegacyHouseColors(cfg.Scene.LegacyHouseColors))
	if err != nil {
		return nil, err
	}
	st, err := store.New(geoms)
	if err != nil {
		return nil, err
	}
	elements := scene.DefaultElements()
	if err := scene.Validate(elements); err != nil {
		return nil, err
	}

	target, err := backend.Open(cfg.Backend, Options(cfg))
	if err != nil {
		return nil, err
	}
	if err := st.Upload(target); err != nil {
		return nil, errors.Join(err, target.Close())
	}

	a := anim.New(cfg.Animation.RPM)
	a.Dir = cfg.Animation.Direction
	a.Enabled = cfg.Animation.Enabled

	composer := scene.NewComposer(target, elements)
	d := driver.New(target, composer, a, driver.WithClearColor(cfg.ClearColor()))

	windmill.Logger().Info("app: scene ready",
		"backend", cfg.Backend, "elements", len(elements), "rpm", a.RPM, "animating", a.Enabled)
	return &App{target: target, store: st, composer: composer, driver: d}, nil
}

// Driver returns the frame driver.
func (a *App) Driver() *driver.Driver {
	return a.driver
}

// Target returns the opened target.
func (a *App) Target() backend.Target {
	return a.target
}

// Run draws frames until the target closes or ctx is done, then closes the
// target. A cancelled context is not an error.
func (a *App) Run(ctx context.Context) error {
	err := a.driver.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if cerr := a.target.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("app: close: %w", cerr))
	}
	return err
}
