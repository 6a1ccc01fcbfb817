package app

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/windmill/backend"
	"github.com/gogpu/windmill/backend/software"
	"github.com/gogpu/windmill/config"
	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/shader"
)

func softwareConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = backend.BackendSoftware
	cfg.Window.Width = 48
	cfg.Window.Height = 48
	cfg.Output.Path = filepath.Join(t.TempDir(), "out.png")
	return cfg
}

func TestOptions(t *testing.T) {
	cfg := config.Default()
	opts := Options(cfg)

	if opts.Title != "Don Quixote 2022" || opts.Width != 512 {
		t.Errorf("Options() = %+v", opts)
	}
	if len(opts.GLSL) != 2 || opts.GLSL[0].Stage != shader.Vertex || opts.GLSL[1].Path != cfg.Shaders.Fragment {
		t.Errorf("GLSL = %+v", opts.GLSL)
	}
	if len(opts.WGSL) != 2 || opts.WGSL[1].Stage != shader.Fragment {
		t.Errorf("WGSL = %+v", opts.WGSL)
	}
}

func TestRunWritesPNG(t *testing.T) {
	cfg := softwareConfig(t)
	cfg.Output.Frames = 4

	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := a.Driver().Frames(); got != 4 {
		t.Errorf("Frames() = %d, want 4", got)
	}

	f, err := os.Open(cfg.Output.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 48 {
		t.Errorf("PNG width = %d, want 48", img.Bounds().Dx())
	}
}

func TestAnimationFromConfig(t *testing.T) {
	cfg := softwareConfig(t)
	cfg.Animation.Enabled = true
	cfg.Animation.Direction = -1
	cfg.Animation.RPM = 60
	cfg.Output.Frames = 2
	cfg.Output.FrameTime = 0.25

	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	// 60 rpm is 360 degrees per second, reversed.
	if got := a.Driver().Anim().Angle; got != -180 {
		t.Errorf("Angle = %v, want -180", got)
	}
}

func TestQueuedEscapeStopsEarly(t *testing.T) {
	cfg := softwareConfig(t)
	cfg.Output.Frames = 100

	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	a.Target().(*software.Target).Queue(driver.KeyEvent{Key: driver.KeyEscape, Action: driver.Press})
	if err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := a.Driver().Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
}

func TestCancelledContext(t *testing.T) {
	cfg := softwareConfig(t)
	cfg.Output.Frames = 100

	a, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Errorf("Run(cancelled) error = %v, want nil", err)
	}
	if a.Driver().Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", a.Driver().Frames())
	}
}

func TestNewErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := softwareConfig(t)
		cfg.Window.Width = 0
		if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("New() error = %v, want ErrInvalid", err)
		}
	})

	t.Run("missing shader", func(t *testing.T) {
		cfg := softwareConfig(t)
		cfg.Shaders.WGSL = filepath.Join(t.TempDir(), "missing.wgsl")
		if _, err := New(cfg); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("New() error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("missing symbol", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "bare.wgsl")
		code := "@vertex fn vs_main(@location(0) vPosition: vec2<f32>) -> @builtin(position) vec4<f32> {\n" +
			"    return vec4<f32>(vPosition, 0.0, 1.0);\n}\n" +
			"@fragment fn fs_main() -> @location(0) vec4<f32> {\n    return vec4<f32>(1.0);\n}\n"
		if err := os.WriteFile(p, []byte(code), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := softwareConfig(t)
		cfg.Shaders.WGSL = p
		if _, err := New(cfg); !errors.Is(err, shader.ErrMissingSymbol) {
			t.Errorf("New() error = %v, want ErrMissingSymbol", err)
		}
	})
}

func TestDefaultConfigRoofColor(t *testing.T) {
	for _, ss := range []int{1, 2, 4} {
		cfg := softwareConfig(t)
		cfg.Window.Width = 64
		cfg.Window.Height = 64
		cfg.Output.Supersample = ss

		a, err := New(cfg)
		if err != nil {
			t.Fatalf("supersample %d: New() error = %v", ss, err)
		}
		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("supersample %d: Run() error = %v", ss, err)
		}

		got := a.Target().(*software.Target).Image().RGBAAt(34, 25)
		if got.R < 240 || got.G > 15 || got.B > 15 {
			t.Errorf("supersample %d: roof pixel (34, 25) = %v, want red", ss, got)
		}
	}
}
