// Package config loads the windmill configuration: a YAML file overlaid on
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/shader"
)

// ErrInvalid is returned for configuration values that cannot be used.
var ErrInvalid = errors.New("config: invalid")

// maxConfigSize bounds the configuration file size.
const maxConfigSize = 1 << 20

// Config is the complete configuration.
type Config struct {
	// Backend names the rendering backend: gl, software or term.
	Backend   string          `yaml:"backend"`
	Window    WindowConfig    `yaml:"window"`
	Animation AnimationConfig `yaml:"animation"`
	Shaders   ShaderConfig    `yaml:"shaders"`
	Scene     SceneConfig     `yaml:"scene"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// WindowConfig sizes the window or the rendered image.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// AnimationConfig is the initial animation state.
type AnimationConfig struct {
	RPM       float64 `yaml:"rpm"`
	Enabled   bool    `yaml:"enabled"`
	Direction int     `yaml:"direction"`
}

// ShaderConfig holds shader source paths. Paths may use the "builtin:" prefix.
type ShaderConfig struct {
	// Vertex and Fragment are the GLSL stages of the opengl backend.
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`

	// WGSL is the module holding both stages for the software backends.
	WGSL string `yaml:"wgsl"`
}

// SceneConfig controls scene construction.
type SceneConfig struct {
	// LegacyHouseColors selects the legacy house color lookup.
	LegacyHouseColors bool `yaml:"legacy_house_colors"`

	// ClearColor is the RGBA color each frame is cleared to.
	ClearColor [4]float32 `yaml:"clear_color"`
}

// OutputConfig configures the headless software backend.
type OutputConfig struct {
	// Path is the PNG file written after the last frame.
	Path string `yaml:"path"`

	// Frames is the number of frames drawn before closing.
	Frames int `yaml:"frames"`

	// FrameTime is the simulated seconds per frame.
	FrameTime float64 `yaml:"frame_time"`

	// Supersample renders at this multiple of the output size and downsamples.
	Supersample int `yaml:"supersample"`
}

// LogConfig selects the log level: debug, info, warn, error or off.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: "gl",
		Window: WindowConfig{
			Title:  "Don Quixote 2022",
			Width:  512,
			Height: 512,
		},
		Animation: AnimationConfig{
			RPM:       10,
			Direction: 1,
		},
		Shaders: ShaderConfig{
			Vertex:   shader.BuiltinPrefix + "trans.vert",
			Fragment: shader.BuiltinPrefix + "trans.frag",
			WGSL:     shader.BuiltinPrefix + "trans.wgsl",
		},
		Scene: SceneConfig{
			LegacyHouseColors: true,
		},
		Output: OutputConfig{
			Path:        "windmill.png",
			Frames:      1,
			FrameTime:   1.0 / 60,
			Supersample: 2,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigSize+1))
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(data) > maxConfigSize {
		return cfg, fmt.Errorf("%w: %s is larger than %d bytes", ErrInvalid, path, maxConfigSize)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	windmill.Logger().Debug("config: loaded", "path", path, "backend", cfg.Backend)
	return cfg, nil
}

// Decode overlays YAML data on cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	switch c.Backend {
	case "gl", "software", "term":
	default:
		return fmt.Errorf("%w: backend %q (want gl, software or term)", ErrInvalid, c.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Animation.RPM < 0 {
		return fmt.Errorf("%w: rpm %v is negative", ErrInvalid, c.Animation.RPM)
	}
	if c.Animation.Direction != 1 && c.Animation.Direction != -1 {
		return fmt.Errorf("%w: direction %d (want 1 or -1)", ErrInvalid, c.Animation.Direction)
	}
	if c.Output.Frames < 1 {
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Output.Frames)
	}
	if c.Output.FrameTime < 0 {
		return fmt.Errorf("%w: frame_time %v is negative", ErrInvalid, c.Output.FrameTime)
	}
	if c.Output.Supersample < 1 || c.Output.Supersample > 8 {
		return fmt.Errorf("%w: supersample %d (want 1..8)", ErrInvalid, c.Output.Supersample)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ClearColor returns the configured clear color.
func (c Config) ClearColor() windmill.Color {
	return windmill.Color(c.Scene.ClearColor)
}
