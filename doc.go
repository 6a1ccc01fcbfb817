// Package windmill renders a small 2D countryside scene (sky, grass, house,
// roof, fan and sun) through a single shared shader program.
//
// # Overview
//
// The scene is built from two indexed unit shapes, a square and a triangle,
// plus a triangle-fan sun. Indexed faces are expanded into flat, deindexed
// vertex and color arrays at startup (package shape), uploaded once into a
// buffer store (package store), and drawn every frame by a scene composer
// (package scene) that computes a per-element model matrix and issues one
// draw call per element.
//
// # Architecture
//
// The module is organized into:
//   - shape: shape tables and the deindexing builder
//   - store: per-shape position buffers and per-slot color buffers
//   - scene: element table, model transforms, the Device binding contract
//   - anim: rotation angle, direction and rate
//   - shader: shader source loading, symbol reflection, WGSL compilation
//   - driver: the frame loop state machine and input handling
//   - render: CPU rasterizer and pixmap target behind the software backends
//   - backend: registry of rendering backends; backend/opengl ("gl"),
//     backend/software and backend/term implement it
//   - config: YAML configuration with defaults
//
// Command windmill (cmd/windmill) ties these together.
//
// # Coordinate System
//
// Positions are in normalized device coordinates:
//   - Origin (0,0) at the center of the window
//   - X increases right, Y increases up, both in [-1, 1]
//   - Rotation angles are in degrees, counter-clockwise about the axis
//
// # Logging
//
// windmill logs through [log/slog] and is silent by default; see [SetLogger].
package windmill

// Version is the current version of the module.
const Version = "0.1.0"
