// Package backend provides the pluggable targets the scene is drawn on.
//
// A backend opens a [Target]: the host the frame driver runs (window or
// screen, clock and input), the device the composer draws through and the
// uploader the buffer store fills. Each target links the shared transform
// program when it opens and fails if the program lacks vPosition, vColor or
// model_matrix.
//
// # Backend Registration
//
// Backends are registered via init() functions in their packages and
// selected at runtime by name:
//
//	import (
//		_ "github.com/gogpu/windmill/backend/opengl"
//		_ "github.com/gogpu/windmill/backend/software"
//	)
//
//	target, err := backend.Open("software", backend.Options{Width: 512, Height: 512, Frames: 1})
//	if err != nil {
//		return err
//	}
//	defer target.Close()
//
// # Available Backends
//
//   - "gl": GLFW window with an OpenGL 4.1 core context (backend/opengl)
//   - "term": terminal preview through tcell (backend/term)
//   - "software": headless CPU rasterizer writing a PNG (backend/software)
package backend
