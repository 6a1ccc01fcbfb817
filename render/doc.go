// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render is the CPU pipeline behind the headless and terminal
// backends.
//
// # Core Types
//
//   - RenderTarget: where pixels go (width, height, format, raw RGBA bytes)
//   - PixmapTarget: CPU-backed *image.RGBA target
//   - Rasterizer: a scene.Device and store.Uploader that runs the transform
//     program's vertex stage on the CPU and fills triangles
//
// # Usage
//
//	target := render.NewPixmapTarget(512, 512)
//	r, err := render.NewRasterizer(target, prog)
//	if err != nil {
//		return err
//	}
//	if err := st.Upload(r); err != nil {
//		return err
//	}
//	r.Clear(windmill.Black)
//	scene.NewComposer(r, scene.DefaultElements()).Compose(0)
//	img := target.Opaque()
//
// Supersampled rendering draws into a larger target and resolves it with
// [Downsample].
package render
