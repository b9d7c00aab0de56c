// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws Newton fractals on the GPU.
//
// FractalRenderer owns the wgpu pipeline: a fullscreen-quad vertex stage
// and a fragment stage that runs the Newton iteration per pixel, driven
// entirely by the uniform parameter block from gpucore. Session wraps a
// renderer together with an editable newton.Config into a per-frame
// apply/draw loop.
//
// Devices come from either OpenDefaultDevice (standalone Vulkan) or a
// shared gpucontext provider via SessionFromProvider.
package render
