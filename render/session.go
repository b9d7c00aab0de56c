// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/newton"
	"github.com/gogpu/wgpu/hal"
)

// Session is the per-frame driver: it owns the editable config and a
// FractalRenderer, and alternates between applying change events and
// drawing frames. The config is never mutated during a draw, so every
// frame sees one consistent state.
//
// Session is not safe for concurrent use; the frame loop is the single
// caller.
type Session struct {
	renderer *FractalRenderer
	cfg      *newton.Config
}

// NewSession creates a session with the default config on the given
// device and queue.
func NewSession(device hal.Device, queue hal.Queue) *Session {
	return &Session{
		renderer: NewFractalRenderer(device, queue),
		cfg:      newton.DefaultConfig(),
	}
}

// Apply forwards one change event to the config. Invalid events are
// rejected with an error and leave the config unchanged; the session
// keeps rendering the previous state.
func (s *Session) Apply(ev newton.ConfigChangeEvent) error {
	if err := s.cfg.Apply(ev); err != nil {
		newton.Logger().Warn("session: event rejected", "event", ev, "error", err)
		return err
	}
	return nil
}

// Config returns the live config. Callers must not mutate it while a
// frame is in flight; use Apply for all changes.
func (s *Session) Config() *newton.Config {
	return s.cfg
}

// Frame draws the current state into view. On error the frame is
// skipped; the config and GPU state stay valid for the next attempt.
func (s *Session) Frame(view hal.TextureView) error {
	return s.renderer.RenderFrame(view, s.cfg)
}

// Image draws the current state offscreen at the given size and reads
// it back.
func (s *Session) Image(w, h uint32) (*image.RGBA, error) {
	return s.renderer.RenderImage(w, h, s.cfg)
}

// Destroy releases the session's GPU resources. The device is not
// touched.
func (s *Session) Destroy() {
	s.renderer.Destroy()
}
