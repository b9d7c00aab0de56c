// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/newton"
	"github.com/gogpu/newton/gpucore"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/fractal.wgsl
var fractalShaderSource string

// paramsBufferSize is the GPU allocation for the encoded parameter block.
// The block itself is gpucore.ParamsByteSize bytes; the shader views the
// coefficient table as vec4 pairs, so the binding is padded to the next
// 16-byte boundary. The tail bytes are always zero.
const paramsBufferSize = (gpucore.ParamsByteSize + 15) / 16 * 16

// quadVertexCount is the fullscreen quad as two triangles. The vertex
// stage generates positions from the vertex index; there is no vertex
// buffer.
const quadVertexCount = 6

// gpuWaitTimeout bounds the fence wait after each submit.
const gpuWaitTimeout = 5 * time.Second

// FractalRenderer owns the GPU resources for drawing Newton fractals:
// shader module, render pipeline, and the persistent uniform buffer the
// parameter block is re-uploaded into every frame. Pipeline and buffer
// are created lazily on first use.
//
// A renderer draws into caller-provided texture views (RenderFrame) or
// into its own offscreen target with CPU readback (RenderImage). It does
// not own the device; Destroy releases only the resources it created.
type FractalRenderer struct {
	device hal.Device
	queue  hal.Queue

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	paramsBuf hal.Buffer
	bindGroup hal.BindGroup

	// Offscreen target for RenderImage, recreated on size change.
	targetTex     hal.Texture
	targetView    hal.TextureView
	width, height uint32

	scratch [paramsBufferSize]byte
}

// NewFractalRenderer creates a renderer on the given device and queue.
// No GPU resources are allocated until the first render call.
func NewFractalRenderer(device hal.Device, queue hal.Queue) *FractalRenderer {
	return &FractalRenderer{
		device: device,
		queue:  queue,
	}
}

// RenderFrame encodes one fractal frame into view: pack the config into
// the parameter block, upload it, and draw the fullscreen quad with a
// clearing render pass. The call blocks until the GPU finishes.
//
// On error the frame is skipped and no GPU state is partially mutated;
// the caller may retry with the next frame. An over-capacity root set
// surfaces newton.ErrTooManyRoots.
func (r *FractalRenderer) RenderFrame(view hal.TextureView, cfg *newton.Config) error {
	if err := r.ensureReady(); err != nil {
		return err
	}
	if err := r.uploadParams(cfg); err != nil {
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "fractal_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fractal_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	r.encodePass(encoder, view)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	return r.submitAndWait(cmdBuf)
}

// RenderImage draws one frame at the given size into an offscreen texture
// and reads it back as an RGBA image. The offscreen target is kept
// between calls and recreated when the size changes.
func (r *FractalRenderer) RenderImage(w, h uint32, cfg *newton.Config) (*image.RGBA, error) {
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("render: invalid image size %dx%d", w, h)
	}
	if err := r.ensureReady(); err != nil {
		return nil, err
	}
	if err := r.ensureTarget(w, h); err != nil {
		return nil, err
	}
	if err := r.uploadParams(cfg); err != nil {
		return nil, err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "fractal_image_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fractal_image"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	r.encodePass(encoder, r.targetView)

	// The render pass leaves the texture in attachment layout; the copy
	// below needs transfer-source. No-op on backends without layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.targetTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(w) * uint64(h) * 4
	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fractal_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.targetTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.targetTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	readback := make([]byte, pixelBufSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	bgraToRGBA(readback, img.Pix)
	return img, nil
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times. The device and queue are not touched.
func (r *FractalRenderer) Destroy() {
	r.destroyTarget()
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.paramsBuf != nil {
		r.device.DestroyBuffer(r.paramsBuf)
		r.paramsBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// ensureReady creates the pipeline and params buffer if needed.
func (r *FractalRenderer) ensureReady() error {
	if r.pipeline == nil {
		if err := r.createPipeline(); err != nil {
			return fmt.Errorf("create pipeline: %w", err)
		}
	}
	if r.paramsBuf == nil {
		if err := r.createParamsBuffer(); err != nil {
			return fmt.Errorf("create params buffer: %w", err)
		}
	}
	return nil
}

// createPipeline compiles the fractal shader and creates the render
// pipeline. The quad is generated in the vertex stage, so there are no
// vertex buffers, and the target is opaque, so there is no blending.
func (r *FractalRenderer) createPipeline() error {
	if fractalShaderSource == "" {
		return fmt.Errorf("fractal shader source is empty")
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "fractal_shader",
		Source: hal.ShaderSource{WGSL: fractalShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile fractal shader: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "fractal_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "fractal_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "fractal_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	return nil
}

// createParamsBuffer allocates the persistent uniform buffer and its bind
// group. The buffer outlives individual frames; uploads overwrite it in
// place.
func (r *FractalRenderer) createParamsBuffer() error {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fractal_params",
		Size:  paramsBufferSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	r.paramsBuf = buf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "fractal_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: paramsBufferSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup

	return nil
}

// uploadParams packs cfg into the scratch block and writes it to the
// uniform buffer. The scratch tail past the encoded block stays zero.
func (r *FractalRenderer) uploadParams(cfg *newton.Config) error {
	params, err := newton.PackParams(cfg)
	if err != nil {
		return err
	}
	if err := params.EncodeTo(r.scratch[:]); err != nil {
		return err
	}
	r.queue.WriteBuffer(r.paramsBuf, 0, r.scratch[:])
	newton.Logger().Debug("fractal: params uploaded",
		"roots", params.RootCount, "iterations", params.Iterations)
	return nil
}

// encodePass records the single fractal render pass into encoder.
func (r *FractalRenderer) encodePass(encoder hal.CommandEncoder, view hal.TextureView) {
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "fractal_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 1},
			},
		},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	rp.Draw(quadVertexCount, 1, 0, 0)
	rp.End()
}

// submitAndWait submits one command buffer and blocks on its fence.
func (r *FractalRenderer) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuWaitTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// ensureTarget creates or recreates the offscreen render target when the
// requested dimensions differ from the current size.
func (r *FractalRenderer) ensureTarget(w, h uint32) error {
	if r.width == w && r.height == h && r.targetTex != nil {
		return nil
	}
	r.destroyTarget()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "fractal_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	r.targetTex = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "fractal_target_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyTarget()
		return fmt.Errorf("create target view: %w", err)
	}
	r.targetView = view

	r.width = w
	r.height = h
	return nil
}

// destroyTarget releases the offscreen target and resets dimensions.
func (r *FractalRenderer) destroyTarget() {
	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.targetTex != nil {
		r.device.DestroyTexture(r.targetTex)
		r.targetTex = nil
	}
	r.width = 0
	r.height = 0
}

// bgraToRGBA converts tightly packed BGRA8 pixels into dst in RGBA order.
func bgraToRGBA(src, dst []byte) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i+3 < n; i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
