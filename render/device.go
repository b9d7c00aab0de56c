// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/newton"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DeviceHandle provides GPU device access from a host application. Hosts
// that already own a device (a gogpu app, for example) implement the
// gpucontext provider interface and hand it to SessionFromProvider
// instead of letting this package open its own.
type DeviceHandle = gpucontext.DeviceProvider

// GPU bundles a device and queue with the instance that owns them.
// Instances opened by OpenDefaultDevice are owned and destroyed by
// Close; shared devices from a provider are not.
type GPU struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owned    bool
}

// Device returns the HAL device.
func (g *GPU) Device() hal.Device { return g.device }

// Queue returns the HAL queue.
func (g *GPU) Queue() hal.Queue { return g.queue }

// Close releases the device and instance if this GPU owns them. Safe to
// call multiple times.
func (g *GPU) Close() {
	if !g.owned {
		g.device = nil
		g.queue = nil
		g.instance = nil
		return
	}
	if g.device != nil {
		g.device.Destroy()
		g.device = nil
	}
	if g.instance != nil {
		g.instance.Destroy()
		g.instance = nil
	}
	g.queue = nil
	g.owned = false
}

// OpenDefaultDevice creates a standalone Vulkan device for offscreen
// rendering. Discrete GPUs are preferred, then integrated, then whatever
// the instance exposes first.
func OpenDefaultDevice() (*GPU, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("render: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("render: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("render: open device: %w", err)
	}

	newton.Logger().Info("render: GPU device opened",
		"adapter", selected.Info.Name, "type", selected.Info.DeviceType)

	return &GPU{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		owned:    true,
	}, nil
}

// SessionFromProvider creates a session on a shared GPU device. The
// provider must expose HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue; gogpu app contexts do. The caller keeps
// ownership of the device.
func SessionFromProvider(provider any) (*Session, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("render: provider HalQueue is not hal.Queue")
	}
	return NewSession(device, queue), nil
}
