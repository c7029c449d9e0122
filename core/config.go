// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// DefaultFrameTimeout bounds fence and image acquisition waits
// when RendererConfiguration.FrameTimeout is left zero.
const DefaultFrameTimeout = 5 * time.Second

// Configuration defines a global engine configuration setting
type Configuration struct {
	Instance InstanceConfiguration
	Time     TimeConfiguration
	Renderer RendererConfiguration
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	// DebugMode loads the Vulkan validation layer. Instance creation
	// fails when the layer is not installed on the system.
	DebugMode bool

	Extensions []string
	Layers     []string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the time between event queue polls in milliseconds
	EventPollDelay int
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	SwapchainSize    uint32
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32

	// ShaderDirectory is scanned for compiled shaders when
	// no material has been staged before initialisation
	ShaderDirectory string

	// FramebufferSize reports the live drawable size of the window.
	// Consulted when the surface leaves the swapchain extent up to
	// the renderer and during recreation. ScreenWidth and
	// ScreenHeight serve as the fallback when nil.
	FramebufferSize func() (uint32, uint32)

	// FrameTimeout bounds every fence and image acquisition wait.
	// Zero means DefaultFrameTimeout.
	FrameTimeout time.Duration

	// Winding selects the front face vertex order.
	// The zero value is counter-clockwise.
	Winding vk.FrontFace
}
