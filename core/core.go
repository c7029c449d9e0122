// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"image"
	"unsafe"

	"github.com/devblok/verge/device"
	vk "github.com/vulkan-go/vulkan"
)

// Engine errors that callers are expected to test for
var (
	// ErrFrameTimeout reports a frame that could not complete within
	// the configured timeout. Recoverable, the same frame slot is
	// retried on the next Render call.
	ErrFrameTimeout = errors.New("frame timed out")

	// ErrNoSuitableDevice means no physical device passed
	// the suitability checks
	ErrNoSuitableDevice = errors.New("no suitable physical device found")

	// ErrValidationLayer means debug mode was requested but the
	// validation layer is not installed on the system
	ErrValidationLayer = errors.New("validation layer not available")
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevicesInfo returns a struct for each Physical Device
	// along with info about those devices
	PhysicalDevicesInfo() []device.PhysicalDeviceInfo

	// AvailableDevices returns handles of Physical Devices
	// from the Vulkan API
	AvailableDevices() []vk.PhysicalDevice

	// SetSurface sets the window surface for rendering
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// Extensions returns available instance extensions
	Extensions() []string

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys internal members
	Destroy()
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Initialise() before use.
type Renderer interface {
	// Initialise sets up the configured rendering pipeline
	Initialise() error

	// Render runs one frame through the pipeline
	Render() error

	// Destroy destroys internal members
	Destroy()
}

// Destroyable marks types that hold onto API resources
// needing an explicit release
type Destroyable interface {
	Destroy()
}

// Shader describes a shader program loaded into the rendering device
type Shader interface {
	// Type returns the pipeline stage the shader occupies
	Type() ShaderType

	// ShaderModule is an accessor to the underlying API handle
	ShaderModule() interface{}

	// Name returns the name the shader was loaded under
	Name() string

	// Destroy destroys internal members
	Destroy()
}

// ShaderType represents the type of shader thats loaded
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)

// Material bundles everything needed to draw a mesh, a compiled
// shader pair and an optional texture. A nil Texture selects the
// built-in fallback texture.
type Material struct {
	Name           string
	VertexShader   []byte
	FragmentShader []byte
	Texture        image.Image
}
