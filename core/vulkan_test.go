// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"

	"github.com/devblok/verge/device"
	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"
)

type fakeInstance struct {
	devices []vk.PhysicalDevice
}

func (f fakeInstance) PhysicalDevicesInfo() []device.PhysicalDeviceInfo {
	return make([]device.PhysicalDeviceInfo, len(f.devices))
}

func (f fakeInstance) AvailableDevices() []vk.PhysicalDevice { return f.devices }
func (f fakeInstance) SetSurface(unsafe.Pointer)             {}
func (f fakeInstance) Surface() vk.Surface                   { return vk.NullSurface }
func (f fakeInstance) Extensions() []string                  { return nil }
func (f fakeInstance) Inner() interface{}                    { return nil }
func (f fakeInstance) Destroy()                              {}

func TestNewVulkanRenderer(t *testing.T) {
	c := qt.New(t)

	c.Run("noDevices", func(c *qt.C) {
		_, err := NewVulkanRenderer(fakeInstance{}, RendererConfiguration{})
		c.Assert(err, qt.Equals, ErrNoSuitableDevice)
	})

	c.Run("timeoutDefaulted", func(c *qt.C) {
		renderer, err := NewVulkanRenderer(fakeInstance{devices: make([]vk.PhysicalDevice, 1)}, RendererConfiguration{
			ScreenWidth:  800,
			ScreenHeight: 600,
		})
		c.Assert(err, qt.IsNil)
		c.Assert(renderer.configuration.FrameTimeout, qt.Equals, DefaultFrameTimeout)
	})

	c.Run("timeoutKept", func(c *qt.C) {
		renderer, err := NewVulkanRenderer(fakeInstance{devices: make([]vk.PhysicalDevice, 1)}, RendererConfiguration{
			FrameTimeout: time.Second,
		})
		c.Assert(err, qt.IsNil)
		c.Assert(renderer.configuration.FrameTimeout, qt.Equals, time.Second)
	})
}

func TestStage(t *testing.T) {
	c := qt.New(t)

	c.Run("beforeInitialise", func(c *qt.C) {
		renderer := &VulkanRenderer{}
		quad := builtinQuad()
		renderer.Stage(quad, Material{Name: "brick"})
		c.Assert(renderer.mesh, qt.Equals, quad)
		c.Assert(renderer.material.Name, qt.Equals, "brick")
	})

	c.Run("ignoredAfterInitialise", func(c *qt.C) {
		renderer := &VulkanRenderer{initialised: true}
		renderer.Stage(builtinQuad(), Material{Name: "brick"})
		c.Assert(renderer.mesh, qt.IsNil)
		c.Assert(renderer.material.Name, qt.Equals, "")
	})
}

func TestNotifyResize(t *testing.T) {
	c := qt.New(t)

	renderer := &VulkanRenderer{}
	renderer.NotifyResize()
	c.Assert(atomic.LoadUint32(&renderer.resizePending), qt.Equals, uint32(1))
}

func TestChooseSurfaceFormat(t *testing.T) {
	c := qt.New(t)

	preferred := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	other := vk.SurfaceFormat{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}

	c.Run("prefersBgraSrgb", func(c *qt.C) {
		got := chooseSurfaceFormat([]vk.SurfaceFormat{other, preferred})
		c.Assert(got.Format, qt.Equals, vk.FormatB8g8r8a8Srgb)
		c.Assert(got.ColorSpace, qt.Equals, vk.ColorSpaceSrgbNonlinear)
	})

	c.Run("fallsBackToFirst", func(c *qt.C) {
		got := chooseSurfaceFormat([]vk.SurfaceFormat{other})
		c.Assert(got.Format, qt.Equals, vk.FormatR8g8b8a8Unorm)
	})
}

func TestChoosePresentMode(t *testing.T) {
	c := qt.New(t)

	c.Run("prefersMailbox", func(c *qt.C) {
		got := choosePresentMode([]vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox})
		c.Assert(got, qt.Equals, vk.PresentModeMailbox)
	})

	c.Run("fallsBackToFifo", func(c *qt.C) {
		got := choosePresentMode([]vk.PresentMode{vk.PresentModeImmediate})
		c.Assert(got, qt.Equals, vk.PresentModeFifo)
	})
}

func TestChooseExtent(t *testing.T) {
	c := qt.New(t)

	c.Run("surfaceDictates", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{
			CurrentExtent: vk.Extent2D{Width: 800, Height: 600},
		}
		got := chooseExtent(caps, 1024, 768)
		c.Assert(got.Width, qt.Equals, uint32(800))
		c.Assert(got.Height, qt.Equals, uint32(600))
	})

	c.Run("windowDecides", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{
			CurrentExtent:  vk.Extent2D{Width: math.MaxUint32},
			MinImageExtent: vk.Extent2D{Width: 200, Height: 100},
			MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
		}
		got := chooseExtent(caps, 1024, 768)
		c.Assert(got.Width, qt.Equals, uint32(1024))
		c.Assert(got.Height, qt.Equals, uint32(768))
	})

	c.Run("clampsToSupportedRange", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{
			CurrentExtent:  vk.Extent2D{Width: math.MaxUint32},
			MinImageExtent: vk.Extent2D{Width: 200, Height: 100},
			MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
		}
		got := chooseExtent(caps, 8192, 50)
		c.Assert(got.Width, qt.Equals, uint32(4096))
		c.Assert(got.Height, qt.Equals, uint32(100))
	})
}

func TestChooseImageCount(t *testing.T) {
	c := qt.New(t)

	c.Run("oneOverMinimum", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{MinImageCount: 2}
		c.Assert(chooseImageCount(caps, 0), qt.Equals, uint32(3))
	})

	c.Run("honoursRequest", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{MinImageCount: 2}
		c.Assert(chooseImageCount(caps, 5), qt.Equals, uint32(5))
	})

	c.Run("clampsToMaximum", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 3}
		c.Assert(chooseImageCount(caps, 5), qt.Equals, uint32(3))
	})

	c.Run("minimumPlusOneClamped", func(c *qt.C) {
		caps := vk.SurfaceCapabilities{MinImageCount: 3, MaxImageCount: 3}
		c.Assert(chooseImageCount(caps, 0), qt.Equals, uint32(3))
	})
}

func TestChooseSharingMode(t *testing.T) {
	c := qt.New(t)

	c.Run("sharedFamilyExclusive", func(c *qt.C) {
		families := device.QueueFamilies{Graphics: 1, Present: 1, HasGraphics: true, HasPresent: true}
		mode, indices := chooseSharingMode(families)
		c.Assert(mode, qt.Equals, vk.SharingModeExclusive)
		c.Assert(indices, qt.IsNil)
	})

	c.Run("splitFamiliesConcurrent", func(c *qt.C) {
		families := device.QueueFamilies{Graphics: 0, Present: 2, HasGraphics: true, HasPresent: true}
		mode, indices := chooseSharingMode(families)
		c.Assert(mode, qt.Equals, vk.SharingModeConcurrent)
		c.Assert(indices, qt.DeepEquals, []uint32{0, 2})
	})
}

func TestTransitionFor(t *testing.T) {
	c := qt.New(t)

	c.Run("undefinedToTransferDst", func(c *qt.C) {
		rule, err := transitionFor(vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
		c.Assert(err, qt.IsNil)
		c.Assert(rule.srcAccess, qt.Equals, vk.AccessFlags(0))
		c.Assert(rule.dstAccess, qt.Equals, vk.AccessFlags(vk.AccessTransferWriteBit))
		c.Assert(rule.srcStage, qt.Equals, vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit))
		c.Assert(rule.dstStage, qt.Equals, vk.PipelineStageFlags(vk.PipelineStageTransferBit))
	})

	c.Run("transferDstToShaderRead", func(c *qt.C) {
		rule, err := transitionFor(vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
		c.Assert(err, qt.IsNil)
		c.Assert(rule.srcAccess, qt.Equals, vk.AccessFlags(vk.AccessTransferWriteBit))
		c.Assert(rule.dstAccess, qt.Equals, vk.AccessFlags(vk.AccessShaderReadBit))
		c.Assert(rule.srcStage, qt.Equals, vk.PipelineStageFlags(vk.PipelineStageTransferBit))
		c.Assert(rule.dstStage, qt.Equals, vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit))
	})

	c.Run("refusesEverythingElse", func(c *qt.C) {
		_, err := transitionFor(vk.ImageLayoutShaderReadOnlyOptimal, vk.ImageLayoutTransferDstOptimal)
		c.Assert(err, qt.ErrorMatches, "unsupported layout transition")
	})
}

func TestNextFrame(t *testing.T) {
	c := qt.New(t)

	c.Assert(nextFrame(0), qt.Equals, 1)
	c.Assert(nextFrame(1), qt.Equals, 0)
}

func TestMissingLayers(t *testing.T) {
	c := qt.New(t)

	available := []string{"VK_LAYER_KHRONOS_validation\x00", "VK_LAYER_MESA_overlay\x00"}

	c.Run("present", func(c *qt.C) {
		c.Assert(missingLayers(available, []string{"VK_LAYER_KHRONOS_validation"}), qt.HasLen, 0)
	})

	c.Run("presentWithTerminator", func(c *qt.C) {
		c.Assert(missingLayers(available, []string{"VK_LAYER_MESA_overlay\x00"}), qt.HasLen, 0)
	})

	c.Run("missing", func(c *qt.C) {
		missing := missingLayers(available, []string{"VK_LAYER_LUNARG_api_dump"})
		c.Assert(missing, qt.DeepEquals, []string{"VK_LAYER_LUNARG_api_dump"})
	})
}

func TestFindMemoryType(t *testing.T) {
	c := qt.New(t)

	props := vk.PhysicalDeviceMemoryProperties{MemoryTypeCount: 2}
	props.MemoryTypes[0] = vk.MemoryType{
		PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	}
	props.MemoryTypes[1] = vk.MemoryType{
		PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit),
	}
	allocator := &MemoryAllocator{memProperties: props}

	c.Run("matchesPropertySuperset", func(c *qt.C) {
		idx, err := allocator.findMemoryType(0x2, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit))
		c.Assert(err, qt.IsNil)
		c.Assert(idx, qt.Equals, uint32(1))
	})

	c.Run("respectsTypeFilter", func(c *qt.C) {
		_, err := allocator.findMemoryType(0x1, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit))
		c.Assert(err, qt.Not(qt.IsNil))
	})

	c.Run("deviceLocal", func(c *qt.C) {
		idx, err := allocator.findMemoryType(0x3, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
		c.Assert(err, qt.IsNil)
		c.Assert(idx, qt.Equals, uint32(0))
	})
}

func TestBuiltinQuad(t *testing.T) {
	c := qt.New(t)

	quad := builtinQuad()
	c.Assert(quad.Vertices(), qt.HasLen, 4)
	c.Assert(quad.Indices(), qt.DeepEquals, []uint32{0, 1, 2, 2, 3, 0})
}

func TestCheckerboard(t *testing.T) {
	c := qt.New(t)

	img := checkerboard(64, 8)
	bounds := img.Bounds()
	c.Assert(bounds.Dx(), qt.Equals, 64)
	c.Assert(bounds.Dy(), qt.Equals, 64)

	light := img.At(0, 0)
	dark := img.At(8, 0)
	c.Assert(light, qt.Not(qt.DeepEquals), dark)
	c.Assert(img.At(8, 8), qt.DeepEquals, light)
	c.Assert(img.At(0, 8), qt.DeepEquals, dark)
}

func TestSafeStrings(t *testing.T) {
	c := qt.New(t)

	c.Assert(safeString("VK_LAYER_KHRONOS_validation"), qt.Equals, "VK_LAYER_KHRONOS_validation\x00")
	c.Assert(safeStrings([]string{"a", "b"}), qt.DeepEquals, []string{"a\x00", "b\x00"})
	c.Assert(safeStrings(nil), qt.DeepEquals, []string{})
}

func TestLoadShaderFilesFromDirectory(t *testing.T) {
	c := qt.New(t)

	dir, err := ioutil.TempDir("", "shaders")
	c.Assert(err, qt.IsNil)
	defer os.RemoveAll(dir)

	for _, name := range []string{"default.frag.spv", "default.vert.spv", "extra.pass.vert.spv", "notes.txt", "uncompiled.vert"} {
		c.Assert(ioutil.WriteFile(filepath.Join(dir, name), []byte{0x03, 0x02, 0x23, 0x07}, 0644), qt.IsNil)
	}

	shaders, types, err := loadShaderFilesFromDirectory(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(shaders, qt.DeepEquals, []string{
		filepath.Join(dir, "default.frag.spv"),
		filepath.Join(dir, "default.vert.spv"),
	})
	c.Assert(types, qt.DeepEquals, []ShaderType{FragmentShaderType, VertexShaderType})
}
