// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/ioutil"
	"math"
	"strings"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/devblok/verge/device"
	"github.com/devblok/verge/model"
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// maxFramesInFlight is how many frames the CPU may record ahead
// before it has to wait for the GPU to catch up.
const maxFramesInFlight = 2

// validationLayerName is required on the instance in debug mode.
const validationLayerName = "VK_LAYER_KHRONOS_validation"

// DefaultVulkanApplicationInfo application info describes a Vulkan application
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   safeString("Verge"),
	PEngineName:        safeString("Verge"),
}

// NewVulkanInstance creates a Vulkan instance
func NewVulkanInstance(appInfo *vk.ApplicationInfo, window unsafe.Pointer, cfg InstanceConfiguration) (Instance, error) {
	if window == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.InstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(window)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	if cfg.DebugMode {
		available, err := instanceLayerNames()
		if err != nil {
			return nil, err
		}
		for _, layer := range available {
			log.Debugf("instance layer available: %s", layer)
		}
		if missing := missingLayers(available, []string{validationLayerName}); len(missing) > 0 {
			return nil, ErrValidationLayer
		}
		cfg.Layers = append(cfg.Layers, validationLayerName)

		extensions, err := instanceExtensionNames()
		if err != nil {
			return nil, err
		}
		for _, ext := range extensions {
			log.Debugf("instance extension available: %s", ext)
		}
	}

	/* Create instance */
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: safeStrings(cfg.Extensions),
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     safeStrings(cfg.Layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	vk.InitInstance(instance)

	/* Enumerate devices */
	physicalDevices, err := enumerateDevices(instance)
	if err != nil {
		return nil, errors.New("core.enumerateDevices(): " + err.Error())
	}

	deviceInfo := make([]device.PhysicalDeviceInfo, len(physicalDevices))
	for idx, dev := range physicalDevices {
		deviceInfo[idx] = device.CollectInfo(dev)
		log.Debugf("physical device found: %s", deviceInfo[idx].Name)
	}

	return &VulkanInstance{
		configuration:    cfg,
		instance:         instance,
		availableDevices: physicalDevices,
		deviceInfo:       deviceInfo,
	}, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	Destroyable

	configuration InstanceConfiguration

	availableDevices []vk.PhysicalDevice
	deviceInfo       []device.PhysicalDeviceInfo
	surface          vk.Surface
	instance         vk.Instance
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return availableDevices, nil
}

func instanceLayerNames() ([]string, error) {
	var layerCount uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&layerCount, nil)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceLayerProperties(): " + err.Error())
	}
	layers := make([]vk.LayerProperties, layerCount)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&layerCount, layers)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceLayerProperties(): " + err.Error())
	}

	names := make([]string, 0, layerCount)
	for _, layer := range layers {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

func instanceExtensionNames() ([]string, error) {
	var extensionCount uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &extensionCount, nil)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceExtensionProperties(): " + err.Error())
	}
	extensions := make([]vk.ExtensionProperties, extensionCount)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &extensionCount, extensions)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceExtensionProperties(): " + err.Error())
	}

	names := make([]string, 0, extensionCount)
	for _, ext := range extensions {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// missingLayers returns the layers out of required that are absent from
// the available list. Names reported by the API carry C terminators.
func missingLayers(available, required []string) []string {
	var missing []string
	for _, req := range required {
		name := strings.TrimRight(req, "\x00")
		found := false
		for _, av := range available {
			if strings.TrimRight(av, "\x00") == name {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return missing
}

// PhysicalDevicesInfo implements interface
func (v VulkanInstance) PhysicalDevicesInfo() []device.PhysicalDeviceInfo {
	return v.deviceInfo
}

// SetSurface sets the window surface for rendering
func (v *VulkanInstance) SetSurface(pSurface unsafe.Pointer) {
	v.surface = vk.SurfaceFromPointer(uintptr(pSurface))
}

// Surface implements interface
func (v VulkanInstance) Surface() vk.Surface {
	if v.surface == nil {
		return vk.NullSurface
	}
	return v.surface
}

// Inner returns the internal vk.Instance
func (v VulkanInstance) Inner() interface{} {
	return v.instance
}

// Extensions implements interface
func (v VulkanInstance) Extensions() []string {
	return v.configuration.Extensions
}

// AvailableDevices implements interface
func (v VulkanInstance) AvailableDevices() []vk.PhysicalDevice {
	return v.availableDevices
}

// Destroy implements interface
func (v *VulkanInstance) Destroy() {
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
}

// NewVulkanRenderer creates a not yet initialised Vulkan API renderer
func NewVulkanRenderer(instance Instance, cfg RendererConfiguration) (*VulkanRenderer, error) {
	if len(instance.AvailableDevices()) == 0 {
		return nil, ErrNoSuitableDevice
	}
	if cfg.FrameTimeout == 0 {
		cfg.FrameTimeout = DefaultFrameTimeout
	}

	return &VulkanRenderer{
		configuration:        cfg,
		currentSurfaceWidth:  cfg.ScreenWidth,
		currentSurfaceHeight: cfg.ScreenHeight,
		surface:              instance.Surface(),
		availableDevices:     instance.AvailableDevices(),
		deviceInfo:           instance.PhysicalDevicesInfo(),
	}, nil
}

// VulkanRenderer is a Vulkan API renderer
type VulkanRenderer struct {
	Destroyable
	Renderer

	configuration RendererConfiguration

	surface              vk.Surface
	shaders              []Shader
	currentSurfaceWidth  uint32
	currentSurfaceHeight uint32

	availableDevices []vk.PhysicalDevice
	deviceInfo       []device.PhysicalDeviceInfo
	deviceIndex      int

	physicalDevice vk.PhysicalDevice
	logicalDevice  vk.Device
	queueFamilies  device.QueueFamilies
	graphicsQueue  vk.Queue
	presentQueue   vk.Queue

	allocator *MemoryAllocator

	swapchain           vk.Swapchain
	swapchainImages     []vk.Image
	swapchainImageViews []vk.ImageView
	framebuffers        []vk.Framebuffer

	imageFormat     vk.Format
	imageColorspace vk.ColorSpace
	presentMode     vk.PresentMode

	viewport vk.Viewport
	scissor  vk.Rect2D

	renderPass          vk.RenderPass
	pipelineLayout      vk.PipelineLayout
	pipeline            vk.Pipeline
	pipelineCache       vk.PipelineCache
	descriptorPool      vk.DescriptorPool
	descriptorSetLayout vk.DescriptorSetLayout
	descriptorSets      []vk.DescriptorSet

	depthImage       Image
	depthImageView   vk.ImageView
	depthImageFormat vk.Format

	commandPool    vk.CommandPool
	commandBuffers []vk.CommandBuffer

	imageAvailableSemaphores []vk.Semaphore
	renderFinishedSemaphores []vk.Semaphore
	inFlightFences           []vk.Fence
	frameIndex               int

	uniformBuffers  []Buffer
	uniformMappings []unsafe.Pointer

	vertexBuffer Buffer
	indexBuffer  Buffer
	indexCount   uint32

	textureImage     Image
	textureImageView vk.ImageView
	textureSampler   vk.Sampler

	mesh     model.Object
	material Material

	initialised   bool
	resizePending uint32
	epoch         time.Duration
}

// Stage hands the renderer the mesh and material to draw. Has to be
// called before Initialise, later calls are ignored. A nil mesh or an
// empty material selects the built-in fallbacks.
func (v *VulkanRenderer) Stage(mesh model.Object, material Material) {
	if v.initialised {
		return
	}
	v.mesh = mesh
	v.material = material
}

// NotifyResize flags the drawing surface as resized. The swapchain
// is rebuilt after the frame in flight completes.
func (v *VulkanRenderer) NotifyResize() {
	atomic.StoreUint32(&v.resizePending, 1)
}

// DeviceIsSuitable checks if the device given is suitable
// for the rendering pipeline. If not suitable string contains the reason
func (v *VulkanRenderer) DeviceIsSuitable(dev vk.PhysicalDevice) (bool, string) {
	return v.deviceSuitable(dev, device.CollectInfo(dev))
}

func (v *VulkanRenderer) deviceSuitable(dev vk.PhysicalDevice, info device.PhysicalDeviceInfo) (bool, string) {
	if ok, missing := device.SupportsExtensions(info.Extensions, v.configuration.DeviceExtensions); !ok {
		return false, "missing device extension " + missing
	}

	families, err := device.FindQueueFamilies(dev, v.surface)
	if err != nil {
		return false, err.Error()
	}
	if !families.Complete() {
		return false, "no queue families for both graphics and presentation"
	}

	formats, modes, err := v.surfaceSupport(dev)
	if err != nil {
		return false, err.Error()
	}
	if len(formats) == 0 || len(modes) == 0 {
		return false, "no surface formats or present modes reported"
	}
	return true, ""
}

func (v *VulkanRenderer) selectPhysicalDevice() error {
	suitable := make([]bool, len(v.availableDevices))
	for idx, dev := range v.availableDevices {
		ok, reason := v.deviceSuitable(dev, v.deviceInfo[idx])
		if !ok {
			log.Debugf("skipping %s: %s", v.deviceInfo[idx].Name, reason)
		}
		suitable[idx] = ok
	}

	idx, ok := device.Pick(v.deviceInfo, suitable)
	if !ok {
		return ErrNoSuitableDevice
	}
	v.physicalDevice = v.availableDevices[idx]
	v.deviceIndex = idx
	log.Infof("rendering on %s", v.deviceInfo[idx].Name)
	return nil
}

// Initialise implements interface
func (v *VulkanRenderer) Initialise() error {
	/* Physical device and queue families */
	if err := v.selectPhysicalDevice(); err != nil {
		return err
	}

	families, err := device.FindQueueFamilies(v.physicalDevice, v.surface)
	if err != nil {
		return err
	}
	v.queueFamilies = families

	/* Logical device and queues */
	if err := v.createLogicalDevice(); err != nil {
		return err
	}
	vk.GetDeviceQueue(v.logicalDevice, v.queueFamilies.Graphics, 0, &v.graphicsQueue)
	vk.GetDeviceQueue(v.logicalDevice, v.queueFamilies.Present, 0, &v.presentQueue)

	allocator, err := NewMemoryAllocator(v.logicalDevice, v.physicalDevice)
	if err != nil {
		return err
	}
	v.allocator = allocator

	/* Swapchain */
	if err := v.createSwapchain(nil); err != nil {
		return err
	}
	if err := v.createImageViews(); err != nil {
		return err
	}

	/* Pipeline */
	depthFormat, err := v.findDepthFormat()
	if err != nil {
		return err
	}
	v.depthImageFormat = depthFormat

	if err := v.loadShaders(); err != nil {
		return err
	}
	if err := v.createRenderPass(); err != nil {
		return err
	}
	if err := v.createPipelineLayout(); err != nil {
		return err
	}
	if err := v.createPipelineCache(); err != nil {
		return err
	}
	if err := v.createPipeline(); err != nil {
		return err
	}
	v.createViewport()

	/* Depth buffer and framebuffers */
	if err := v.prepareDepthImage(); err != nil {
		return err
	}
	if err := v.createFramebuffers(); err != nil {
		return err
	}

	/* Command buffers */
	if err := v.createCommandPool(); err != nil {
		return err
	}
	if err := v.allocateCommandBuffers(); err != nil {
		return err
	}

	/* Mesh and texture */
	if err := v.createMeshBuffers(); err != nil {
		return err
	}
	if err := v.createTextureImage(); err != nil {
		return err
	}
	if err := v.createTextureImageView(); err != nil {
		return err
	}
	if err := v.createTextureSampler(); err != nil {
		return err
	}

	/* Descriptors and uniforms */
	if err := v.createUniformBuffers(); err != nil {
		return err
	}
	if err := v.prepareDescriptorPool(); err != nil {
		return err
	}
	if err := v.createDescriptorSets(); err != nil {
		return err
	}

	/* Synchronization */
	if err := v.createSynchronization(); err != nil {
		return err
	}

	v.epoch = hrtime.Now()
	v.initialised = true
	return nil
}

func (v *VulkanRenderer) createLogicalDevice() error {
	uniqueFamilies := map[uint32]bool{
		v.queueFamilies.Graphics: true,
		v.queueFamilies.Present:  true,
	}

	var queueInfos []vk.DeviceQueueCreateInfo
	for family := range uniqueFamilies {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}

	anisotropy := vk.Bool32(vk.False)
	if v.deviceInfo[v.deviceIndex].Features.SamplerAnisotropy.B() {
		anisotropy = vk.True
	}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(v.configuration.DeviceExtensions)),
		PpEnabledExtensionNames: safeStrings(v.configuration.DeviceExtensions),
		PEnabledFeatures: []vk.PhysicalDeviceFeatures{{
			SamplerAnisotropy: anisotropy,
		}},
	}

	var logicalDevice vk.Device
	if err := vk.Error(vk.CreateDevice(v.physicalDevice, &dci, nil, &logicalDevice)); err != nil {
		return errors.New("vk.CreateDevice(): " + err.Error())
	}
	v.logicalDevice = logicalDevice
	return nil
}

func (v *VulkanRenderer) surfaceSupport(dev vk.PhysicalDevice) ([]vk.SurfaceFormat, []vk.PresentMode, error) {
	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev, v.surface, &formatCount, nil)); err != nil {
		return nil, nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(dev, v.surface, &formatCount, formats)); err != nil {
		return nil, nil, errors.New("vk.GetPhysicalDeviceSurfaceFormats(): " + err.Error())
	}
	for idx := range formats {
		formats[idx].Deref()
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev, v.surface, &modeCount, nil)); err != nil {
		return nil, nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(dev, v.surface, &modeCount, modes)); err != nil {
		return nil, nil, errors.New("vk.GetPhysicalDeviceSurfacePresentModes(): " + err.Error())
	}
	return formats, modes, nil
}

// chooseSurfaceFormat prefers the 8-bit BGRA sRGB pair, falling back
// to whatever the surface reports first.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// choosePresentMode prefers mailbox. FIFO is the fallback,
// every conforming implementation has it.
func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// chooseExtent returns the extent the surface dictates, or the live
// framebuffer size clamped into the supported range when the surface
// leaves the choice up to the swapchain.
func chooseExtent(capabilities vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != math.MaxUint32 {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clampUint32(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

func clampUint32(value, min, max uint32) uint32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// chooseImageCount settles the number of swapchain images, asking for
// one over the minimum when the configuration does not request more,
// staying inside the surface limits either way.
func chooseImageCount(capabilities vk.SurfaceCapabilities, requested uint32) uint32 {
	count := capabilities.MinImageCount + 1
	if requested > count {
		count = requested
	}
	if count < capabilities.MinImageCount {
		count = capabilities.MinImageCount
	}
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// chooseSharingMode picks concurrent sharing only when drawing and
// presentation live on different queue families.
func chooseSharingMode(families device.QueueFamilies) (vk.SharingMode, []uint32) {
	if families.Complete() && !families.Same() {
		return vk.SharingModeConcurrent, []uint32{families.Graphics, families.Present}
	}
	return vk.SharingModeExclusive, nil
}

func (v *VulkanRenderer) framebufferSize() (uint32, uint32) {
	if v.configuration.FramebufferSize != nil {
		return v.configuration.FramebufferSize()
	}
	return v.configuration.ScreenWidth, v.configuration.ScreenHeight
}

func (v *VulkanRenderer) createSwapchain(oldSwapchain vk.Swapchain) error {
	var surfaceCapabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(v.physicalDevice, v.surface, &surfaceCapabilities)); err != nil {
		return errors.New("vk.GetPhysicalDeviceSurfaceCapabilities(): " + err.Error())
	}
	surfaceCapabilities.Deref()
	surfaceCapabilities.CurrentExtent.Deref()
	surfaceCapabilities.MinImageExtent.Deref()
	surfaceCapabilities.MaxImageExtent.Deref()

	formats, modes, err := v.surfaceSupport(v.physicalDevice)
	if err != nil {
		return err
	}
	if len(formats) == 0 || len(modes) == 0 {
		return errors.New("surface reports no formats or present modes")
	}

	format := chooseSurfaceFormat(formats)
	v.imageFormat = format.Format
	v.imageColorspace = format.ColorSpace
	v.presentMode = choosePresentMode(modes)

	width, height := v.framebufferSize()
	extent := chooseExtent(surfaceCapabilities, width, height)
	v.currentSurfaceWidth = extent.Width
	v.currentSurfaceHeight = extent.Height

	sharingMode, familyIndices := chooseSharingMode(v.queueFamilies)

	compositeAlpha := vk.CompositeAlphaOpaqueBit
	compositeAlphaFlags := []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	}
	for i := 0; i < len(compositeAlphaFlags); i++ {
		alphaFlags := vk.CompositeAlphaFlags(compositeAlphaFlags[i])
		flagSupported := surfaceCapabilities.SupportedCompositeAlpha&alphaFlags != 0
		if flagSupported {
			compositeAlpha = compositeAlphaFlags[i]
			break
		}
	}

	scci := vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               v.surface,
		MinImageCount:         chooseImageCount(surfaceCapabilities, v.configuration.SwapchainSize),
		ImageFormat:           v.imageFormat,
		ImageColorSpace:       v.imageColorspace,
		ImageExtent:           extent,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:          surfaceCapabilities.CurrentTransform,
		CompositeAlpha:        compositeAlpha,
		PresentMode:           v.presentMode,
		Clipped:               vk.True,
		ImageArrayLayers:      1,
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(familyIndices)),
		PQueueFamilyIndices:   familyIndices,
		OldSwapchain:          oldSwapchain,
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(v.logicalDevice, &scci, nil, &swapchain)); err != nil {
		return errors.New("vk.CreateSwapchain(): " + err.Error())
	}
	v.swapchain = swapchain

	log.Debugf("swapchain: %dx%d, format %d, present mode %d", extent.Width, extent.Height, v.imageFormat, v.presentMode)

	var numImages uint32
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &numImages, nil)); err != nil {
		return errors.New("vk.GetSwapchainImages(num): " + err.Error())
	}

	v.swapchainImages = make([]vk.Image, numImages)
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &numImages, v.swapchainImages)); err != nil {
		return errors.New("vk.GetSwapchainImages(images): " + err.Error())
	}
	return nil
}

func (v *VulkanRenderer) createImageViews() error {
	for idx := 0; idx < len(v.swapchainImages); idx++ {
		var imageView vk.ImageView
		ivci := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    v.swapchainImages[idx],
			ViewType: vk.ImageViewType2d,
			Format:   v.imageFormat,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		}

		if err := vk.Error(vk.CreateImageView(v.logicalDevice, &ivci, nil, &imageView)); err != nil {
			return fmt.Errorf("vk.CreateImageView(view %d): %s", idx, err.Error())
		}

		v.swapchainImageViews = append(v.swapchainImageViews, imageView)
	}
	return nil
}

func (v *VulkanRenderer) loadShaders() error {
	if len(v.material.VertexShader) > 0 && len(v.material.FragmentShader) > 0 {
		vert, err := NewShaderFromBytes(v.material.Name+".vert", VertexShaderType, v.material.VertexShader, v.logicalDevice)
		if err != nil {
			return err
		}
		frag, err := NewShaderFromBytes(v.material.Name+".frag", FragmentShaderType, v.material.FragmentShader, v.logicalDevice)
		if err != nil {
			return err
		}
		v.shaders = []Shader{vert, frag}
		return nil
	}

	shaderFiles, shaderTypes, err := loadShaderFilesFromDirectory(v.configuration.ShaderDirectory)
	if err != nil {
		return err
	}
	if len(shaderFiles) == 0 {
		return errors.New("no staged material and no compiled shaders in " + v.configuration.ShaderDirectory)
	}

	var shaders []Shader
	for idx, val := range shaderFiles {
		shader, err := NewVulkanShader(val, shaderTypes[idx], v.logicalDevice)
		if err != nil {
			return err
		}
		shaders = append(shaders, shader)
	}
	v.shaders = shaders
	return nil
}

func (v *VulkanRenderer) findDepthFormat() (vk.Format, error) {
	candidates := []vk.Format{
		vk.FormatD32Sfloat,
		vk.FormatD32SfloatS8Uint,
		vk.FormatD24UnormS8Uint,
	}
	for _, format := range candidates {
		var props vk.FormatProperties
		vk.GetPhysicalDeviceFormatProperties(v.physicalDevice, format, &props)
		props.Deref()
		if props.OptimalTilingFeatures&vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit) != 0 {
			return format, nil
		}
	}
	return vk.FormatUndefined, errors.New("no supported depth attachment format")
}

func (v *VulkanRenderer) createRenderPass() error {
	attachments := []vk.AttachmentDescription{
		vk.AttachmentDescription{
			Format:         v.imageFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		},
		vk.AttachmentDescription{
			Format:         v.depthImageFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpDontCare,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}

	colorAttachmentRef := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}

	subpassDependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    uint32(len(colorAttachmentRef)),
		PColorAttachments:       colorAttachmentRef,
		PDepthStencilAttachment: &depthAttachmentRef,
	}

	rpci := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{subpassDependency},
	}

	var renderPass vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(v.logicalDevice, &rpci, nil, &renderPass)); err != nil {
		return errors.New("vk.CreateRenderPass(): " + err.Error())
	}
	v.renderPass = renderPass
	return nil
}

func (v *VulkanRenderer) createPipelineLayout() error {
	bindings := []vk.DescriptorSetLayoutBinding{
		vk.DescriptorSetLayoutBinding{
			Binding:         0,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		},
		vk.DescriptorSetLayoutBinding{
			Binding:         1,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
			StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
		},
	}

	dslci := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var descriptorSetLayout vk.DescriptorSetLayout
	if err := vk.Error(vk.CreateDescriptorSetLayout(v.logicalDevice, &dslci, nil, &descriptorSetLayout)); err != nil {
		return errors.New("vk.CreateDescriptorSetLayout(): " + err.Error())
	}
	v.descriptorSetLayout = descriptorSetLayout

	pcr := []vk.PushConstantRange{
		vk.PushConstantRange{
			Offset:     0,
			Size:       uint32(unsafe.Sizeof(pushConstant{})),
			StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		},
	}

	plci := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         1,
		PSetLayouts:            []vk.DescriptorSetLayout{v.descriptorSetLayout},
		PushConstantRangeCount: uint32(len(pcr)),
		PPushConstantRanges:    pcr,
	}

	var pipelineLayout vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(v.logicalDevice, &plci, nil, &pipelineLayout)); err != nil {
		return errors.New("vk.CreatePipelineLayout(): " + err.Error())
	}
	v.pipelineLayout = pipelineLayout
	return nil
}

func (v *VulkanRenderer) createPipelineCache() error {
	pcci := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var pipelineCache vk.PipelineCache
	if err := vk.Error(vk.CreatePipelineCache(v.logicalDevice, &pcci, nil, &pipelineCache)); err != nil {
		return errors.New("vk.CreatePipelineCache(): " + err.Error())
	}
	v.pipelineCache = pipelineCache
	return nil
}

func (v *VulkanRenderer) createPipeline() error {
	pipelineShaderStagesInfo := make([]vk.PipelineShaderStageCreateInfo, len(v.shaders))
	for idx, shader := range v.shaders {

		var stage vk.ShaderStageFlagBits
		switch shader.Type() {
		case VertexShaderType:
			stage = vk.ShaderStageVertexBit
		case FragmentShaderType:
			stage = vk.ShaderStageFragmentBit
		default:
			return errors.New("unsupported shader type attempted creation")
		}

		var shaderModule vk.ShaderModule
		if sm, ok := shader.ShaderModule().(vk.ShaderModule); ok {
			shaderModule = sm
		} else {
			return errors.New("failed to assert shader module to it's original type")
		}

		pipelineShaderStagesInfo[idx].SType = vk.StructureTypePipelineShaderStageCreateInfo
		pipelineShaderStagesInfo[idx].Stage = stage
		pipelineShaderStagesInfo[idx].Module = shaderModule
		pipelineShaderStagesInfo[idx].PName = safeString("main")
	}

	vertexAttributeDescriptions := model.VertexAttributeDescriptions()
	vertexBindingDescriptions := model.VertexBindingDescriptions()

	gpci := []vk.GraphicsPipelineCreateInfo{{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(pipelineShaderStagesInfo)),
		PStages:    pipelineShaderStagesInfo,
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
			VertexAttributeDescriptionCount: uint32(len(vertexAttributeDescriptions)),
			PVertexAttributeDescriptions:    vertexAttributeDescriptions,
			VertexBindingDescriptionCount:   uint32(len(vertexBindingDescriptions)),
			PVertexBindingDescriptions:      vertexBindingDescriptions,
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: vk.PrimitiveTopologyTriangleList,
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			ScissorCount:  1,
		},
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:   v.configuration.Winding,
			LineWidth:   1.0,
		},
		PDepthStencilState: &vk.PipelineDepthStencilStateCreateInfo{
			SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:       vk.True,
			DepthWriteEnable:      vk.True,
			DepthCompareOp:        vk.CompareOpLess,
			DepthBoundsTestEnable: vk.False,
			Back: vk.StencilOpState{
				FailOp:    vk.StencilOpKeep,
				PassOp:    vk.StencilOpKeep,
				CompareOp: vk.CompareOpAlways,
			},
			StencilTestEnable: vk.False,
			Front: vk.StencilOpState{
				FailOp:    vk.StencilOpKeep,
				PassOp:    vk.StencilOpKeep,
				CompareOp: vk.CompareOpAlways,
			},
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			AttachmentCount: 1,
			PAttachments: []vk.PipelineColorBlendAttachmentState{{
				ColorWriteMask: 0xF,
				BlendEnable:    vk.False,
			}},
		},
		PDynamicState: &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: 2,
			PDynamicStates: []vk.DynamicState{
				vk.DynamicStateScissor,
				vk.DynamicStateViewport,
			},
		},
		Layout:     v.pipelineLayout,
		RenderPass: v.renderPass,
	}}

	pipelines := make([]vk.Pipeline, len(gpci))
	if err := vk.Error(vk.CreateGraphicsPipelines(v.logicalDevice, v.pipelineCache, uint32(len(gpci)), gpci, nil, pipelines)); err != nil {
		return errors.New("vk.CreateGraphicsPipelines(): " + err.Error())
	}
	v.pipeline = pipelines[0]
	return nil
}

func (v *VulkanRenderer) createViewport() {
	viewport := vk.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(v.currentSurfaceWidth),
		Height:   float32(v.currentSurfaceHeight),
		MinDepth: 0,
		MaxDepth: 1,
	}

	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: vk.Extent2D{
			Width:  v.currentSurfaceWidth,
			Height: v.currentSurfaceHeight,
		},
	}

	v.viewport = viewport
	v.scissor = scissor
}

func (v *VulkanRenderer) prepareDepthImage() error {
	depthImage, err := NewImage(v.logicalDevice,
		v.currentSurfaceWidth, v.currentSurfaceHeight,
		v.depthImageFormat, vk.ImageTilingOptimal,
		vk.ImageUsageDepthStencilAttachmentBit,
		vk.MemoryPropertyDeviceLocalBit, v.allocator)
	if err != nil {
		return err
	}
	v.depthImage = depthImage

	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Format:   v.depthImageFormat,
		Image:    depthImage.Get(),
		ViewType: vk.ImageViewType2d,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectDepthBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var depthImageView vk.ImageView
	if err := vk.Error(vk.CreateImageView(v.logicalDevice, &ivci, nil, &depthImageView)); err != nil {
		return errors.New("vk.CreateImageView(): " + err.Error())
	}
	v.depthImageView = depthImageView
	return nil
}

func (v *VulkanRenderer) createFramebuffers() error {
	for _, imageView := range v.swapchainImageViews {
		attachments := []vk.ImageView{
			imageView,
			v.depthImageView,
		}

		fci := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      v.renderPass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           v.currentSurfaceWidth,
			Height:          v.currentSurfaceHeight,
			Layers:          1,
		}

		var framebuffer vk.Framebuffer
		if err := vk.Error(vk.CreateFramebuffer(v.logicalDevice, &fci, nil, &framebuffer)); err != nil {
			return errors.New("vk.CreateFramebuffer(): " + err.Error())
		}
		v.framebuffers = append(v.framebuffers, framebuffer)
	}
	return nil
}

func (v *VulkanRenderer) createCommandPool() error {
	cpci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: v.queueFamilies.Graphics,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var commandPool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(v.logicalDevice, &cpci, nil, &commandPool)); err != nil {
		return errors.New("vk.CreateCommandPool(): " + err.Error())
	}
	v.commandPool = commandPool
	return nil
}

func (v *VulkanRenderer) allocateCommandBuffers() error {
	commandBuffers := make([]vk.CommandBuffer, maxFramesInFlight)
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        v.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(len(commandBuffers)),
	}

	if err := vk.Error(vk.AllocateCommandBuffers(v.logicalDevice, &cbai, commandBuffers)); err != nil {
		return errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}
	v.commandBuffers = commandBuffers
	return nil
}

func (v *VulkanRenderer) beginSingleTimeCommands() (vk.CommandBuffer, error) {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		Level:              vk.CommandBufferLevelPrimary,
		CommandPool:        v.commandPool,
		CommandBufferCount: 1,
	}

	commandBuffers := make([]vk.CommandBuffer, 1)
	if err := vk.Error(vk.AllocateCommandBuffers(v.logicalDevice, &cbai, commandBuffers)); err != nil {
		return nil, errors.New("vk.AllocateCommandBuffers(): " + err.Error())
	}

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(commandBuffers[0], &cbbi)); err != nil {
		return nil, errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}
	return commandBuffers[0], nil
}

func (v *VulkanRenderer) endSingleTimeCommands(commandBuffer vk.CommandBuffer) error {
	if err := vk.Error(vk.EndCommandBuffer(commandBuffer)); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{commandBuffer},
	}

	if err := vk.Error(vk.QueueSubmit(v.graphicsQueue, 1, []vk.SubmitInfo{submitInfo}, vk.NullFence)); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}
	vk.QueueWaitIdle(v.graphicsQueue)

	vk.FreeCommandBuffers(v.logicalDevice, v.commandPool, 1, []vk.CommandBuffer{commandBuffer})
	return nil
}

func (v *VulkanRenderer) copyBuffer(src, dst vk.Buffer, size int) error {
	commandBuffer, err := v.beginSingleTimeCommands()
	if err != nil {
		return err
	}

	copyRegion := vk.BufferCopy{
		Size: vk.DeviceSize(size),
	}
	vk.CmdCopyBuffer(commandBuffer, src, dst, 1, []vk.BufferCopy{copyRegion})

	return v.endSingleTimeCommands(commandBuffer)
}

func (v *VulkanRenderer) copyBufferToImage(buffer vk.Buffer, image vk.Image, width, height uint32) error {
	commandBuffer, err := v.beginSingleTimeCommands()
	if err != nil {
		return err
	}

	region := vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:   0,
			LayerCount: 1,
		},
		ImageOffset: vk.Offset3D{X: 0, Y: 0, Z: 0},
		ImageExtent: vk.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
	}
	vk.CmdCopyBufferToImage(commandBuffer, buffer, image, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})

	return v.endSingleTimeCommands(commandBuffer)
}

// transitionRule holds the barrier parameters of a supported
// image layout transition.
type transitionRule struct {
	srcAccess vk.AccessFlags
	dstAccess vk.AccessFlags
	srcStage  vk.PipelineStageFlags
	dstStage  vk.PipelineStageFlags
}

// transitionFor resolves access masks and stages for the layout
// transitions the renderer performs. Anything outside the table
// is refused.
func transitionFor(oldLayout, newLayout vk.ImageLayout) (transitionRule, error) {
	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		return transitionRule{
			srcAccess: 0,
			dstAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			srcStage:  vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
			dstStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
		}, nil
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		return transitionRule{
			srcAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			dstAccess: vk.AccessFlags(vk.AccessShaderReadBit),
			srcStage:  vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			dstStage:  vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit),
		}, nil
	}
	return transitionRule{}, errors.New("unsupported layout transition")
}

func (v *VulkanRenderer) transitionImageLayout(image vk.Image, oldLayout, newLayout vk.ImageLayout) error {
	rule, err := transitionFor(oldLayout, newLayout)
	if err != nil {
		return err
	}

	commandBuffer, err := v.beginSingleTimeCommands()
	if err != nil {
		return err
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               image,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
		SrcAccessMask: rule.srcAccess,
		DstAccessMask: rule.dstAccess,
	}

	vk.CmdPipelineBarrier(commandBuffer, rule.srcStage, rule.dstStage, 0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})

	return v.endSingleTimeCommands(commandBuffer)
}

// copyToMapped copies size bytes into mapped device memory.
func copyToMapped(dst unsafe.Pointer, src unsafe.Pointer, size int) {
	var dstSlice []byte
	dstHeader := (*sliceHeader)(unsafe.Pointer(&dstSlice))
	dstHeader.Data = uintptr(dst)
	dstHeader.Len = size
	dstHeader.Cap = size

	var srcSlice []byte
	srcHeader := (*sliceHeader)(unsafe.Pointer(&srcSlice))
	srcHeader.Data = uintptr(src)
	srcHeader.Len = size
	srcHeader.Cap = size

	copy(dstSlice, srcSlice)
}

// uploadViaStaging pushes arbitrary data through a host visible
// staging buffer into a device local buffer of the given usage.
func (v *VulkanRenderer) uploadViaStaging(data unsafe.Pointer, size int, usage vk.BufferUsageFlagBits) (Buffer, error) {
	staging, err := NewBuffer(v.logicalDevice, uint(size), vk.BufferUsageTransferSrcBit, vk.SharingModeExclusive,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, v.allocator)
	if err != nil {
		return Buffer{}, err
	}
	defer staging.Release()

	copyToMapped(staging.Mem().Map(), data, size)
	staging.Mem().Unmap()

	final, err := NewBuffer(v.logicalDevice, uint(size), vk.BufferUsageTransferDstBit|usage, vk.SharingModeExclusive,
		vk.MemoryPropertyDeviceLocalBit, v.allocator)
	if err != nil {
		return Buffer{}, err
	}

	if err := v.copyBuffer(staging.Get(), final.Get(), size); err != nil {
		final.Release()
		return Buffer{}, err
	}
	return final, nil
}

func (v *VulkanRenderer) createMeshBuffers() error {
	mesh := v.mesh
	if mesh == nil {
		mesh = builtinQuad()
	}

	vertices := mesh.Vertices()
	indices := mesh.Indices()
	if len(vertices) == 0 || len(indices) == 0 {
		return errors.New("staged mesh has no geometry")
	}

	vertexBuffer, err := v.uploadViaStaging(unsafe.Pointer(&vertices[0]),
		int(unsafe.Sizeof(model.Vertex{}))*len(vertices), vk.BufferUsageVertexBufferBit)
	if err != nil {
		return err
	}
	v.vertexBuffer = vertexBuffer

	indexBuffer, err := v.uploadViaStaging(unsafe.Pointer(&indices[0]),
		4*len(indices), vk.BufferUsageIndexBufferBit)
	if err != nil {
		return err
	}
	v.indexBuffer = indexBuffer
	v.indexCount = uint32(len(indices))
	return nil
}

func (v *VulkanRenderer) createTextureImage() error {
	texture := v.material.Texture
	if texture == nil {
		texture = checkerboard(256, 32)
	}

	bounds := texture.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())

	pixels, err := GetPixels(texture, 0)
	if err != nil {
		return err
	}

	staging, err := NewBuffer(v.logicalDevice, uint(len(pixels)), vk.BufferUsageTransferSrcBit, vk.SharingModeExclusive,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, v.allocator)
	if err != nil {
		return err
	}
	defer staging.Release()

	copyToMapped(staging.Mem().Map(), unsafe.Pointer(&pixels[0]), len(pixels))
	staging.Mem().Unmap()

	textureImage, err := NewImage(v.logicalDevice, width, height,
		vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal,
		vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit,
		vk.MemoryPropertyDeviceLocalBit, v.allocator)
	if err != nil {
		return err
	}

	if err := v.transitionImageLayout(textureImage.Get(), vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	if err := v.copyBufferToImage(staging.Get(), textureImage.Get(), width, height); err != nil {
		return err
	}
	if err := v.transitionImageLayout(textureImage.Get(), vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		return err
	}

	v.textureImage = textureImage
	return nil
}

func (v *VulkanRenderer) createTextureImageView() error {
	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    v.textureImage.Get(),
		ViewType: vk.ImageViewType2d,
		Format:   vk.FormatR8g8b8a8Unorm,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var textureImageView vk.ImageView
	if err := vk.Error(vk.CreateImageView(v.logicalDevice, &ivci, nil, &textureImageView)); err != nil {
		return errors.New("vk.CreateImageView(): " + err.Error())
	}
	v.textureImageView = textureImageView
	return nil
}

func (v *VulkanRenderer) createTextureSampler() error {
	sci := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterLinear,
		MinFilter:               vk.FilterLinear,
		AddressModeU:            vk.SamplerAddressModeRepeat,
		AddressModeV:            vk.SamplerAddressModeRepeat,
		AddressModeW:            vk.SamplerAddressModeRepeat,
		AnisotropyEnable:        v.deviceInfo[v.deviceIndex].Features.SamplerAnisotropy,
		MaxAnisotropy:           16,
		BorderColor:             vk.BorderColorFloatOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipmapMode:              vk.SamplerMipmapModeLinear,
	}

	var textureSampler vk.Sampler
	if err := vk.Error(vk.CreateSampler(v.logicalDevice, &sci, nil, &textureSampler)); err != nil {
		return fmt.Errorf("vk.CreateSampler(): %s", err.Error())
	}
	v.textureSampler = textureSampler
	return nil
}

func (v *VulkanRenderer) createUniformBuffers() error {
	size := uint(unsafe.Sizeof(model.Uniform{}))
	for idx := 0; idx < maxFramesInFlight; idx++ {
		buffer, err := NewBuffer(v.logicalDevice, size, vk.BufferUsageUniformBufferBit, vk.SharingModeExclusive,
			vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, v.allocator)
		if err != nil {
			return err
		}

		// Mapped once here and left mapped until teardown.
		v.uniformBuffers = append(v.uniformBuffers, buffer)
		v.uniformMappings = append(v.uniformMappings, v.uniformBuffers[idx].Mem().Map())
	}
	return nil
}

func (v *VulkanRenderer) prepareDescriptorPool() error {
	dpci := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       maxFramesInFlight,
		PoolSizeCount: 2,
		PPoolSizes: []vk.DescriptorPoolSize{
			vk.DescriptorPoolSize{
				Type:            vk.DescriptorTypeUniformBuffer,
				DescriptorCount: maxFramesInFlight,
			},
			vk.DescriptorPoolSize{
				Type:            vk.DescriptorTypeCombinedImageSampler,
				DescriptorCount: maxFramesInFlight,
			},
		},
	}

	var descriptorPool vk.DescriptorPool
	if err := vk.Error(vk.CreateDescriptorPool(v.logicalDevice, &dpci, nil, &descriptorPool)); err != nil {
		return errors.New("vk.CreateDescriptorPool(): " + err.Error())
	}
	v.descriptorPool = descriptorPool
	return nil
}

func (v *VulkanRenderer) createDescriptorSets() error {
	for idx := 0; idx < maxFramesInFlight; idx++ {
		dsai := vk.DescriptorSetAllocateInfo{
			SType:              vk.StructureTypeDescriptorSetAllocateInfo,
			DescriptorPool:     v.descriptorPool,
			DescriptorSetCount: 1,
			PSetLayouts:        []vk.DescriptorSetLayout{v.descriptorSetLayout},
		}

		var descriptorSet vk.DescriptorSet
		if err := vk.Error(vk.AllocateDescriptorSets(v.logicalDevice, &dsai, &descriptorSet)); err != nil {
			return errors.New("vk.AllocateDescriptorSets(): " + err.Error())
		}

		dbi := vk.DescriptorBufferInfo{
			Buffer: v.uniformBuffers[idx].Get(),
			Offset: 0,
			Range:  vk.DeviceSize(unsafe.Sizeof(model.Uniform{})),
		}

		dii := vk.DescriptorImageInfo{
			ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
			ImageView:   v.textureImageView,
			Sampler:     v.textureSampler,
		}

		writes := []vk.WriteDescriptorSet{
			vk.WriteDescriptorSet{
				SType:           vk.StructureTypeWriteDescriptorSet,
				DstSet:          descriptorSet,
				DstBinding:      0,
				DescriptorCount: 1,
				DescriptorType:  vk.DescriptorTypeUniformBuffer,
				PBufferInfo:     []vk.DescriptorBufferInfo{dbi},
			},
			vk.WriteDescriptorSet{
				SType:           vk.StructureTypeWriteDescriptorSet,
				DstSet:          descriptorSet,
				DstBinding:      1,
				DescriptorCount: 1,
				DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
				PImageInfo:      []vk.DescriptorImageInfo{dii},
			},
		}
		vk.UpdateDescriptorSets(v.logicalDevice, uint32(len(writes)), writes, 0, nil)

		v.descriptorSets = append(v.descriptorSets, descriptorSet)
	}
	return nil
}

func (v *VulkanRenderer) createSynchronization() error {
	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	// Fences start signaled so the first wait on every
	// frame slot passes immediately.
	fci := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}

	for idx := 0; idx < maxFramesInFlight; idx++ {
		var imageAvailable, renderFinished vk.Semaphore
		if err := vk.Error(vk.CreateSemaphore(v.logicalDevice, &sci, nil, &imageAvailable)); err != nil {
			return errors.New("vk.CreateSemaphore(): " + err.Error())
		}
		if err := vk.Error(vk.CreateSemaphore(v.logicalDevice, &sci, nil, &renderFinished)); err != nil {
			return errors.New("vk.CreateSemaphore(): " + err.Error())
		}

		var fence vk.Fence
		if err := vk.Error(vk.CreateFence(v.logicalDevice, &fci, nil, &fence)); err != nil {
			return errors.New("vk.CreateFence(): " + err.Error())
		}

		v.imageAvailableSemaphores = append(v.imageAvailableSemaphores, imageAvailable)
		v.renderFinishedSemaphores = append(v.renderFinishedSemaphores, renderFinished)
		v.inFlightFences = append(v.inFlightFences, fence)
	}
	return nil
}

// nextFrame advances a frame slot index, wrapping at the in-flight limit.
func nextFrame(slot int) int {
	return (slot + 1) % maxFramesInFlight
}

// Render implements interface
func (v *VulkanRenderer) Render() error {
	slot := v.frameIndex
	timeout := uint64(v.configuration.FrameTimeout.Nanoseconds())

	/* Wait for the slot to free up */
	res := vk.WaitForFences(v.logicalDevice, 1, []vk.Fence{v.inFlightFences[slot]}, vk.True, timeout)
	if res == vk.Timeout {
		return ErrFrameTimeout
	}
	if err := vk.Error(res); err != nil {
		return errors.New("vk.WaitForFences(): " + err.Error())
	}

	/* Acquire a swapchain image */
	var imageIndex uint32
	res = vk.AcquireNextImage(v.logicalDevice, v.swapchain, timeout, v.imageAvailableSemaphores[slot], vk.NullFence, &imageIndex)
	switch res {
	case vk.ErrorOutOfDate:
		// The slot retries against the rebuilt swapchain,
		// its fence stays signaled.
		return v.recreateSwapchain()
	case vk.Timeout, vk.NotReady:
		return ErrFrameTimeout
	case vk.Success, vk.Suboptimal:
	default:
		return errors.New("vk.AcquireNextImage(): " + vk.Error(res).Error())
	}

	/* An image is coming, commit to the frame */
	if err := vk.Error(vk.ResetFences(v.logicalDevice, 1, []vk.Fence{v.inFlightFences[slot]})); err != nil {
		return errors.New("vk.ResetFences(): " + err.Error())
	}

	if err := v.buildCommandBuffer(slot, imageIndex); err != nil {
		return err
	}
	v.updateUniform(slot)

	/* Submit */
	submit := []vk.SubmitInfo{{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{v.imageAvailableSemaphores[slot]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{v.commandBuffers[slot]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{v.renderFinishedSemaphores[slot]},
	}}
	if err := vk.Error(vk.QueueSubmit(v.graphicsQueue, 1, submit, v.inFlightFences[slot])); err != nil {
		return errors.New("vk.QueueSubmit(): " + err.Error())
	}

	/* Present */
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{v.renderFinishedSemaphores[slot]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{v.swapchain},
		PImageIndices:      []uint32{imageIndex},
	}

	res = vk.QueuePresent(v.presentQueue, &presentInfo)
	resized := atomic.CompareAndSwapUint32(&v.resizePending, 1, 0)
	if res == vk.ErrorOutOfDate || res == vk.Suboptimal || resized {
		// The next frame draws from the same slot, recreation
		// leaves the device idle so nothing is still in flight.
		return v.recreateSwapchain()
	}
	if err := vk.Error(res); err != nil {
		return errors.New("vk.QueuePresent(): " + err.Error())
	}

	v.frameIndex = nextFrame(slot)
	return nil
}

func (v *VulkanRenderer) buildCommandBuffer(slot int, imageIndex uint32) error {
	commandBuffer := v.commandBuffers[slot]

	if err := vk.Error(vk.ResetCommandBuffer(commandBuffer, 0)); err != nil {
		return errors.New("vk.ResetCommandBuffer(): " + err.Error())
	}

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if err := vk.Error(vk.BeginCommandBuffer(commandBuffer, &cbbi)); err != nil {
		return errors.New("vk.BeginCommandBuffer(): " + err.Error())
	}

	clearValues := make([]vk.ClearValue, 2)
	clearValues[0].SetColor([]float32{0, 0.05, 0.1, 1})
	clearValues[1].SetDepthStencil(1, 0)

	rpbi := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  v.renderPass,
		Framebuffer: v.framebuffers[imageIndex],
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{
				Width:  v.currentSurfaceWidth,
				Height: v.currentSurfaceHeight,
			},
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}

	vk.CmdBeginRenderPass(commandBuffer, &rpbi, vk.SubpassContentsInline)
	vk.CmdBindPipeline(commandBuffer, vk.PipelineBindPointGraphics, v.pipeline)
	vk.CmdSetViewport(commandBuffer, 0, 1, []vk.Viewport{v.viewport})
	vk.CmdSetScissor(commandBuffer, 0, 1, []vk.Rect2D{v.scissor})
	vk.CmdBindVertexBuffers(commandBuffer, 0, 1, []vk.Buffer{v.vertexBuffer.Get()}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(commandBuffer, v.indexBuffer.Get(), 0, vk.IndexTypeUint32)
	vk.CmdBindDescriptorSets(commandBuffer, vk.PipelineBindPointGraphics, v.pipelineLayout, 0, 1,
		[]vk.DescriptorSet{v.descriptorSets[slot]}, 0, nil)

	pc := pushConstant{Model: v.meshTransform()}
	vk.CmdPushConstants(commandBuffer, v.pipelineLayout, vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0,
		uint32(unsafe.Sizeof(pc)), unsafe.Pointer(&pc))

	vk.CmdDrawIndexed(commandBuffer, v.indexCount, 1, 0, 0, 0)
	vk.CmdEndRenderPass(commandBuffer)

	if err := vk.Error(vk.EndCommandBuffer(commandBuffer)); err != nil {
		return errors.New("vk.EndCommandBuffer(): " + err.Error())
	}
	return nil
}

func (v *VulkanRenderer) meshTransform() glm.Mat4 {
	if v.mesh != nil {
		return v.mesh.Position().Mul4(v.mesh.Rotation())
	}
	return glm.Ident4()
}

func (v *VulkanRenderer) updateUniform(slot int) {
	elapsed := float32((hrtime.Now() - v.epoch).Seconds())
	aspect := float32(v.currentSurfaceWidth) / float32(v.currentSurfaceHeight)

	ubo := model.Uniform{
		Model:      glm.HomogRotate3D(glm.DegToRad(90)*elapsed, glm.Vec3{0, 0, 1}),
		View:       glm.LookAt(2, 2, 2, 0, 0, 0, 0, 0, 1),
		Projection: glm.Perspective(glm.DegToRad(45), aspect, 0.1, 10),
	}
	// Flip from OpenGL to Vulkan projection
	ubo.Projection[5] *= -1

	copyToMapped(v.uniformMappings[slot], unsafe.Pointer(&ubo), int(unsafe.Sizeof(ubo)))
}

func (v *VulkanRenderer) recreateSwapchain() error {
	// A minimized window reports a zero size drawable area,
	// wait until it comes back.
	width, height := v.framebufferSize()
	for width == 0 || height == 0 {
		time.Sleep(10 * time.Millisecond)
		width, height = v.framebufferSize()
	}

	vk.DeviceWaitIdle(v.logicalDevice)
	v.cleanupSwapchain()

	oldSwapchain := v.swapchain
	if err := v.createSwapchain(oldSwapchain); err != nil {
		return err
	}
	vk.DestroySwapchain(v.logicalDevice, oldSwapchain, nil)

	if err := v.createImageViews(); err != nil {
		return err
	}
	if err := v.prepareDepthImage(); err != nil {
		return err
	}
	if err := v.createFramebuffers(); err != nil {
		return err
	}
	v.createViewport()

	log.Debugf("swapchain recreated at %dx%d", v.currentSurfaceWidth, v.currentSurfaceHeight)
	return nil
}

// cleanupSwapchain destroys everything sized to the swapchain.
// The swapchain itself is left for the recreation to consume.
func (v *VulkanRenderer) cleanupSwapchain() {
	for _, framebuffer := range v.framebuffers {
		vk.DestroyFramebuffer(v.logicalDevice, framebuffer, nil)
	}
	v.framebuffers = nil

	vk.DestroyImageView(v.logicalDevice, v.depthImageView, nil)
	v.depthImage.Release()

	for _, imageView := range v.swapchainImageViews {
		vk.DestroyImageView(v.logicalDevice, imageView, nil)
	}
	v.swapchainImageViews = nil
	v.swapchainImages = nil
}

// Destroy implements interface
func (v *VulkanRenderer) Destroy() {
	vk.DeviceWaitIdle(v.logicalDevice)

	for _, fence := range v.inFlightFences {
		vk.DestroyFence(v.logicalDevice, fence, nil)
	}
	for _, semaphore := range v.imageAvailableSemaphores {
		vk.DestroySemaphore(v.logicalDevice, semaphore, nil)
	}
	for _, semaphore := range v.renderFinishedSemaphores {
		vk.DestroySemaphore(v.logicalDevice, semaphore, nil)
	}

	vk.DestroyCommandPool(v.logicalDevice, v.commandPool, nil)

	vk.DestroyDescriptorPool(v.logicalDevice, v.descriptorPool, nil)
	vk.DestroyDescriptorSetLayout(v.logicalDevice, v.descriptorSetLayout, nil)

	for idx := range v.uniformBuffers {
		v.uniformBuffers[idx].Release()
	}
	v.indexBuffer.Release()
	v.vertexBuffer.Release()

	vk.DestroySampler(v.logicalDevice, v.textureSampler, nil)
	vk.DestroyImageView(v.logicalDevice, v.textureImageView, nil)
	v.textureImage.Release()

	vk.DestroyPipeline(v.logicalDevice, v.pipeline, nil)
	vk.DestroyPipelineCache(v.logicalDevice, v.pipelineCache, nil)
	vk.DestroyPipelineLayout(v.logicalDevice, v.pipelineLayout, nil)
	vk.DestroyRenderPass(v.logicalDevice, v.renderPass, nil)

	for _, shader := range v.shaders {
		shader.Destroy()
	}

	v.cleanupSwapchain()
	vk.DestroySwapchain(v.logicalDevice, v.swapchain, nil)
	vk.DestroyDevice(v.logicalDevice, nil)
}

// checkerboard paints the fallback texture used when no
// material texture was staged.
func checkerboard(size, square int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/square+y/square)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 235, G: 235, B: 235, A: 255})
			} else {
				img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
			}
		}
	}
	return img
}

// builtinQuad is the fallback mesh, a textured unit quad.
func builtinQuad() model.Object {
	vertices := []model.Vertex{
		{Pos: glm.Vec3{-0.5, -0.5, 0}, Color: glm.Vec3{1, 1, 1}, UV: glm.Vec2{0, 0}},
		{Pos: glm.Vec3{0.5, -0.5, 0}, Color: glm.Vec3{1, 1, 1}, UV: glm.Vec2{1, 0}},
		{Pos: glm.Vec3{0.5, 0.5, 0}, Color: glm.Vec3{1, 1, 1}, UV: glm.Vec2{1, 1}},
		{Pos: glm.Vec3{-0.5, 0.5, 0}, Color: glm.Vec3{1, 1, 1}, UV: glm.Vec2{0, 1}},
	}
	return model.NewStaticMesh(vertices, []uint32{0, 1, 2, 2, 3, 0})
}

// NewVulkanShader creates a Vulkan specific shader wrapper from a
// compiled shader file on disk
func NewVulkanShader(path string, shaderType ShaderType, device vk.Device) (Shader, error) {
	splitPath := strings.Split(path, "/")
	filename := splitPath[len(splitPath)-1]
	shaderName := strings.Split(filename, ".")[0]

	shaderContents, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewShaderFromBytes(shaderName, shaderType, shaderContents, device)
}

// NewShaderFromBytes creates a Vulkan specific shader wrapper from
// SPIR-V bytecode already in memory
func NewShaderFromBytes(name string, shaderType ShaderType, data []byte, device vk.Device) (Shader, error) {
	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    SliceUint32(data),
	}

	var shader vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, &smci, nil, &shader)); err != nil {
		return nil, fmt.Errorf("vk.CreateShaderModule(type %d): %s", shaderType, err.Error())
	}

	return &VulkanShader{
		shader:         shader,
		shaderType:     shaderType,
		shaderContents: data,
		name:           name,
		device:         device,
	}, nil
}

// VulkanShader is a Vulkan specific shader
type VulkanShader struct {
	Destroyable
	Shader

	name           string
	shaderType     ShaderType
	device         vk.Device
	shader         vk.ShaderModule
	shaderContents []byte
}

// Type implements interface
func (v VulkanShader) Type() ShaderType {
	return v.shaderType
}

// ShaderModule is an accssor to the internal vk.ShaderModule
func (v VulkanShader) ShaderModule() interface{} {
	return v.shader
}

// Name implements interface
func (v VulkanShader) Name() string {
	return v.name
}

// Destroy implements interface
func (v VulkanShader) Destroy() {
	vk.DestroyShaderModule(v.device, v.shader, nil)
}

type pushConstant struct {
	Model glm.Mat4
}
