// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// CollectInfo reads out all the queryable properties of a physical
// device. Enumeration failures mark the info Invalid instead of
// aborting, a partial listing is still useful for diagnostics.
func CollectInfo(dev vk.PhysicalDevice) PhysicalDeviceInfo {
	var info PhysicalDeviceInfo

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, nil)); err != nil {
		info.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, deviceExt)); err != nil {
		info.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		info.Extensions = append(info.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &numDeviceLayers, nil)); err != nil {
		info.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &numDeviceLayers, deviceLayers)); err != nil {
		info.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		info.Layers = append(info.Layers, vk.ToString(layer.LayerName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(dev, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory = info.Memory + memoryProperties.MemoryHeaps[iMem].Size
	}

	// Get general device info
	var physicalDeviceProperties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(dev, &physicalDeviceProperties)
	physicalDeviceProperties.Deref()
	physicalDeviceProperties.Limits.Deref()
	info.ID = int(physicalDeviceProperties.DeviceID)
	info.VendorID = int(physicalDeviceProperties.VendorID)
	info.DriverVersion = int(physicalDeviceProperties.DriverVersion)
	info.Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
	info.Discrete = physicalDeviceProperties.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu
	info.MaxImageDimension2D = physicalDeviceProperties.Limits.MaxImageDimension2D

	// Get feature info
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(dev, &features)
	features.Deref()
	info.Features = features

	return info
}

// FindQueueFamilies resolves the graphics and present queue family
// indices for a device and surface pair.
func FindQueueFamilies(dev vk.PhysicalDevice, surface vk.Surface) (QueueFamilies, error) {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(dev, &familyCount, nil)
	familyProperties := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(dev, &familyCount, familyProperties)

	flags := make([]vk.QueueFlags, familyCount)
	presentSupport := make([]bool, familyCount)
	for idx := uint32(0); idx < familyCount; idx++ {
		familyProperties[idx].Deref()
		flags[idx] = familyProperties[idx].QueueFlags

		var supportsPresent vk.Bool32
		if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(dev, idx, surface, &supportsPresent)); err != nil {
			return QueueFamilies{}, fmt.Errorf("vk.GetPhysicalDeviceSurfaceSupport(): %s", err.Error())
		}
		presentSupport[idx] = supportsPresent.B()
	}
	return SelectQueueFamilies(flags, presentSupport), nil
}
