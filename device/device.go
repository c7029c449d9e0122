// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID                  int
	VendorID            int
	DriverVersion       int
	Name                string
	Invalid             bool
	Discrete            bool
	MaxImageDimension2D uint32
	Extensions          []string
	Layers              []string
	Memory              vk.DeviceSize
	Features            vk.PhysicalDeviceFeatures
}

// Score rates a device by expected rendering capability.
// Discrete hardware outranks integrated, larger maximum
// texture dimensions win between equals.
func Score(info PhysicalDeviceInfo) int {
	score := int(info.MaxImageDimension2D)
	if info.Discrete {
		score += 1000
	}
	return score
}

// Pick returns the index of the highest scoring device, considering
// only the ones marked suitable. Returns false when none are.
func Pick(infos []PhysicalDeviceInfo, suitable []bool) (int, bool) {
	best := -1
	bestScore := 0
	for idx := range infos {
		if idx >= len(suitable) || !suitable[idx] {
			continue
		}
		if score := Score(infos[idx]); best < 0 || score > bestScore {
			best = idx
			bestScore = score
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// SupportsExtensions checks that every required extension is present
// in the list a device reports. Names on both sides may carry C string
// terminators. Returns the first missing extension name.
func SupportsExtensions(available, required []string) (bool, string) {
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
			return false, name
		}
	}
	return true, ""
}

// QueueFamilies holds the queue family indices a renderer draws and
// presents with. Both may resolve to the same family.
type QueueFamilies struct {
	Graphics    uint32
	Present     uint32
	HasGraphics bool
	HasPresent  bool
}

// Complete reports whether both a graphics and a present
// capable family were found.
func (q QueueFamilies) Complete() bool {
	return q.HasGraphics && q.HasPresent
}

// Same reports whether graphics and presentation share one family.
func (q QueueFamilies) Same() bool {
	return q.Graphics == q.Present
}

// SelectQueueFamilies picks the first graphics capable family and the
// first family able to present, out of parallel slices describing
// every family of a device.
func SelectQueueFamilies(flags []vk.QueueFlags, presentSupport []bool) QueueFamilies {
	var families QueueFamilies
	for idx := range flags {
		if !families.HasGraphics && flags[idx]&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			families.Graphics = uint32(idx)
			families.HasGraphics = true
		}
		if !families.HasPresent && idx < len(presentSupport) && presentSupport[idx] {
			families.Present = uint32(idx)
			families.HasPresent = true
		}
	}
	return families
}
