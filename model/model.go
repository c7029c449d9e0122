// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"sync"
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Object represents the engine supported model
type Object interface {

	// SetPosition sets the object's current position in space.
	// Has to be thread-safe
	SetPosition(glm.Mat4)

	// Position gets the object's current position in space.
	// Has to be thread-safe
	Position() glm.Mat4

	// SetRotation sets the object's rotation matrix.
	// Has to be thread-safe
	SetRotation(glm.Mat4)

	// Rotation gets the object's rotation matrix.
	// Has to be thread-safe
	Rotation() glm.Mat4

	// Vertices returns the vertices for Renderer use,
	// so it has to match the descriptors exactly
	Vertices() []Vertex

	// Indices returns the index array that the Renderer
	// draws the vertices by
	Indices() []uint32
}

// Vertex is a model vertex
type Vertex struct {
	Pos   glm.Vec3
	Color glm.Vec3
	UV    glm.Vec2
}

// Uniform defines a model-view-projection object
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// VertexBindingDescriptions return Vulkan Vertex descriptors
func VertexBindingDescriptions() []vk.VertexInputBindingDescription {
	return []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}}
}

// VertexAttributeDescriptions return Vulkan attribute descriptors
func VertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Pos)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
		{
			Binding:  0,
			Location: 2,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.UV)),
		},
	}
}

// NewStaticMesh builds an Object from raw vertex and index arrays.
// Position and rotation start out as identity.
func NewStaticMesh(vertices []Vertex, indices []uint32) *StaticMesh {
	return &StaticMesh{
		position: glm.Ident4(),
		rotation: glm.Ident4(),
		vertices: vertices,
		indices:  indices,
	}
}

// StaticMesh is a fixed piece of geometry loaded and held in memory
type StaticMesh struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4

	vertices []Vertex
	indices  []uint32
}

// SetPosition implements interface
func (sm *StaticMesh) SetPosition(pos glm.Mat4) {
	sm.mutex.Lock()
	sm.position = pos
	sm.mutex.Unlock()
}

// Position implements interface
func (sm *StaticMesh) Position() glm.Mat4 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.position
}

// SetRotation implements interface
func (sm *StaticMesh) SetRotation(rot glm.Mat4) {
	sm.mutex.Lock()
	sm.rotation = rot
	sm.mutex.Unlock()
}

// Rotation implements interface
func (sm *StaticMesh) Rotation() glm.Mat4 {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.rotation
}

// Vertices implements interface
func (sm *StaticMesh) Vertices() []Vertex {
	return sm.vertices
}

// Indices implements interface
func (sm *StaticMesh) Indices() []uint32 {
	return sm.indices
}
