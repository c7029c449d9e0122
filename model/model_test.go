// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model_test

import (
	"testing"
	"unsafe"

	glm "github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/verge/model"
)

func TestVertexBindingDescriptions(t *testing.T) {
	bindings := model.VertexBindingDescriptions()
	if len(bindings) != 1 {
		t.Fatalf("incorrect number of bindings: %d", len(bindings))
	}

	if bindings[0].Stride != uint32(unsafe.Sizeof(model.Vertex{})) {
		t.Fatalf("stride does not match vertex size: %d", bindings[0].Stride)
	}

	if bindings[0].InputRate != vk.VertexInputRateVertex {
		t.Fatal("input rate is not per vertex")
	}
}

func TestVertexAttributeDescriptions(t *testing.T) {
	attrs := model.VertexAttributeDescriptions()
	if len(attrs) != 3 {
		t.Fatalf("incorrect number of attributes: %d", len(attrs))
	}

	formats := []vk.Format{
		vk.FormatR32g32b32Sfloat,
		vk.FormatR32g32b32Sfloat,
		vk.FormatR32g32Sfloat,
	}
	for i, attr := range attrs {
		if attr.Location != uint32(i) {
			t.Fatalf("attribute %d has location %d", i, attr.Location)
		}
		if attr.Format != formats[i] {
			t.Fatalf("attribute %d has incorrect format", i)
		}
	}

	if attrs[1].Offset <= attrs[0].Offset || attrs[2].Offset <= attrs[1].Offset {
		t.Fatal("attribute offsets do not increase")
	}
}

func TestStaticMeshRotation(t *testing.T) {
	mesh := model.NewStaticMesh(nil, nil)

	rot := glm.HomogRotate3DZ(1.5)
	mesh.SetRotation(rot)

	if mesh.Rotation() != rot {
		t.Fatal("rotation does not survive a round trip")
	}

	if mesh.Position() != glm.Ident4() {
		t.Fatal("setting rotation must not disturb position")
	}
}

func TestStaticMeshPosition(t *testing.T) {
	mesh := model.NewStaticMesh(nil, nil)

	pos := glm.Translate3D(1, 2, 3)
	mesh.SetPosition(pos)

	if mesh.Position() != pos {
		t.Fatal("position does not survive a round trip")
	}
}
