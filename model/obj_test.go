// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model_test

import (
	"testing"

	"github.com/devblok/verge/model"
)

func TestImportObjQuad(t *testing.T) {
	data := `
# a textured quad
v -1.0 -1.0 0.0
v 1.0 -1.0 0.0
v 1.0 1.0 0.0
v -1.0 1.0 0.0
vt 0.0 0.0
vt 1.0 0.0
vt 1.0 1.0
vt 0.0 1.0
f 1/1 2/2 3/3 4/4
`
	obj, err := model.ImportObjObject([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if len(obj.Vertices()) != 4 {
		t.Fatalf("incorrect vertex count: %d", len(obj.Vertices()))
	}

	if len(obj.Indices()) != 6 {
		t.Fatalf("incorrect index count: %d", len(obj.Indices()))
	}

	expected := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range obj.Indices() {
		if idx != expected[i] {
			t.Fatalf("index %d incorrect: %d", i, idx)
		}
	}

	// OBJ texture space starts bottom left, engine expects top left
	if uv := obj.Vertices()[0].UV; uv[0] != 0 || uv[1] != 1 {
		t.Fatalf("texcoord not flipped: %v", uv)
	}
}

func TestImportObjNegativeIndices(t *testing.T) {
	data := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f -3 -2 -1
`
	obj, err := model.ImportObjObject([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if len(obj.Vertices()) != 3 {
		t.Fatalf("incorrect vertex count: %d", len(obj.Vertices()))
	}

	if pos := obj.Vertices()[1].Pos; pos[0] != 1 {
		t.Fatalf("negative reference resolved incorrectly: %v", pos)
	}
}

func TestImportObjSharesVertices(t *testing.T) {
	data := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
v 1.0 1.0 0.0
f 1 2 3
f 2 4 3
`
	obj, err := model.ImportObjObject([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if len(obj.Vertices()) != 4 {
		t.Fatalf("shared vertices duplicated, count: %d", len(obj.Vertices()))
	}

	if len(obj.Indices()) != 6 {
		t.Fatalf("incorrect index count: %d", len(obj.Indices()))
	}
}

func TestImportObjWithoutTexcoords(t *testing.T) {
	data := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1//1 2//1 3//1
`
	obj, err := model.ImportObjObject([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if uv := obj.Vertices()[0].UV; uv[0] != 0 || uv[1] != 0 {
		t.Fatalf("expected zero texcoord, got: %v", uv)
	}
}

func TestImportObjNoFaces(t *testing.T) {
	data := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
`
	if _, err := model.ImportObjObject([]byte(data)); err == nil {
		t.Fatal("expected an error for geometry without faces")
	}
}

func TestImportObjIndexOutOfRange(t *testing.T) {
	data := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 1 2 7
`
	if _, err := model.ImportObjObject([]byte(data)); err == nil {
		t.Fatal("expected an error for an out of range index")
	}
}

func TestImportObjZeroIndex(t *testing.T) {
	data := `
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
f 0 1 2
`
	if _, err := model.ImportObjObject([]byte(data)); err == nil {
		t.Fatal("expected an error for a zero index")
	}
}
