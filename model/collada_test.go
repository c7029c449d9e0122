// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model_test

import (
	"testing"

	"github.com/devblok/verge/model"
)

const colladaQuad = `<?xml version="1.0" encoding="utf-8"?>
<COLLADA>
  <library_geometries>
    <geometry id="quad" name="quad">
      <mesh>
        <source id="quad-positions">
          <float_array id="quad-positions-array" count="12">0 0 0 1 0 0 1 1 0 0 1 0</float_array>
        </source>
        <source id="quad-uv">
          <float_array id="quad-uv-array" count="8">0 0 1 0 1 1 0 1</float_array>
        </source>
        <vertices id="quad-vertices">
          <input semantic="POSITION" source="#quad-positions"/>
        </vertices>
        <triangles count="2">
          <input semantic="VERTEX" source="#quad-vertices" offset="0"/>
          <input semantic="TEXCOORD" source="#quad-uv" offset="1"/>
          <p>0 0 1 1 2 2
             2 2 3 3 0 0</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`

func TestImportColladaQuad(t *testing.T) {
	obj, err := model.ImportColladaObject([]byte(colladaQuad))
	if err != nil {
		t.Fatal(err)
	}

	if len(obj.Vertices()) != 4 {
		t.Fatalf("incorrect vertex count: %d", len(obj.Vertices()))
	}

	expected := []uint32{0, 1, 2, 2, 3, 0}
	if len(obj.Indices()) != len(expected) {
		t.Fatalf("incorrect index count: %d", len(obj.Indices()))
	}
	for i, idx := range obj.Indices() {
		if idx != expected[i] {
			t.Fatalf("index %d incorrect: %d", i, idx)
		}
	}

	if pos := obj.Vertices()[2].Pos; pos[0] != 1 || pos[1] != 1 || pos[2] != 0 {
		t.Fatalf("position incorrect: %v", pos)
	}

	// COLLADA texture space starts bottom left, engine expects top left
	if uv := obj.Vertices()[0].UV; uv[0] != 0 || uv[1] != 1 {
		t.Fatalf("texcoord not flipped: %v", uv)
	}
}

func TestImportColladaPositionsOnly(t *testing.T) {
	data := `<COLLADA>
  <library_geometries>
    <geometry id="tri">
      <mesh>
        <source id="tri-positions">
          <float_array count="9">0 0 0 1 0 0 0 1 0</float_array>
        </source>
        <vertices id="tri-vertices">
          <input semantic="POSITION" source="#tri-positions"/>
        </vertices>
        <triangles count="1">
          <input semantic="VERTEX" source="#tri-vertices" offset="0"/>
          <p>0 1 2</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`

	obj, err := model.ImportColladaObject([]byte(data))
	if err != nil {
		t.Fatal(err)
	}

	if len(obj.Vertices()) != 3 {
		t.Fatalf("incorrect vertex count: %d", len(obj.Vertices()))
	}
	if uv := obj.Vertices()[0].UV; uv[0] != 0 || uv[1] != 0 {
		t.Fatalf("expected zero texcoords: %v", uv)
	}
}

func TestImportColladaNoGeometry(t *testing.T) {
	if _, err := model.ImportColladaObject([]byte(`<COLLADA></COLLADA>`)); err == nil {
		t.Fatal("expected an error for a document without geometry")
	}
}

func TestImportColladaIndexOutOfRange(t *testing.T) {
	data := `<COLLADA>
  <library_geometries>
    <geometry id="tri">
      <mesh>
        <source id="tri-positions">
          <float_array count="3">0 0 0</float_array>
        </source>
        <vertices id="tri-vertices">
          <input semantic="POSITION" source="#tri-positions"/>
        </vertices>
        <triangles count="1">
          <input semantic="VERTEX" source="#tri-vertices" offset="0"/>
          <p>0 1 2</p>
        </triangles>
      </mesh>
    </geometry>
  </library_geometries>
</COLLADA>`

	if _, err := model.ImportColladaObject([]byte(data)); err == nil {
		t.Fatal("expected an out of range error")
	}
}
