// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	glm "github.com/go-gl/mathgl/mgl32"
)

// ImportColladaObject reads the first geometry of a COLLADA (.dae)
// document and converts it to the engine's internal object. Positions
// are required, texture coordinates are picked up when the triangles
// declare a TEXCOORD input and flipped to the Vulkan convention.
// Vertices referenced by identical index tuples are shared.
func ImportColladaObject(fileContents []byte) (Object, error) {
	var doc colladaDoc
	if err := xml.Unmarshal(fileContents, &doc); err != nil {
		return nil, errors.New("xml.Unmarshal(): " + err.Error())
	}
	if len(doc.Geometries) == 0 {
		return nil, errors.New("no geometry found")
	}

	mesh := doc.Geometries[0].Mesh

	sources := make(map[string]colladaSource, len(mesh.Sources))
	for _, src := range mesh.Sources {
		sources[src.ID] = src
	}

	// The VERTEX input of the triangles points at <vertices>, which in
	// turn points at the position source.
	positionInput, ok := findColladaInput(mesh.Vertices.Inputs, "POSITION")
	if !ok {
		return nil, errors.New("vertices declare no POSITION input")
	}
	positions, ok := sources[strings.TrimPrefix(positionInput.Source, "#")]
	if !ok {
		return nil, fmt.Errorf("missing source: %s", positionInput.Source)
	}

	// Triangle indices interleave one index per declared input.
	var (
		stride       int
		vertexOffset = -1
		texOffset    = -1
		texcoords    colladaSource
	)
	for _, input := range mesh.Triangles.Inputs {
		if int(input.Offset)+1 > stride {
			stride = int(input.Offset) + 1
		}
		switch input.Semantic {
		case "VERTEX":
			vertexOffset = int(input.Offset)
		case "TEXCOORD":
			src, ok := sources[strings.TrimPrefix(input.Source, "#")]
			if !ok {
				return nil, fmt.Errorf("missing source: %s", input.Source)
			}
			texcoords = src
			texOffset = int(input.Offset)
		}
	}
	if vertexOffset < 0 {
		return nil, errors.New("triangles declare no VERTEX input")
	}

	var (
		vertices []Vertex
		indices  []uint32
	)
	shared := make(map[string]uint32)
	for base := 0; base+stride <= len(mesh.Triangles.Index); base += stride {
		group := mesh.Triangles.Index[base : base+stride]

		posIdx := group[vertexOffset]
		texIdx := -1
		if texOffset >= 0 {
			texIdx = group[texOffset]
		}

		key := strconv.Itoa(posIdx) + "/" + strconv.Itoa(texIdx)
		if idx, ok := shared[key]; ok {
			indices = append(indices, idx)
			continue
		}

		if posIdx < 0 || 3*posIdx+2 >= len(positions.Floats.Data) {
			return nil, fmt.Errorf("position index %d out of range", posIdx)
		}
		vert := Vertex{
			Pos: glm.Vec3{
				positions.Floats.Data[3*posIdx],
				positions.Floats.Data[3*posIdx+1],
				positions.Floats.Data[3*posIdx+2],
			},
			Color: glm.Vec3{1, 1, 1},
		}
		if texIdx >= 0 {
			if 2*texIdx+1 >= len(texcoords.Floats.Data) {
				return nil, fmt.Errorf("texcoord index %d out of range", texIdx)
			}
			vert.UV = glm.Vec2{
				texcoords.Floats.Data[2*texIdx],
				1 - texcoords.Floats.Data[2*texIdx+1],
			}
		}

		idx := uint32(len(vertices))
		vertices = append(vertices, vert)
		shared[key] = idx
		indices = append(indices, idx)
	}

	if len(indices) == 0 {
		return nil, errors.New("no triangles found")
	}

	return NewStaticMesh(vertices, indices), nil
}

func findColladaInput(inputs []colladaInput, semantic string) (colladaInput, bool) {
	for _, input := range inputs {
		if input.Semantic == semantic {
			return input, true
		}
	}
	return colladaInput{}, false
}

type colladaDoc struct {
	Geometries []colladaGeometry `xml:"library_geometries>geometry"`
}

type colladaGeometry struct {
	ID   string      `xml:"id,attr"`
	Name string      `xml:"name,attr"`
	Mesh colladaMesh `xml:"mesh"`
}

type colladaMesh struct {
	Sources   []colladaSource  `xml:"source"`
	Vertices  colladaVertices  `xml:"vertices"`
	Triangles colladaTriangles `xml:"triangles"`
}

type colladaSource struct {
	ID     string        `xml:"id,attr"`
	Floats colladaFloats `xml:"float_array"`
}

type colladaFloats struct {
	Data []float32
}

// UnmarshalXML parses the whitespace separated float array.
func (f *colladaFloats) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	for _, field := range strings.Fields(raw) {
		num, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return err
		}
		f.Data = append(f.Data, float32(num))
	}
	return nil
}

type colladaVertices struct {
	ID     string         `xml:"id,attr"`
	Inputs []colladaInput `xml:"input"`
}

type colladaInput struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   uint   `xml:"offset,attr"`
}

type colladaTriangles struct {
	Count  int
	Inputs []colladaInput
	Index  []int
}

// UnmarshalXML parses the inputs and the index list held by <p>.
func (t *colladaTriangles) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "count" {
			num, err := strconv.Atoi(attr.Value)
			if err != nil {
				return err
			}
			t.Count = num
		}
	}

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "input":
				var input colladaInput
				if err := d.DecodeElement(&input, &el); err != nil {
					return err
				}
				t.Inputs = append(t.Inputs, input)
			case "p":
				var raw string
				if err := d.DecodeElement(&raw, &el); err != nil {
					return err
				}
				for _, field := range strings.Fields(raw) {
					num, err := strconv.Atoi(field)
					if err != nil {
						return err
					}
					t.Index = append(t.Index, num)
				}
			}
		case xml.EndElement:
			if el == start.End() {
				return nil
			}
		}
	}
}
