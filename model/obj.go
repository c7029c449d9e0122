// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	glm "github.com/go-gl/mathgl/mgl32"
)

// ImportObjObject reads given file contents and converts the Wavefront
// OBJ geometry to the engine's internal object. Faces are triangulated
// as fans, texture coordinates are flipped to the Vulkan convention and
// vertices referenced by identical index tuples are shared.
func ImportObjObject(fileContents []byte) (Object, error) {
	var (
		positions []glm.Vec3
		texcoords []glm.Vec2
		vertices  []Vertex
		indices   []uint32
	)

	shared := make(map[string]uint32)
	scanner := bufio.NewScanner(bytes.NewReader(fileContents))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 components", lineNo)
			}
			vec, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s", lineNo, err.Error())
			}
			positions = append(positions, vec)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err := parseFloat(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s", lineNo, err.Error())
			}
			v, err := parseFloat(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s", lineNo, err.Error())
			}
			texcoords = append(texcoords, glm.Vec2{u, 1 - v})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			var face []uint32
			for _, ref := range fields[1:] {
				idx, err := resolveFaceRef(ref, positions, texcoords, shared, &vertices)
				if err != nil {
					return nil, fmt.Errorf("line %d: %s", lineNo, err.Error())
				}
				face = append(face, idx)
			}
			for i := 1; i+1 < len(face); i++ {
				indices = append(indices, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(indices) == 0 {
		return nil, errors.New("no faces found")
	}

	return NewStaticMesh(vertices, indices), nil
}

// resolveFaceRef turns one face vertex reference (v, v/vt, v//vn or
// v/vt/vn, one based, negative counts from the end) into an index into
// the vertices slice, appending a new Vertex when the tuple is first seen.
func resolveFaceRef(ref string, positions []glm.Vec3, texcoords []glm.Vec2, shared map[string]uint32, vertices *[]Vertex) (uint32, error) {
	parts := strings.Split(ref, "/")

	posIdx, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return 0, err
	}

	texIdx := -1
	if len(parts) > 1 && parts[1] != "" {
		texIdx, err = resolveIndex(parts[1], len(texcoords))
		if err != nil {
			return 0, err
		}
	}

	key := strconv.Itoa(posIdx) + "/" + strconv.Itoa(texIdx)
	if idx, ok := shared[key]; ok {
		return idx, nil
	}

	vert := Vertex{
		Pos:   positions[posIdx],
		Color: glm.Vec3{1, 1, 1},
	}
	if texIdx >= 0 {
		vert.UV = texcoords[texIdx]
	}

	idx := uint32(len(*vertices))
	*vertices = append(*vertices, vert)
	shared[key] = idx
	return idx, nil
}

func resolveIndex(field string, length int) (int, error) {
	num, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	var idx int
	switch {
	case num > 0:
		idx = num - 1
	case num < 0:
		idx = length + num
	default:
		return 0, errors.New("index must not be zero")
	}
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("index %d out of range", num)
	}
	return idx, nil
}

func parseVec3(fields []string) (glm.Vec3, error) {
	var vec glm.Vec3
	for i := 0; i < 3; i++ {
		num, err := parseFloat(fields[i])
		if err != nil {
			return glm.Vec3{}, err
		}
		vec[i] = num
	}
	return vec, nil
}

func parseFloat(field string) (float32, error) {
	num, err := strconv.ParseFloat(field, 32)
	if err != nil {
		return 0, err
	}
	return float32(num), nil
}
